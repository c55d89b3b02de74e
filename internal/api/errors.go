package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/editor"
)

// User-facing error messages. Validation messages travel inside the error
// values themselves; these cover the rest of the taxonomy.
const (
	msgEmailTaken     = "이미 사용 중인 이메일이에요."
	msgBadCredentials = "이메일 또는 비밀번호가 올바르지 않아요."
	msgLoginRequired  = "로그인이 필요해요."
	msgMemoNotFound   = "메모를 찾을 수 없어요."
	msgInternal       = "요청 처리 중 오류가 발생했어요."
)

// respondError maps an error to its HTTP status and a user-safe body.
// Validation, conflict, and not-found messages are surfaced verbatim;
// anything unexpected is logged with op for context and replaced with a
// generic message so internal details never reach the client.
func respondError(w http.ResponseWriter, err error, op string) {
	if msg, ok := apperr.ValidationMessage(err); ok {
		writeJSON(w, http.StatusBadRequest, errorBody(msg))
		return
	}
	switch {
	case errors.Is(err, apperr.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody(msgEmailTaken))
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody(msgBadCredentials))
	case errors.Is(err, apperr.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody(msgLoginRequired))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(msgMemoNotFound))
	case errors.Is(err, editor.ErrAlreadyOpen),
		errors.Is(err, editor.ErrNoDraft),
		errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, editor.ErrNotConfirming):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(msgInternal))
	}
}
