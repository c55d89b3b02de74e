package api

import (
	"encoding/json"
	"net/http"

	"github.com/jwlee-dev/memopad/internal/editor"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/session"
)

func editorResponse(state *session.State) EditorResponse {
	resp := EditorResponse{State: state.Editor.State().String()}
	if d, ok := state.Editor.Draft(); ok {
		resp.MemoID = state.Editor.Editing()
		resp.Draft = &d
	}
	return resp
}

// OpenEditor handles POST /editor/open: a new empty draft, or one seeded
// from the memo named in the body.
func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req OpenEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	state := sessionState(r)
	var err error
	if req.MemoID == "" {
		err = state.Editor.OpenNew()
	} else {
		err = state.Editor.OpenEdit(req.MemoID)
	}
	if err != nil {
		respondError(w, err, "open editor")
		return
	}
	writeJSON(w, http.StatusOK, editorResponse(state))
}

// StageDraft handles PATCH /editor/draft.
func (h *Handler) StageDraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	patch := editor.Patch{Title: req.Title, Content: req.Content}
	if req.Color != nil {
		c := models.Color(*req.Color)
		patch.Color = &c
	}

	state := sessionState(r)
	if err := state.Editor.Stage(patch); err != nil {
		respondError(w, err, "stage draft")
		return
	}
	writeJSON(w, http.StatusOK, editorResponse(state))
}

// SaveDraft handles POST /editor/save: the draft is trimmed and committed
// to the store, creating or updating the memo.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	editing := state.Editor.Editing()
	m, err := state.Editor.Save(r.Context())
	if err != nil {
		respondError(w, err, "save draft")
		return
	}
	if editing == "" {
		h.publish("created", m.ID)
		writeJSON(w, http.StatusCreated, newMemoItem(m))
		return
	}
	h.publish("updated", m.ID)
	writeJSON(w, http.StatusOK, newMemoItem(m))
}

// CancelDraft handles POST /editor/cancel.
func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	if err := state.Editor.Cancel(); err != nil {
		respondError(w, err, "cancel draft")
		return
	}
	writeJSON(w, http.StatusOK, editorResponse(state))
}

// RequestDelete handles POST /editor/delete, moving the flow to its
// confirmation step.
func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	if err := state.Editor.RequestDelete(); err != nil {
		respondError(w, err, "request delete")
		return
	}
	writeJSON(w, http.StatusOK, editorResponse(state))
}

// ConfirmDelete handles POST /editor/delete/confirm: the memo is removed
// and the editor closed.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	id := state.Editor.Editing()
	if err := state.Editor.ConfirmDelete(r.Context()); err != nil {
		respondError(w, err, "confirm delete")
		return
	}
	h.publish("deleted", id)
	writeJSON(w, http.StatusOK, editorResponse(state))
}

// RejectDelete handles POST /editor/delete/reject, returning to the staged
// draft without deleting anything.
func (h *Handler) RejectDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	if err := state.Editor.RejectDelete(); err != nil {
		respondError(w, err, "reject delete")
		return
	}
	writeJSON(w, http.StatusOK, editorResponse(state))
}
