package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jwlee-dev/memopad/internal/memostore"
	"github.com/jwlee-dev/memopad/internal/memoview"
	"github.com/jwlee-dev/memopad/internal/models"
)

// ListMemos handles GET /memos. The optional q parameter filters by
// case-insensitive substring match on title or content; stats always cover
// the full collection.
func (h *Handler) ListMemos(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	memos := state.Memos.All()
	view := memoview.Filter(memos, r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, MemoListResponse{
		Pinned: newMemoItems(view.Pinned),
		Others: newMemoItems(view.Others),
		Empty:  view.Empty,
		Stats:  memoview.Derive(memos, time.Now()),
	})
}

// CreateMemo handles POST /memos.
func (h *Handler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	state := sessionState(r)
	m, err := state.Memos.Create(r.Context(), memostore.Draft{
		Title:   req.Title,
		Content: req.Content,
		Color:   models.Color(req.Color),
	})
	if err != nil {
		respondError(w, err, "create memo")
		return
	}
	h.publish("created", m.ID)
	writeJSON(w, http.StatusCreated, newMemoItem(m))
}

// UpdateMemo handles PUT /memos/{id}. Omitted fields keep their current
// values; createdAt and the pin flag are never touched.
func (h *Handler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	patch := memostore.Patch{Title: req.Title, Content: req.Content}
	if req.Color != nil {
		c := models.Color(*req.Color)
		patch.Color = &c
	}

	state := sessionState(r)
	m, err := state.Memos.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, err, "update memo")
		return
	}
	h.publish("updated", m.ID)
	writeJSON(w, http.StatusOK, newMemoItem(m))
}

// DeleteMemo handles DELETE /memos/{id}. Deleting an unknown id succeeds;
// deletion is idempotent from the caller's perspective.
func (h *Handler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := sessionState(r)
	if err := state.Memos.Delete(r.Context(), id); err != nil {
		respondError(w, err, "delete memo")
		return
	}
	h.publish("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// TogglePin handles POST /memos/{id}/pin.
func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	m, err := state.Memos.TogglePin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "toggle pin")
		return
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, errorBody(msgMemoNotFound))
		return
	}
	h.publish("pinned", m.ID)
	writeJSON(w, http.StatusOK, newMemoItem(*m))
}
