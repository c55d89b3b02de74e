package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/jwlee-dev/memopad/internal/auth"
	"github.com/jwlee-dev/memopad/internal/session"
	"github.com/jwlee-dev/memopad/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted. The auth
// routes are public; everything else sits behind the session cookie.
// broker, if non-nil, is mounted at GET /events inside the authed group.
func NewRouter(authSvc *auth.Service, sessions *session.Manager, broker *sse.Broker, cookieName string, cookieSecure bool) chi.Router {
	h := NewHandler(authSvc, sessions, broker, cookieName, cookieSecure)

	r := chi.NewRouter()

	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(authSvc, sessions, cookieName))

		r.Post("/auth/logout", h.Logout)

		// Memo CRUD.
		r.Get("/memos", h.ListMemos)
		r.Post("/memos", h.CreateMemo)
		r.Put("/memos/{id}", h.UpdateMemo)
		r.Delete("/memos/{id}", h.DeleteMemo)
		r.Post("/memos/{id}/pin", h.TogglePin)

		// Editor flow.
		r.Post("/editor/open", h.OpenEditor)
		r.Patch("/editor/draft", h.StageDraft)
		r.Post("/editor/save", h.SaveDraft)
		r.Post("/editor/cancel", h.CancelDraft)
		r.Post("/editor/delete", h.RequestDelete)
		r.Post("/editor/delete/confirm", h.ConfirmDelete)
		r.Post("/editor/delete/reject", h.RejectDelete)

		// SSE endpoint (protected by the same session middleware).
		if broker != nil {
			r.Get("/events", broker.ServeHTTP)
		}
	})

	return r
}
