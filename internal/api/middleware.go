// Package api implements the memopad REST API using chi.
package api

import (
	"context"
	"net/http"

	"github.com/jwlee-dev/memopad/internal/auth"
	"github.com/jwlee-dev/memopad/internal/session"
)

type ctxKey int

const (
	ctxKeyState ctxKey = iota
	ctxKeyToken
)

// SessionMiddleware resolves the session cookie to its account and working
// state. Requests without a valid, unexpired session get a 401.
func SessionMiddleware(authSvc *auth.Service, sessions *session.Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody(msgLoginRequired))
				return
			}
			acc, err := authSvc.Authenticate(r.Context(), c.Value)
			if err != nil {
				respondError(w, err, "authenticate")
				return
			}
			state, err := sessions.Get(r.Context(), c.Value, *acc)
			if err != nil {
				respondError(w, err, "load session state")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyState, state)
			ctx = context.WithValue(ctx, ctxKeyToken, c.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionState(r *http.Request) *session.State {
	state, _ := r.Context().Value(ctxKeyState).(*session.State)
	return state
}

func sessionToken(r *http.Request) string {
	token, _ := r.Context().Value(ctxKeyToken).(string)
	return token
}
