package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jwlee-dev/memopad/internal/auth"
)

// Signup handles POST /auth/signup. The password is validated and hashed
// before persistence and never echoed back.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	creds, err := auth.ValidateSignup(req.Email, req.Password, req.Name)
	if err != nil {
		respondError(w, err, "signup validation")
		return
	}
	if err := h.auth.Register(r.Context(), creds); err != nil {
		respondError(w, err, "signup")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "회원가입이 완료되었어요."})
}

// Login handles POST /auth/login. On success it sets the session cookie
// and echoes the redirect target from the callback query parameter.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	sess, acc, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err, "login")
		return
	}

	// Build the session state eagerly so first-time accounts are seeded
	// before the first memo request.
	if _, err := h.sessions.Get(r.Context(), sess.Token, *acc); err != nil {
		respondError(w, err, "login session state")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Redirect: loginRedirect(r)})
}

// Logout handles POST /auth/logout: the token is invalidated, the session
// state dropped, and the cookie cleared.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if err := h.auth.Logout(r.Context(), token); err != nil {
		respondError(w, err, "logout")
		return
	}
	h.sessions.Drop(token)

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Redirect: "/login"})
}

// loginRedirect returns the caller-supplied return location. Only relative
// paths are honored so the endpoint cannot redirect off-site.
func loginRedirect(r *http.Request) string {
	target := r.URL.Query().Get("callback")
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
