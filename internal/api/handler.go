package api

import (
	"github.com/jwlee-dev/memopad/internal/auth"
	"github.com/jwlee-dev/memopad/internal/session"
	"github.com/jwlee-dev/memopad/internal/sse"
)

// Handler bundles the services the HTTP endpoints depend on.
type Handler struct {
	auth         *auth.Service
	sessions     *session.Manager
	broker       *sse.Broker
	cookieName   string
	cookieSecure bool
}

func NewHandler(authSvc *auth.Service, sessions *session.Manager, broker *sse.Broker, cookieName string, cookieSecure bool) *Handler {
	return &Handler{
		auth:         authSvc,
		sessions:     sessions,
		broker:       broker,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) publish(kind, id string) {
	if h.broker != nil {
		h.broker.PublishMemoEvent(kind, id)
	}
}
