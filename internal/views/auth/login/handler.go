// Package login is the sign-in page.
package login

import (
	"context"
	"strings"

	"loanos-client/internal/models"
	"loanos-client/internal/session"
	"loanos-client/internal/views"
)

// MessageFailed is shown for every failed sign-in, whatever the cause.
const MessageFailed = "Invalid mobile number or password"

type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// Sessions adopts an issued token.
type Sessions interface {
	Login(ctx context.Context, token string) (session.Session, session.Destination, error)
}

type Handler struct {
	*views.Runner
	api      Authenticator
	sessions Sessions
}

func NewHandler(api Authenticator, sessions Sessions, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("login", deps), api: api, sessions: sessions}
}

// Submit signs in and returns where to go next: the admin console for
// admins, the customer dashboard otherwise.
func (h *Handler) Submit(ctx context.Context, mobile, password string) (session.Destination, error) {
	dest := session.DestinationNone
	err := h.RunFixed(ctx, "login", MessageFailed, func(ctx context.Context) error {
		resp, err := h.api.Login(ctx, models.LoginRequest{
			Mobile:   strings.TrimSpace(mobile),
			Password: password,
		})
		if err != nil {
			return err
		}
		_, dest, err = h.sessions.Login(ctx, resp.AccessToken)
		return err
	})
	if err != nil {
		return session.DestinationNone, err
	}
	return dest, nil
}

// ButtonLabel is the submit button text.
func ButtonLabel(busy bool) string {
	if busy {
		return "Logging in..."
	}
	return "Login"
}
