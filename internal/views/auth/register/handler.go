// Package register is the account creation page.
package register

import (
	"context"
	"strings"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/validation"
	"loanos-client/internal/models"
	"loanos-client/internal/views"
)

const (
	MessageRegistered = "Registered successfully. Please login."
	MessageRequired   = "Please fill in all required fields."
	fallbackFailed    = "Error registering"
)

type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) error
}

type Form struct {
	FullName string
	Mobile   string
	Password string
}

type Handler struct {
	*views.Runner
	api Registrar
}

func NewHandler(api Registrar, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("register", deps), api: api}
}

// Submit creates the account. On success the notice is set and the caller
// should clear the form.
func (h *Handler) Submit(ctx context.Context, form Form) error {
	h.ClearMessages()

	result := validation.ValidateRequired(
		validation.Field{Name: "full_name", Value: form.FullName},
		validation.Field{Name: "mobile", Value: form.Mobile},
		validation.Field{Name: "password", Value: form.Password},
	)
	if !result.Valid {
		return h.Reject("register", apperrors.NewValidationError(MessageRequired, result.Fields()...))
	}

	err := h.Run(ctx, "register", fallbackFailed, func(ctx context.Context) error {
		return h.api.Register(ctx, models.RegisterRequest{
			FullName: strings.TrimSpace(form.FullName),
			Mobile:   strings.TrimSpace(form.Mobile),
			Password: form.Password,
		})
	})
	if err != nil {
		return err
	}
	h.Notify(MessageRegistered)
	h.Logger().Info("account registered", map[string]interface{}{"mobile": maskMobile(form.Mobile)})
	return nil
}

func maskMobile(m string) string {
	m = strings.TrimSpace(m)
	if len(m) <= 4 {
		return m
	}
	return strings.Repeat("*", len(m)-4) + m[len(m)-4:]
}
