// Package submit is the new application form. Admins are routed away from it
// by the customer guard.
package submit

import (
	"context"
	"strings"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/validation"
	"loanos-client/internal/models"
	"loanos-client/internal/session"
	"loanos-client/internal/views"
)

const (
	MessageRequired       = "Please fill in all required fields."
	MessageNumbers        = "Monthly income and loan amount must be valid numbers."
	MessageEmploymentType = "Employment type must be Salaried or Self-Employed."
	fallbackFailed        = "Failed to submit application. Please try again."
)

// Form holds the raw field values as typed.
type Form struct {
	FullName       string
	Mobile         string
	PAN            string
	DOB            string
	EmploymentType string
	MonthlyIncome  string
	LoanAmount     string
}

// NewForm returns an empty form with the default employment type.
func NewForm() Form {
	return Form{EmploymentType: models.EmploymentSalaried}
}

// EmploymentTypes lists the accepted employment types in display order.
func EmploymentTypes() []string {
	return []string{models.EmploymentSalaried, models.EmploymentSelfEmployed}
}

type Submitter interface {
	SubmitApplication(ctx context.Context, draft models.ApplicationDraft) error
}

type Handler struct {
	*views.Runner
	api Submitter
}

func NewHandler(api Submitter, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("apply", deps), api: api}
}

// Draft validates the form and builds the request body. Nothing is sent.
func Draft(form Form) (models.ApplicationDraft, error) {
	result := validation.ValidateRequired(
		validation.Field{Name: "full_name", Value: form.FullName},
		validation.Field{Name: "mobile", Value: form.Mobile},
		validation.Field{Name: "pan", Value: form.PAN},
		validation.Field{Name: "dob", Value: form.DOB},
		validation.Field{Name: "monthly_income", Value: form.MonthlyIncome},
		validation.Field{Name: "loan_amount", Value: form.LoanAmount},
	)
	if !result.Valid {
		return models.ApplicationDraft{}, apperrors.NewValidationError(MessageRequired, result.Fields()...)
	}

	employment := strings.TrimSpace(form.EmploymentType)
	if employment == "" {
		employment = models.EmploymentSalaried
	}
	if employment != models.EmploymentSalaried && employment != models.EmploymentSelfEmployed {
		return models.ApplicationDraft{}, apperrors.NewValidationError(MessageEmploymentType, "employment_type")
	}

	income, verr := validation.ParseAmount("monthly_income", form.MonthlyIncome)
	if verr != nil {
		return models.ApplicationDraft{}, apperrors.NewValidationError(MessageNumbers, verr.Field)
	}
	amount, verr := validation.ParseAmount("loan_amount", form.LoanAmount)
	if verr != nil {
		return models.ApplicationDraft{}, apperrors.NewValidationError(MessageNumbers, verr.Field)
	}

	return models.ApplicationDraft{
		FullName:       strings.TrimSpace(form.FullName),
		Mobile:         strings.TrimSpace(form.Mobile),
		PAN:            strings.ToUpper(strings.TrimSpace(form.PAN)),
		DOB:            strings.TrimSpace(form.DOB),
		EmploymentType: employment,
		MonthlyIncome:  income,
		LoanAmount:     amount,
	}, nil
}

// Submit validates and sends the form. On success the customer returns to
// their dashboard.
func (h *Handler) Submit(ctx context.Context, form Form) (session.Destination, error) {
	h.ClearMessages()

	draft, err := Draft(form)
	if err != nil {
		return session.DestinationNone, h.Reject("submitApplication", err)
	}

	err = h.Run(ctx, "submitApplication", fallbackFailed, func(ctx context.Context) error {
		return h.api.SubmitApplication(ctx, draft)
	})
	if err != nil {
		return session.DestinationNone, err
	}
	h.Logger().Info("application submitted", map[string]interface{}{"loanAmount": draft.LoanAmount})
	return session.DestinationUser, nil
}

// ButtonLabel is the submit button text.
func ButtonLabel(busy bool) string {
	if busy {
		return "Submitting..."
	}
	return "Submit Application"
}
