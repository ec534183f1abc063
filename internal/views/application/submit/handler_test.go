package submit

import (
	"context"
	"testing"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/models"
	"loanos-client/internal/session"
	"loanos-client/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	got []models.ApplicationDraft
	err error
}

func (f *fakeAPI) SubmitApplication(_ context.Context, d models.ApplicationDraft) error {
	f.got = append(f.got, d)
	return f.err
}

func validForm() Form {
	f := NewForm()
	f.FullName = " Asha Rao "
	f.Mobile = "9876543210"
	f.PAN = "abcde1234f"
	f.DOB = "1990-04-12"
	f.MonthlyIncome = "85000"
	f.LoanAmount = "500000.50"
	return f
}

func TestDraft(t *testing.T) {
	d, err := Draft(validForm())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationDraft{
		FullName:       "Asha Rao",
		Mobile:         "9876543210",
		PAN:            "ABCDE1234F",
		DOB:            "1990-04-12",
		EmploymentType: models.EmploymentSalaried,
		MonthlyIncome:  85000,
		LoanAmount:     500000.50,
	}, d)
}

func TestDraft_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Form)
		wantMsg string
	}{
		{"missing pan", func(f *Form) { f.PAN = "" }, MessageRequired},
		{"blank dob", func(f *Form) { f.DOB = "  " }, MessageRequired},
		{"missing amount", func(f *Form) { f.LoanAmount = "" }, MessageRequired},
		{"non numeric income", func(f *Form) { f.MonthlyIncome = "lots" }, MessageNumbers},
		{"negative amount", func(f *Form) { f.LoanAmount = "-5" }, MessageNumbers},
		{"nan income", func(f *Form) { f.MonthlyIncome = "NaN" }, MessageNumbers},
		{"infinite amount", func(f *Form) { f.LoanAmount = "Inf" }, MessageNumbers},
		{"unknown employment", func(f *Form) { f.EmploymentType = "Student" }, MessageEmploymentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			_, err := Draft(f)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidationFailed))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err, ""))
		})
	}
}

func TestDraft_DefaultsEmploymentType(t *testing.T) {
	f := validForm()
	f.EmploymentType = ""
	d, err := Draft(f)
	require.NoError(t, err)
	assert.Equal(t, models.EmploymentSalaried, d.EmploymentType)
}

func TestSubmit(t *testing.T) {
	api := &fakeAPI{}
	h := NewHandler(api, views.Deps{Logger: logger.NewTestLogger(t)})

	dest, err := h.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, session.DestinationUser, dest)
	require.Len(t, api.got, 1)
	assert.Equal(t, "ABCDE1234F", api.got[0].PAN)
}

func TestSubmit_ValidationSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	h := NewHandler(api, views.Deps{})
	f := validForm()
	f.Mobile = ""

	dest, err := h.Submit(context.Background(), f)
	assert.Error(t, err)
	assert.Equal(t, session.DestinationNone, dest)
	assert.Empty(t, api.got)
	assert.Equal(t, MessageRequired, h.Status().Error)
	assert.False(t, h.Status().Busy)
}

func TestSubmit_NonFiniteAmountSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	h := NewHandler(api, views.Deps{})
	f := validForm()
	f.MonthlyIncome = "NaN"
	f.LoanAmount = "Inf"

	_, err := h.Submit(context.Background(), f)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidationFailed))
	assert.Empty(t, api.got)
	assert.Equal(t, MessageNumbers, h.Status().Error)
}

func TestSubmit_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"detail", apperrors.NewRequestFailedError(&apperrors.RequestError{Status: 409, Detail: "Application already exists"}), "Application already exists"},
		{"fallback", apperrors.NewRequestFailedError(&apperrors.RequestError{Status: 500}), "Failed to submit application. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeAPI{err: tt.err}, views.Deps{})
			_, err := h.Submit(context.Background(), validForm())
			assert.Error(t, err)
			assert.Equal(t, tt.wantMsg, h.Status().Error)
		})
	}
}

func TestOptionsAndLabels(t *testing.T) {
	assert.Equal(t, []string{"Salaried", "Self-Employed"}, EmploymentTypes())
	assert.Equal(t, "Submit Application", ButtonLabel(false))
	assert.Equal(t, "Submitting...", ButtonLabel(true))
}
