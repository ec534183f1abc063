package detail

import (
	"context"
	"testing"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	detail *models.ApplicationDetail
	err    error
	gotID  int64
}

func (f *fakeAPI) GetApplication(_ context.Context, id int64) (*models.ApplicationDetail, error) {
	f.gotID = id
	return f.detail, f.err
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{detail: &models.ApplicationDetail{
		Application:  models.Application{ID: 12, Status: workflow.StatusEligible},
		CreditResult: &models.CreditResult{Status: "GOOD", CreditScore: 780, ActiveLoans: 1},
	}}
	h := NewHandler(api, 12, views.Deps{Logger: logger.NewTestLogger(t)})

	_, ok := h.Summary()
	assert.False(t, ok)

	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, int64(12), api.gotID)

	s, ok := h.Summary()
	require.True(t, ok)
	assert.True(t, s.Terminal)
	assert.Equal(t, workflow.OutcomeApproved, s.Decision.Outcome)
	assert.Equal(t, "Congratulations! You are eligible for this loan.", s.Decision.Message)
	assert.Equal(t, 780, s.CreditResult.CreditScore)
	assert.Nil(t, s.KYCResult)
}

func TestLoad_Failure(t *testing.T) {
	api := &fakeAPI{err: apperrors.NewRequestFailedError(&apperrors.RequestError{Status: 404, Detail: "Application not found"})}
	h := NewHandler(api, 99, views.Deps{})

	assert.Error(t, h.Load(context.Background()))
	assert.Equal(t, "Application not found", h.Status().Error)
	_, ok := h.Summary()
	assert.False(t, ok)
}
