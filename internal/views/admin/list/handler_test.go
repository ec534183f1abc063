package list

import (
	"context"
	"sync"
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
	mu      sync.Mutex
	filters []models.AdminFilter
	result  func(models.AdminFilter) []models.Application
	block   chan struct{}
	started chan struct{}
}

func (f *fakeAPI) AdminListApplications(_ context.Context, filter models.AdminFilter) ([]models.Application, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	block, started := f.block, f.started
	f.mu.Unlock()
	if block != nil {
		close(started)
		<-block
	}
	return f.result(filter), nil
}

func byStatus(filter models.AdminFilter) []models.Application {
	return []models.Application{{ID: 1, FullName: "Asha", Status: filter.Status}}
}

func TestApply(t *testing.T) {
	api := &fakeAPI{result: byStatus}
	h := NewHandler(api, views.Deps{Logger: logger.NewTestLogger(t)})

	require.NoError(t, h.Apply(context.Background(), models.AdminFilter{Status: "kyc_pending", Eligible: "true"}))
	assert.Equal(t, models.AdminFilter{Status: workflow.StatusKYCPending, Eligible: "true"}, api.filters[0])
	assert.Equal(t, workflow.StatusKYCPending, h.Rows()[0].Status)
	assert.True(t, h.Loaded())

	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, api.filters[0], api.filters[1], "reload keeps the filter")
}

func TestApply_InvalidEligible(t *testing.T) {
	api := &fakeAPI{result: byStatus}
	h := NewHandler(api, views.Deps{})
	require.NoError(t, h.Apply(context.Background(), models.AdminFilter{Eligible: "false"}))

	err := h.Apply(context.Background(), models.AdminFilter{Eligible: "maybe"})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFilter))
	assert.Len(t, api.filters, 1, "no request for a rejected filter")
	assert.Equal(t, "false", h.Filter().Eligible)
	assert.Equal(t, "Invalid eligible filter", h.Status().Error)
}

func TestApply_DropsStaleResponse(t *testing.T) {
	api := &fakeAPI{result: byStatus, block: make(chan struct{}), started: make(chan struct{})}
	h := NewHandler(api, views.Deps{})

	done := make(chan error, 1)
	go func() { done <- h.Apply(context.Background(), models.AdminFilter{Status: workflow.StatusDraft}) }()
	<-api.started

	api.mu.Lock()
	block := api.block
	api.block = nil
	api.mu.Unlock()

	require.NoError(t, h.Apply(context.Background(), models.AdminFilter{Status: workflow.StatusEligible}))
	close(block)
	require.NoError(t, <-done)

	rows := h.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, workflow.StatusEligible, rows[0].Status, "the older DRAFT response must not win")
}

func TestOptions(t *testing.T) {
	status := StatusOptions()
	assert.Len(t, status, 8)
	assert.Equal(t, Option{Value: "", Label: "All Status"}, status[0])
	assert.Equal(t, "NOT_ELIGIBLE", status[7].Value)

	eligible := EligibleOptions()
	assert.Equal(t, []string{"", "true", "false"}, []string{eligible[0].Value, eligible[1].Value, eligible[2].Value})
}
