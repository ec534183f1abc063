package list

import (
	"context"
	"errors"
	"testing"

	"loanos-client/internal/common/logger"
	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	apps []models.Application
	err  error
}

func (f *fakeAPI) ListApplications(context.Context) ([]models.Application, error) {
	return f.apps, f.err
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{apps: []models.Application{
		{ID: 1, FullName: "Asha", PAN: "ABCDE1234F", Status: workflow.StatusKYCPending},
		{ID: 2, FullName: "Asha", PAN: "ABCDE1234F", Status: workflow.StatusEligible},
	}}
	h := NewHandler(api, views.Deps{Logger: logger.NewTestLogger(t)})
	assert.False(t, h.Loaded())
	assert.False(t, h.Empty())

	require.NoError(t, h.Load(context.Background()))
	rows := h.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, workflow.CategoryWarning, rows[0].Category)
	assert.Equal(t, workflow.CategorySuccess, rows[1].Category)
	assert.False(t, h.Empty())

	api.err = errors.New("down")
	assert.Error(t, h.Load(context.Background()))
	assert.Len(t, h.Rows(), 2, "failed reload keeps the last rows")
	assert.Equal(t, "Failed to load applications", h.Status().Error)
}

func TestLoad_Empty(t *testing.T) {
	h := NewHandler(&fakeAPI{}, views.Deps{})
	require.NoError(t, h.Load(context.Background()))
	assert.True(t, h.Empty())
	assert.Equal(t, "You haven't applied for any loans yet.", MessageEmpty)
}
