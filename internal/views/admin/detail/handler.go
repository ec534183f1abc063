// Package detail is the admin review page for one application: the
// verification results and the three workflow triggers.
package detail

import (
	"context"
	"sync"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/metrics"
	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/workflow"
)

const fallbackLoad = "Failed to load application"

type AdminAPI interface {
	AdminGetApplication(ctx context.Context, id int64) (*models.ApplicationDetail, error)
	Run(ctx context.Context, action workflow.Action, id int64) error
}

type Handler struct {
	*views.Runner
	api AdminAPI
	id  int64

	mu     sync.RWMutex
	detail *models.ApplicationDetail
}

func NewHandler(api AdminAPI, id int64, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("admin.application", deps), api: api, id: id}
}

func (h *Handler) ID() int64 { return h.id }

func (h *Handler) Load(ctx context.Context) error {
	return h.Runner.Load(ctx, "getApplication", fallbackLoad, h.fetch)
}

func (h *Handler) fetch(ctx context.Context) error {
	d, err := h.api.AdminGetApplication(ctx, h.id)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.detail = d
	h.mu.Unlock()
	return nil
}

// WorkflowStatus is the status of the loaded application, "" before load.
func (h *Handler) WorkflowStatus() workflow.Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.detail == nil {
		return ""
	}
	return h.detail.Application.Status
}

func (h *Handler) Summary() (views.Summary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.detail == nil {
		return views.Summary{}, false
	}
	return views.Summarize(h.detail, views.AudienceAdmin), true
}

// Buttons returns the trigger buttons for the current status. All are
// disabled while an action runs.
func (h *Handler) Buttons() []workflow.ButtonState {
	return workflow.Buttons(h.WorkflowStatus(), h.Status().Busy)
}

// Trigger runs action against the application and reloads it. The action
// must be the one the current status permits, and no other action may be
// in flight.
func (h *Handler) Trigger(ctx context.Context, action workflow.Action) error {
	status := h.WorkflowStatus()
	if !workflow.Permits(status, action) {
		metrics.WorkflowActionsTotal.WithLabelValues(string(action), "rejected").Inc()
		return h.Reject(string(action), apperrors.NewActionNotPermittedError(string(action), status.String()))
	}

	err := h.Run(ctx, string(action), action.FailureMessage(), func(ctx context.Context) error {
		if err := h.api.Run(ctx, action, h.id); err != nil {
			return err
		}
		return h.fetch(ctx)
	})

	outcome := "success"
	switch {
	case apperrors.Is(err, apperrors.ErrCodeActionInFlight):
		outcome = "rejected"
	case err != nil:
		outcome = "failure"
	}
	metrics.WorkflowActionsTotal.WithLabelValues(string(action), outcome).Inc()

	if err == nil {
		h.Logger().Info("workflow action completed", map[string]interface{}{
			"action":        string(action),
			"applicationId": h.id,
			"status":        h.WorkflowStatus().String(),
		})
	}
	return err
}
