// Package list is the admin dashboard: every application with filters.
package list

import (
	"context"
	"sync"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/workflow"
)

const fallbackFailed = "Failed to load applications"

// Option is a filter choice. An empty Value means "all".
type Option struct {
	Value string
	Label string
}

// StatusOptions lists the status filter choices.
func StatusOptions() []Option {
	opts := []Option{{Value: "", Label: "All Status"}}
	for _, s := range workflow.All() {
		opts = append(opts, Option{Value: string(s), Label: string(s)})
	}
	return opts
}

// EligibleOptions lists the eligibility filter choices.
func EligibleOptions() []Option {
	return []Option{
		{Value: "", Label: "All"},
		{Value: "true", Label: "Eligible"},
		{Value: "false", Label: "Not Eligible"},
	}
}

type AdminLister interface {
	AdminListApplications(ctx context.Context, filter models.AdminFilter) ([]models.Application, error)
}

type Handler struct {
	*views.Runner
	api AdminLister

	mu     sync.RWMutex
	filter models.AdminFilter
	rows   []views.Row
	loaded bool
	// gen increments with every filter change; a response for an older
	// generation is dropped.
	gen uint64
}

func NewHandler(api AdminLister, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("admin.applications", deps), api: api}
}

func (h *Handler) Filter() models.AdminFilter {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.filter
}

// Apply sets the filter and reloads. An eligible value other than "",
// "true" or "false" is rejected and the current filter is kept.
func (h *Handler) Apply(ctx context.Context, filter models.AdminFilter) error {
	filter.Status = workflow.ParseStatus(string(filter.Status))
	switch filter.Eligible {
	case "", "true", "false":
	default:
		return h.Reject("filter", apperrors.NewInvalidFilterError("eligible", filter.Eligible))
	}

	h.mu.Lock()
	h.filter = filter
	h.gen++
	h.mu.Unlock()
	return h.Reload(ctx)
}

// Reload fetches with the current filter.
func (h *Handler) Reload(ctx context.Context) error {
	h.mu.RLock()
	filter, gen := h.filter, h.gen
	h.mu.RUnlock()

	return h.Runner.Load(ctx, "listApplications", fallbackFailed, func(ctx context.Context) error {
		apps, err := h.api.AdminListApplications(ctx, filter)
		if err != nil {
			return err
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		if gen != h.gen {
			h.Logger().Debug("dropping stale list response", map[string]interface{}{"generation": gen})
			return nil
		}
		h.rows = views.Rows(apps)
		h.loaded = true
		return nil
	})
}

func (h *Handler) Rows() []views.Row {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]views.Row(nil), h.rows...)
}

func (h *Handler) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}
