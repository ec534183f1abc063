// Package list is the customer dashboard: the caller's own applications.
package list

import (
	"context"
	"sync"

	"loanos-client/internal/models"
	"loanos-client/internal/views"
)

const (
	MessageEmpty   = "You haven't applied for any loans yet."
	fallbackFailed = "Failed to load applications"
)

type Lister interface {
	ListApplications(ctx context.Context) ([]models.Application, error)
}

type Handler struct {
	*views.Runner
	api Lister

	mu     sync.RWMutex
	rows   []views.Row
	loaded bool
}

func NewHandler(api Lister, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("applications", deps), api: api}
}

// Load fetches the applications. A failed load keeps the previous rows.
func (h *Handler) Load(ctx context.Context) error {
	return h.Runner.Load(ctx, "listApplications", fallbackFailed, func(ctx context.Context) error {
		apps, err := h.api.ListApplications(ctx)
		if err != nil {
			return err
		}
		h.mu.Lock()
		h.rows = views.Rows(apps)
		h.loaded = true
		h.mu.Unlock()
		return nil
	})
}

func (h *Handler) Rows() []views.Row {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]views.Row(nil), h.rows...)
}

// Loaded is false until the first successful load.
func (h *Handler) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

// Empty reports a loaded list with no applications.
func (h *Handler) Empty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded && len(h.rows) == 0
}
