// Package detail shows one of the caller's applications and its progress.
package detail

import (
	"context"
	"sync"

	"loanos-client/internal/models"
	"loanos-client/internal/views"
)

const fallbackFailed = "Failed to load application"

type Getter interface {
	GetApplication(ctx context.Context, id int64) (*models.ApplicationDetail, error)
}

type Handler struct {
	*views.Runner
	api Getter
	id  int64

	mu     sync.RWMutex
	detail *models.ApplicationDetail
}

func NewHandler(api Getter, id int64, deps views.Deps) *Handler {
	return &Handler{Runner: views.NewRunner("application", deps), api: api, id: id}
}

func (h *Handler) ID() int64 { return h.id }

func (h *Handler) Load(ctx context.Context) error {
	return h.Runner.Load(ctx, "getApplication", fallbackFailed, func(ctx context.Context) error {
		d, err := h.api.GetApplication(ctx, h.id)
		if err != nil {
			return err
		}
		h.mu.Lock()
		h.detail = d
		h.mu.Unlock()
		return nil
	})
}

// Summary returns the loaded application, ok is false before the first
// successful load.
func (h *Handler) Summary() (views.Summary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.detail == nil {
		return views.Summary{}, false
	}
	return views.Summarize(h.detail, views.AudienceCustomer), true
}
