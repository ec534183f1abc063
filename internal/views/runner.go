// Package views holds the screen-independent state of every page: what was
// loaded, what is in flight, and the message to show. Rendering lives in
// internal/tui.
package views

import (
	"context"
	"sync"
	"time"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/common/observability"
)

// Deps are shared by every view handler.
type Deps struct {
	Logger logger.Logger
	Obs    *observability.Observability
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.NewNoOpLogger()
	}
	if d.Obs == nil {
		d.Obs = observability.Noop()
	}
	return d
}

// Status is the user-visible state common to all views.
type Status struct {
	// Busy is set while a user-triggered action runs. Action buttons are
	// disabled while it is set.
	Busy bool
	// Loading is set while a fetch runs.
	Loading bool
	Error   string
	Notice  string
}

// Runner executes view actions: it clears the previous messages, tracks
// the busy flag, logs failures and picks the error text.
type Runner struct {
	view   string
	logger logger.Logger
	errs   *apperrors.ErrorHandler
	obs    *observability.Observability

	mu       sync.Mutex
	status   Status
	inflight int
}

func NewRunner(view string, deps Deps) *Runner {
	deps = deps.withDefaults()
	log := deps.Logger.WithFields(map[string]interface{}{"view": view})
	return &Runner{
		view:   view,
		logger: log,
		errs:   apperrors.NewErrorHandler(log),
		obs:    deps.Obs,
	}
}

func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) Logger() logger.Logger { return r.logger }

// Run executes a user action. Only one action runs at a time: a second call
// while one is outstanding fails with ACTION_IN_FLIGHT and leaves the state
// untouched. On failure the error text is the server detail when there is
// one, else fallback.
func (r *Runner) Run(ctx context.Context, action, fallback string, fn func(context.Context) error) error {
	return r.run(ctx, action, fn, func(err error) string {
		return r.errs.HandleActionError(action, err, fallback)
	})
}

// RunFixed is Run with a constant failure message.
func (r *Runner) RunFixed(ctx context.Context, action, message string, fn func(context.Context) error) error {
	return r.run(ctx, action, fn, func(err error) string {
		r.errs.HandleActionError(action, err, message)
		return message
	})
}

// Load runs a fetch. Fetches are not serialized; callers that issue several
// discard stale results themselves.
func (r *Runner) Load(ctx context.Context, action, fallback string, fn func(context.Context) error) error {
	r.mu.Lock()
	r.inflight++
	r.status.Loading = true
	r.status.Error = ""
	r.mu.Unlock()

	start := time.Now()
	err := fn(ctx)
	r.record(ctx, action, start, err)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight--
	r.status.Loading = r.inflight > 0
	if err != nil {
		r.status.Error = r.errs.HandleActionError(action, err, fallback)
	}
	return err
}

// Reject reports an error raised before any request was made, such as a
// form that failed validation.
func (r *Runner) Reject(action string, err error) error {
	msg := r.errs.HandleActionError(action, err, "")
	r.mu.Lock()
	r.status.Error = msg
	r.status.Notice = ""
	r.mu.Unlock()
	return err
}

// Notify sets an informational message.
func (r *Runner) Notify(msg string) {
	r.mu.Lock()
	r.status.Notice = msg
	r.mu.Unlock()
}

// ClearMessages drops the current error and notice.
func (r *Runner) ClearMessages() {
	r.mu.Lock()
	r.status.Error = ""
	r.status.Notice = ""
	r.mu.Unlock()
}

func (r *Runner) run(ctx context.Context, action string, fn func(context.Context) error, message func(error) string) (err error) {
	r.mu.Lock()
	if r.status.Busy {
		r.mu.Unlock()
		return apperrors.NewActionInFlightError(action)
	}
	r.status.Busy = true
	r.status.Error = ""
	r.status.Notice = ""
	r.mu.Unlock()

	start := time.Now()
	defer func() {
		r.record(ctx, action, start, err)
		msg := ""
		if err != nil {
			msg = message(err)
		}
		r.mu.Lock()
		r.status.Busy = false
		r.status.Error = msg
		r.mu.Unlock()
	}()

	return fn(ctx)
}

func (r *Runner) record(ctx context.Context, action string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.obs.RecordActionProcessed(ctx, r.view+"."+action, status)
	r.obs.RecordActionDuration(ctx, r.view+"."+action, time.Since(start), status)
}
