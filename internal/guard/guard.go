// Package guard decides whether a screen may render for the current session.
// Guards are advisory: the loan service authorizes every request itself.
package guard

import (
	"loanos-client/internal/common/metrics"
	"loanos-client/internal/session"
)

// Outcome of evaluating a guard.
type Outcome int

const (
	// Pending means the session is still being restored. Nothing may redirect.
	Pending Outcome = iota
	Pass
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Redirect:
		return "redirect"
	default:
		return "pending"
	}
}

// Decision is the result of a guard check.
type Decision struct {
	Outcome Outcome
	Target  session.Destination
	// Message is shown while Pending.
	Message string
}

func pending(msg string) Decision { return Decision{Outcome: Pending, Message: msg} }

func pass() Decision { return Decision{Outcome: Pass} }

func redirect(to session.Destination) Decision { return Decision{Outcome: Redirect, Target: to} }

// Guard maps a session state to a decision.
type Guard interface {
	Name() string
	Check(st session.State) Decision
}

type userGuard struct{}

type adminGuard struct{}

type customerGuard struct{}

var (
	// User admits any logged-in session.
	User Guard = userGuard{}
	// Admin admits admins only and sends customers to their dashboard.
	Admin Guard = adminGuard{}
	// Customer admits non-admin sessions; admins go to the admin console.
	Customer Guard = customerGuard{}
)

func (userGuard) Name() string { return "user" }

func (userGuard) Check(st session.State) Decision {
	switch st.Kind() {
	case session.KindPresent:
		return pass()
	case session.KindAbsent:
		return redirect(session.DestinationLogin)
	default:
		return pending("Checking login...")
	}
}

func (adminGuard) Name() string { return "admin" }

func (adminGuard) Check(st session.State) Decision {
	switch st.Kind() {
	case session.KindPresent:
		if st.IsAdmin() {
			return pass()
		}
		return redirect(session.DestinationUser)
	case session.KindAbsent:
		return redirect(session.DestinationLogin)
	default:
		return pending("Checking admin access...")
	}
}

func (customerGuard) Name() string { return "customer" }

func (customerGuard) Check(st session.State) Decision {
	switch st.Kind() {
	case session.KindPresent:
		if st.IsAdmin() {
			return redirect(session.DestinationAdmin)
		}
		return pass()
	case session.KindAbsent:
		return redirect(session.DestinationLogin)
	default:
		return pending("Checking login...")
	}
}

// Watcher re-evaluates a guard on every state change and reports a decision
// only when it differs from the previous one, so an unchanged state never
// triggers navigation twice.
type Watcher struct {
	guard   Guard
	last    Decision
	started bool
}

func NewWatcher(g Guard) *Watcher {
	return &Watcher{guard: g}
}

func (w *Watcher) Guard() Guard { return w.guard }

// Observe evaluates st. changed is false when the decision equals the last one.
func (w *Watcher) Observe(st session.State) (d Decision, changed bool) {
	d = w.guard.Check(st)
	if w.started && d == w.last {
		return d, false
	}
	w.started = true
	w.last = d
	if d.Outcome == Redirect {
		metrics.GuardRedirectsTotal.WithLabelValues(w.guard.Name(), string(d.Target)).Inc()
	}
	return d, true
}

// Reset forgets the last decision, e.g. when the guarded screen is re-entered.
func (w *Watcher) Reset() {
	w.started = false
	w.last = Decision{}
}
