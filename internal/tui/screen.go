package tui

import (
	"context"

	"loanos-client/internal/guard"
	"loanos-client/internal/session"
	"loanos-client/internal/views"
	admindetail "loanos-client/internal/views/admin/detail"
	adminlist "loanos-client/internal/views/admin/list"
	appdetail "loanos-client/internal/views/application/detail"
	applist "loanos-client/internal/views/application/list"
	"loanos-client/internal/views/application/submit"
	"loanos-client/internal/views/auth/login"
	"loanos-client/internal/views/auth/register"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Route names a screen.
type Route string

const (
	RouteLanding          Route = "landing"
	RouteLogin            Route = "login"
	RouteRegister         Route = "register"
	RouteDashboard        Route = "user"
	RouteApply            Route = "apply"
	RouteApplication      Route = "application"
	RouteAdmin            Route = "admin"
	RouteAdminApplication Route = "admin.application"
)

// API is the part of the loan service the console talks to.
type API interface {
	register.Registrar
	login.Authenticator
	applist.Lister
	submit.Submitter
	appdetail.Getter
	adminlist.AdminLister
	admindetail.AdminAPI
}

// Services are shared by every screen.
type Services struct {
	API      API
	Sessions *session.Store
	Deps     views.Deps
}

// Screen is one page of the console.
type Screen interface {
	Route() Route
	Title() string
	// Guard is nil for public screens.
	Guard() guard.Guard
	// Init starts the screen's first load. It runs once the guard passes.
	Init() tea.Cmd
	// Update handles a message. handled is false for keys the screen does
	// not use, which then fall through to the global bindings.
	Update(msg tea.Msg) (cmd tea.Cmd, handled bool)
	View(width int) string
	Help() []key.Binding
}

// env is what a screen instance is built with. seq identifies the instance.
type env struct {
	ctx  context.Context
	seq  uint64
	svc  Services
	keys keyMap
}

// sequenced is implemented by responses that belong to one screen instance.
type sequenced interface {
	sequence() uint64
}

// doneMsg reports the end of a screen's request.
type doneMsg struct {
	seq  uint64
	op   string
	err  error
	dest session.Destination
}

func (m doneMsg) sequence() uint64 { return m.seq }

type navigateMsg struct {
	to Route
	id int64
}

type sessionMsg struct {
	state session.State
}

type restoredMsg struct {
	state session.State
}

type loggedOutMsg struct{}

// perform runs fn off the update loop and reports back to the screen
// instance that issued it.
func (e env) perform(op string, fn func(ctx context.Context) (session.Destination, error)) tea.Cmd {
	return func() tea.Msg {
		dest, err := fn(e.ctx)
		return doneMsg{seq: e.seq, op: op, err: err, dest: dest}
	}
}

// load is perform for requests without a navigation hint.
func (e env) load(op string, fn func(ctx context.Context) error) tea.Cmd {
	return e.perform(op, func(ctx context.Context) (session.Destination, error) {
		return session.DestinationNone, fn(ctx)
	})
}

func navigate(to Route, id int64) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to, id: id} }
}

// routeFor maps a navigation hint to its screen.
func routeFor(d session.Destination) Route {
	switch d {
	case session.DestinationLogin:
		return RouteLogin
	case session.DestinationUser:
		return RouteDashboard
	case session.DestinationAdmin:
		return RouteAdmin
	case session.DestinationLanding:
		return RouteLanding
	default:
		return ""
	}
}

func newScreen(route Route, id int64, e env) Screen {
	switch route {
	case RouteLogin:
		return newLoginScreen(e)
	case RouteRegister:
		return newRegisterScreen(e)
	case RouteDashboard:
		return newDashboardScreen(e)
	case RouteApply:
		return newApplyScreen(e)
	case RouteApplication:
		return newApplicationScreen(e, id)
	case RouteAdmin:
		return newAdminListScreen(e)
	case RouteAdminApplication:
		return newAdminDetailScreen(e, id)
	default:
		return newLandingScreen(e)
	}
}
