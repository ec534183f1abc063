package tui

import (
	"context"
	"strings"

	"loanos-client/internal/guard"
	"loanos-client/internal/render"
	"loanos-client/internal/session"
	"loanos-client/internal/views/auth/login"
	"loanos-client/internal/views/auth/register"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var features = []struct{ title, body string }{
	{"Secure Login", "JWT-based authentication to keep your account and data safe."},
	{"Easy Application", "Fill out your loan application with a clean and simple form."},
	{"KYC Verification", "Instant rule-based KYC checks to validate your identity."},
	{"Credit Bureau Check", "Mock CIBIL scoring to evaluate your creditworthiness."},
	{"Eligibility Engine", "EMI-based income analysis to determine final loan approval."},
	{"Admin Dashboard", "Manage, monitor, and review applications in one place."},
}

type landingScreen struct {
	env
}

func newLandingScreen(e env) *landingScreen { return &landingScreen{env: e} }

func (s *landingScreen) Route() Route       { return RouteLanding }
func (s *landingScreen) Title() string      { return "LoanOS" }
func (s *landingScreen) Guard() guard.Guard { return nil }
func (s *landingScreen) Init() tea.Cmd      { return nil }

func (s *landingScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case key.Matches(km, s.keys.Login):
		return navigate(RouteLogin, 0), true
	case key.Matches(km, s.keys.Register):
		return navigate(RouteRegister, 0), true
	}
	return nil, false
}

func (s *landingScreen) View(width int) string {
	lines := []string{
		render.Muted("Loan Origination System"),
		render.Title("Fast-Track Your Loan Application: Simple, Transparent, Automated"),
		render.Subtitle("Apply for a personal loan in minutes. Complete your KYC, credit check,"),
		render.Subtitle("and eligibility verification, all in one seamless workflow."),
		"",
	}
	for _, f := range features {
		lines = append(lines, render.Title(f.title)+"  "+render.Muted(f.body))
	}
	return strings.Join(lines, "\n")
}

func (s *landingScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Login, s.keys.Register, s.keys.Menu, s.keys.Quit}
}

type loginScreen struct {
	env
	handler *login.Handler
	form    *form
}

func newLoginScreen(e env) *loginScreen {
	return &loginScreen{
		env:     e,
		handler: login.NewHandler(e.svc.API, e.svc.Sessions, e.svc.Deps),
		form: newForm(e.keys,
			formField{Label: "Mobile Number", Placeholder: "Enter mobile"},
			formField{Label: "Password", Placeholder: "Enter password", Password: true},
		),
	}
}

func (s *loginScreen) Route() Route       { return RouteLogin }
func (s *loginScreen) Title() string      { return "Login" }
func (s *loginScreen) Guard() guard.Guard { return nil }
func (s *loginScreen) Init() tea.Cmd      { return nil }

func (s *loginScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		if msg.err == nil {
			return navigate(routeFor(msg.dest), 0), true
		}
		return nil, true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return navigate(RouteLanding, 0), true
		case key.Matches(msg, s.keys.Submit):
			if s.handler.Status().Busy {
				return nil, true
			}
			mobile, password := s.form.Value(0), s.form.Value(1)
			return s.perform("login", func(ctx context.Context) (session.Destination, error) {
				return s.handler.Submit(ctx, mobile, password)
			}), true
		}
		return s.form.Update(msg), true
	}
	return s.form.Update(msg), false
}

func (s *loginScreen) View(width int) string {
	st := s.handler.Status()
	lines := []string{render.Title("Login"), "", s.form.View(), ""}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, msg, "")
	}
	lines = append(lines, render.Cursor("[ "+login.ButtonLabel(st.Busy)+" ]"), "", render.Muted("Don't have an account? Press esc, then g to register."))
	return strings.Join(lines, "\n")
}

func (s *loginScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Next, s.keys.Submit, s.keys.Back, s.keys.ForceQuit}
}

type registerScreen struct {
	env
	handler *register.Handler
	form    *form
}

func newRegisterScreen(e env) *registerScreen {
	return &registerScreen{
		env:     e,
		handler: register.NewHandler(e.svc.API, e.svc.Deps),
		form: newForm(e.keys,
			formField{Label: "Full Name"},
			formField{Label: "Mobile Number"},
			formField{Label: "Password", Password: true},
		),
	}
}

func (s *registerScreen) Route() Route       { return RouteRegister }
func (s *registerScreen) Title() string      { return "Create Account" }
func (s *registerScreen) Guard() guard.Guard { return nil }
func (s *registerScreen) Init() tea.Cmd      { return nil }

func (s *registerScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		if msg.err == nil {
			s.form.Reset()
		}
		return nil, true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return navigate(RouteLanding, 0), true
		case key.Matches(msg, s.keys.Submit):
			if s.handler.Status().Busy {
				return nil, true
			}
			f := register.Form{FullName: s.form.Value(0), Mobile: s.form.Value(1), Password: s.form.Value(2)}
			return s.load("register", func(ctx context.Context) error {
				return s.handler.Submit(ctx, f)
			}), true
		}
		return s.form.Update(msg), true
	}
	return s.form.Update(msg), false
}

func (s *registerScreen) View(width int) string {
	st := s.handler.Status()
	label := "Register"
	if st.Busy {
		label = "Registering..."
	}
	lines := []string{render.Title("Create Account"), "", s.form.View(), ""}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, msg, "")
	}
	lines = append(lines, render.Cursor("[ "+label+" ]"))
	return strings.Join(lines, "\n")
}

func (s *registerScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Next, s.keys.Submit, s.keys.Back, s.keys.ForceQuit}
}
