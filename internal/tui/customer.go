package tui

import (
	"context"
	"fmt"
	"strings"

	"loanos-client/internal/guard"
	"loanos-client/internal/render"
	"loanos-client/internal/session"
	appdetail "loanos-client/internal/views/application/detail"
	applist "loanos-client/internal/views/application/list"
	"loanos-client/internal/views/application/submit"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type dashboardScreen struct {
	env
	handler *applist.Handler
	cursor  int
}

func newDashboardScreen(e env) *dashboardScreen {
	return &dashboardScreen{env: e, handler: applist.NewHandler(e.svc.API, e.svc.Deps)}
}

func (s *dashboardScreen) Route() Route       { return RouteDashboard }
func (s *dashboardScreen) Title() string      { return "My Loan Applications" }
func (s *dashboardScreen) Guard() guard.Guard { return guard.User }

func (s *dashboardScreen) Init() tea.Cmd {
	return s.load("listApplications", s.handler.Load)
}

func (s *dashboardScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		s.cursor = min(s.cursor, max(0, len(s.handler.Rows())-1))
		return nil, true
	case tea.KeyMsg:
		rows := s.handler.Rows()
		switch {
		case key.Matches(msg, s.keys.Up):
			s.cursor = max(0, s.cursor-1)
		case key.Matches(msg, s.keys.Down):
			s.cursor = min(max(0, len(rows)-1), s.cursor+1)
		case key.Matches(msg, s.keys.Open):
			if s.cursor < len(rows) {
				return navigate(RouteApplication, rows[s.cursor].ID), true
			}
		case key.Matches(msg, s.keys.NewApp):
			return navigate(RouteApply, 0), true
		case key.Matches(msg, s.keys.Reload):
			return s.Init(), true
		default:
			return nil, false
		}
		return nil, true
	}
	return nil, false
}

func (s *dashboardScreen) View(width int) string {
	st := s.handler.Status()
	lines := []string{render.Title("My Loan Applications"), ""}
	switch {
	case st.Loading && !s.handler.Loaded():
		lines = append(lines, render.Muted("Loading..."))
	case s.handler.Empty():
		lines = append(lines, render.Muted(applist.MessageEmpty))
	default:
		lines = append(lines, render.Cards(s.handler.Rows(), s.cursor))
	}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, "", msg)
	}
	return strings.Join(lines, "\n")
}

func (s *dashboardScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Open, s.keys.NewApp, s.keys.Reload, s.keys.Menu, s.keys.Quit}
}

type applyScreen struct {
	env
	handler *submit.Handler
	form    *form
}

func newApplyScreen(e env) *applyScreen {
	initial := submit.NewForm()
	return &applyScreen{
		env:     e,
		handler: submit.NewHandler(e.svc.API, e.svc.Deps),
		form: newForm(e.keys,
			formField{Label: "Full Name"},
			formField{Label: "Mobile Number"},
			formField{Label: "PAN", Upper: true},
			formField{Label: "Date of Birth", Placeholder: "YYYY-MM-DD"},
			formField{Label: "Employment Type", Value: initial.EmploymentType, Choices: submit.EmploymentTypes()},
			formField{Label: "Monthly Income"},
			formField{Label: "Loan Amount"},
		),
	}
}

func (s *applyScreen) Route() Route       { return RouteApply }
func (s *applyScreen) Title() string      { return "Loan Application" }
func (s *applyScreen) Guard() guard.Guard { return guard.Customer }
func (s *applyScreen) Init() tea.Cmd      { return nil }

func (s *applyScreen) values() submit.Form {
	return submit.Form{
		FullName:       s.form.Value(0),
		Mobile:         s.form.Value(1),
		PAN:            s.form.Value(2),
		DOB:            s.form.Value(3),
		EmploymentType: s.form.Value(4),
		MonthlyIncome:  s.form.Value(5),
		LoanAmount:     s.form.Value(6),
	}
}

func (s *applyScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		if msg.err == nil {
			return navigate(routeFor(msg.dest), 0), true
		}
		return nil, true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return navigate(RouteDashboard, 0), true
		case key.Matches(msg, s.keys.Submit):
			if s.handler.Status().Busy {
				return nil, true
			}
			f := s.values()
			return s.perform("submitApplication", func(ctx context.Context) (session.Destination, error) {
				return s.handler.Submit(ctx, f)
			}), true
		}
		return s.form.Update(msg), true
	}
	return s.form.Update(msg), false
}

func (s *applyScreen) View(width int) string {
	st := s.handler.Status()
	lines := []string{render.Title("Loan Application"), "", s.form.View(), ""}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, msg, "")
	}
	lines = append(lines, render.Cursor("[ "+submit.ButtonLabel(st.Busy)+" ]"))
	return strings.Join(lines, "\n")
}

func (s *applyScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Next, s.keys.Toggle, s.keys.Submit, s.keys.Back, s.keys.ForceQuit}
}

type applicationScreen struct {
	env
	handler *appdetail.Handler
}

func newApplicationScreen(e env, id int64) *applicationScreen {
	return &applicationScreen{env: e, handler: appdetail.NewHandler(e.svc.API, id, e.svc.Deps)}
}

func (s *applicationScreen) Route() Route       { return RouteApplication }
func (s *applicationScreen) Title() string      { return fmt.Sprintf("Application #%d", s.handler.ID()) }
func (s *applicationScreen) Guard() guard.Guard { return guard.User }

func (s *applicationScreen) Init() tea.Cmd {
	return s.load("getApplication", s.handler.Load)
}

func (s *applicationScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		return nil, true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return navigate(RouteDashboard, 0), true
		case key.Matches(msg, s.keys.Reload):
			return s.Init(), true
		}
	}
	return nil, false
}

func (s *applicationScreen) View(width int) string {
	st := s.handler.Status()
	sum, ok := s.handler.Summary()
	if !ok {
		if st.Error != "" {
			return render.Messages(st)
		}
		return render.Muted("Loading...")
	}

	lines := []string{
		render.Title(fmt.Sprintf("Application #%d", sum.Application.ID)) + "  " + render.Badge(sum.Application.Status),
		"",
		render.Subtitle("Application Workflow"),
		render.Timeline(sum.Timeline),
		"",
		render.Applicant(sum.Application),
		render.KYC(sum.KYCResult),
		render.Credit(sum.CreditResult),
		render.Decision(sum.Decision),
	}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, msg)
	}
	return strings.Join(lines, "\n")
}

func (s *applicationScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Back, s.keys.Reload, s.keys.Menu, s.keys.Quit}
}
