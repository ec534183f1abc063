package tui

import (
	"context"
	"fmt"
	"strings"

	"loanos-client/internal/guard"
	"loanos-client/internal/models"
	"loanos-client/internal/render"
	admindetail "loanos-client/internal/views/admin/detail"
	adminlist "loanos-client/internal/views/admin/list"
	"loanos-client/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type adminListScreen struct {
	env
	handler *adminlist.Handler
	cursor  int
}

func newAdminListScreen(e env) *adminListScreen {
	return &adminListScreen{env: e, handler: adminlist.NewHandler(e.svc.API, e.svc.Deps)}
}

func (s *adminListScreen) Route() Route       { return RouteAdmin }
func (s *adminListScreen) Title() string      { return "Admin Dashboard" }
func (s *adminListScreen) Guard() guard.Guard { return guard.Admin }

func (s *adminListScreen) Init() tea.Cmd {
	return s.load("listApplications", s.handler.Reload)
}

// nextOption returns the option after cur, wrapping around.
func nextOption(opts []adminlist.Option, cur string) string {
	for i, o := range opts {
		if o.Value == cur {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}

func optionLabel(opts []adminlist.Option, cur string) string {
	for _, o := range opts {
		if o.Value == cur {
			return o.Label
		}
	}
	return cur
}

func (s *adminListScreen) apply(filter models.AdminFilter) tea.Cmd {
	s.cursor = 0
	return s.load("filter", func(ctx context.Context) error {
		return s.handler.Apply(ctx, filter)
	})
}

func (s *adminListScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		s.cursor = min(s.cursor, max(0, len(s.handler.Rows())-1))
		return nil, true
	case tea.KeyMsg:
		rows := s.handler.Rows()
		filter := s.handler.Filter()
		switch {
		case key.Matches(msg, s.keys.Up):
			s.cursor = max(0, s.cursor-1)
		case key.Matches(msg, s.keys.Down):
			s.cursor = min(max(0, len(rows)-1), s.cursor+1)
		case key.Matches(msg, s.keys.Open):
			if s.cursor < len(rows) {
				return navigate(RouteAdminApplication, rows[s.cursor].ID), true
			}
		case key.Matches(msg, s.keys.Status):
			filter.Status = workflow.Status(nextOption(adminlist.StatusOptions(), string(filter.Status)))
			return s.apply(filter), true
		case key.Matches(msg, s.keys.Eligible):
			filter.Eligible = nextOption(adminlist.EligibleOptions(), filter.Eligible)
			return s.apply(filter), true
		case key.Matches(msg, s.keys.Reload):
			return s.Init(), true
		default:
			return nil, false
		}
		return nil, true
	}
	return nil, false
}

func (s *adminListScreen) View(width int) string {
	st := s.handler.Status()
	filter := s.handler.Filter()
	lines := []string{
		render.Title("Admin Dashboard"),
		render.Subtitle(fmt.Sprintf("Status: %s   Eligible: %s",
			optionLabel(adminlist.StatusOptions(), string(filter.Status)),
			optionLabel(adminlist.EligibleOptions(), filter.Eligible))),
		"",
	}
	rows := s.handler.Rows()
	switch {
	case st.Loading && !s.handler.Loaded():
		lines = append(lines, render.Muted("Loading..."))
	case s.handler.Loaded() && len(rows) == 0:
		lines = append(lines, render.Muted("No applications found."))
	default:
		lines = append(lines, render.Table(rows, s.cursor))
	}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, "", msg)
	}
	return strings.Join(lines, "\n")
}

func (s *adminListScreen) Help() []key.Binding {
	return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Open, s.keys.Status, s.keys.Eligible, s.keys.Reload, s.keys.Menu, s.keys.Quit}
}

type adminDetailScreen struct {
	env
	handler *admindetail.Handler
}

func newAdminDetailScreen(e env, id int64) *adminDetailScreen {
	return &adminDetailScreen{env: e, handler: admindetail.NewHandler(e.svc.API, id, e.svc.Deps)}
}

func (s *adminDetailScreen) Route() Route       { return RouteAdminApplication }
func (s *adminDetailScreen) Title() string      { return fmt.Sprintf("Application #%d", s.handler.ID()) }
func (s *adminDetailScreen) Guard() guard.Guard { return guard.Admin }

func (s *adminDetailScreen) Init() tea.Cmd {
	return s.load("getApplication", s.handler.Load)
}

func (s *adminDetailScreen) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doneMsg:
		return nil, true
	case tea.KeyMsg:
		for _, action := range workflow.Actions() {
			if key.Matches(msg, s.keys.triggers()[action]) {
				return s.trigger(action), true
			}
		}
		switch {
		case key.Matches(msg, s.keys.Back):
			return navigate(RouteAdmin, 0), true
		case key.Matches(msg, s.keys.Reload):
			return s.Init(), true
		}
	}
	return nil, false
}

// trigger starts action. Disallowed and overlapping actions are rejected
// by the handler, which leaves the reason in the view status.
func (s *adminDetailScreen) trigger(action workflow.Action) tea.Cmd {
	if s.handler.Status().Busy {
		return nil
	}
	if !workflow.Permits(s.handler.WorkflowStatus(), action) {
		// Rejection is synchronous and sends no request. The returned error
		// is the same one the handler records in Status().Error, which View
		// renders.
		_ = s.handler.Trigger(s.ctx, action)
		return nil
	}
	return s.load(string(action), func(ctx context.Context) error {
		return s.handler.Trigger(ctx, action)
	})
}

func (s *adminDetailScreen) View(width int) string {
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
		render.Timeline(sum.Timeline),
		"",
		render.Applicant(sum.Application),
		render.KYC(sum.KYCResult),
		render.Credit(sum.CreditResult),
		render.Decision(sum.Decision),
		"",
		render.Subtitle("Workflow Actions"),
		render.Buttons(s.handler.Buttons(), s.keys.triggerLabels()),
	}
	if msg := render.Messages(st); msg != "" {
		lines = append(lines, "", msg)
	}
	return strings.Join(lines, "\n")
}

func (s *adminDetailScreen) Help() []key.Binding {
	return []key.Binding{s.keys.KYC, s.keys.Credit, s.keys.Eligibility, s.keys.Reload, s.keys.Back, s.keys.Menu, s.keys.Quit}
}
