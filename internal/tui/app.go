// Package tui is the terminal console: one bubbletea program that renders
// the page views and routes between them under the route guards.
package tui

import (
	"context"
	"fmt"
	"strings"

	"loanos-client/internal/common/logger"
	"loanos-client/internal/guard"
	"loanos-client/internal/render"
	"loanos-client/internal/session"
	"loanos-client/internal/views/navbar"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the console.
type Options struct {
	// Start is the first screen. Guarded screens show the guard's pending
	// text until the session is restored.
	Start Route
	// StartID is the application id for the detail screens.
	StartID int64
}

// Model is the bubbletea model of the console.
type Model struct {
	ctx  context.Context
	svc  Services
	keys keyMap

	state   session.State
	updates <-chan session.State
	cancel  func()

	screen  Screen
	watcher *guard.Watcher
	// decision is the guard verdict for the current screen.
	decision guard.Decision
	started  bool
	seq      uint64
	// boot is the first screen's start command, issued by Init.
	boot tea.Cmd

	width  int
	height int
}

func New(ctx context.Context, svc Services, opts Options) Model {
	if svc.Deps.Logger == nil {
		svc.Deps.Logger = logger.NewNoOpLogger()
	}
	updates, cancel := svc.Sessions.Subscribe()
	m := Model{
		ctx:     ctx,
		svc:     svc,
		keys:    newKeyMap(),
		state:   svc.Sessions.Current(),
		updates: updates,
		cancel:  cancel,
		width:   100,
		height:  32,
	}
	start := opts.Start
	if start == "" {
		start = RouteLanding
	}
	m, boot := m.open(start, opts.StartID)
	m.boot = boot
	return m
}

// Close stops listening for session changes.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) Init() tea.Cmd {
	sessions := m.svc.Sessions
	ctx := m.ctx
	return tea.Batch(
		m.boot,
		func() tea.Msg { return restoredMsg{state: sessions.Restore(ctx)} },
		m.waitForSession(),
	)
}

func (m Model) waitForSession() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return sessionMsg{state: st}
	}
}

// open builds a fresh screen instance. Responses addressed to the previous
// instance are dropped from here on.
func (m Model) open(route Route, id int64) (Model, tea.Cmd) {
	m.seq++
	m.screen = newScreen(route, id, env{ctx: m.ctx, seq: m.seq, svc: m.svc, keys: m.keys})
	m.watcher = nil
	m.decision = guard.Decision{Outcome: guard.Pass}
	m.started = false
	if g := m.screen.Guard(); g != nil {
		m.watcher = guard.NewWatcher(g)
	}
	return m.evaluate()
}

// evaluate runs the current screen's guard against the session. It
// redirects, keeps waiting, or starts the screen.
func (m Model) evaluate() (Model, tea.Cmd) {
	m.state = m.svc.Sessions.Current()
	if m.watcher != nil {
		d, changed := m.watcher.Observe(m.state)
		m.decision = d
		if changed && d.Outcome == guard.Redirect {
			m.svc.Deps.Logger.Debug("guard redirect", map[string]interface{}{
				"guard":  m.watcher.Guard().Name(),
				"from":   string(m.screen.Route()),
				"target": string(d.Target),
			})
			if to := routeFor(d.Target); to != "" {
				return m.open(to, 0)
			}
		}
		if d.Outcome != guard.Pass {
			return m, nil
		}
	}
	if m.started {
		return m, nil
	}
	m.started = true
	return m, m.screen.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case restoredMsg:
		return m.evaluate()

	case sessionMsg:
		next, cmd := m.evaluate()
		return next, tea.Batch(cmd, next.waitForSession())

	case navigateMsg:
		return m.open(msg.to, msg.id)

	case loggedOutMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.started {
			cmd, handled := m.screen.Update(msg)
			if handled {
				return m, cmd
			}
		}
		return m.global(msg)
	}

	if s, ok := msg.(sequenced); ok && s.sequence() != m.seq {
		m.svc.Deps.Logger.Debug("dropping response for a closed screen", map[string]interface{}{
			"seq":     s.sequence(),
			"current": m.seq,
		})
		return m, nil
	}
	cmd, _ := m.screen.Update(msg)
	return m, cmd
}

// global handles the keys no screen claimed: quit and the navbar menu.
func (m Model) global(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Menu):
		links := navbar.Build(m.state).Links
		i := int(msg.String()[0] - '1')
		if i < 0 || i >= len(links) {
			return m, nil
		}
		return m.follow(links[i].Target)
	}
	return m, nil
}

func (m Model) follow(target navbar.Target) (tea.Model, tea.Cmd) {
	if target == navbar.TargetLogout {
		sessions, ctx := m.svc.Sessions, m.ctx
		next, cmd := m.open(RouteLanding, 0)
		return next, tea.Batch(cmd, func() tea.Msg {
			sessions.Logout(ctx)
			return loggedOutMsg{}
		})
	}
	return m.open(Route(target), 0)
}

func (m Model) View() string {
	bar := navbar.Build(m.state)
	for i := range bar.Links {
		bar.Links[i].Label = fmt.Sprintf("%d %s", i+1, bar.Links[i].Label)
	}

	var body string
	if m.decision.Outcome == guard.Pass {
		body = m.screen.View(m.width)
	} else {
		body = render.Muted(m.decision.Message)
	}

	parts := []string{}
	if nav := render.Navbar(bar, m.width); nav != "" {
		parts = append(parts, nav)
	}
	parts = append(parts, "", body, "", helpLine(m.screen.Help()))
	return strings.Join(parts, "\n")
}

// Route is the current screen.
func (m Model) Route() Route { return m.screen.Route() }
