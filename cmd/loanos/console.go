// cmd/loanos/console.go
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"loanos-client/internal/tui"
)

type consoleOptions struct {
	start string
	id    int64
}

func consoleCmd(a *app) *cobra.Command {
	var opts consoleOptions
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start the interactive console (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.start, "start", "", "First screen: landing, login, register, user, apply, application, admin, admin.application")
	cmd.Flags().Int64Var(&opts.id, "id", 0, "Application id for the detail screens")
	return cmd
}

func runConsole(ctx context.Context, a *app, opts consoleOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := tui.New(ctx, tui.Services{
		API:      a.api,
		Sessions: a.sessions,
		Deps:     a.deps(),
	}, tui.Options{Start: tui.Route(opts.start), StartID: opts.id})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
