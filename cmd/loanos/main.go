// cmd/loanos/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "loanos"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		a          = &app{}
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "LoanOS loan origination client",
		Long:          "LoanOS talks to the loan origination service: customers apply and follow their\napplications, admins review them and run the KYC, credit and eligibility steps.\n\nWithout a subcommand the interactive console starts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.open(configPath, logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), a, consoleOptions{})
		},
	}

	cobra.OnFinalize(a.close)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		consoleCmd(a),
		registerCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		applyCmd(a),
		applicationsCmd(a),
		adminCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
