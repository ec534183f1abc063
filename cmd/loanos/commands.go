// cmd/loanos/commands.go
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"loanos-client/internal/guard"
	"loanos-client/internal/models"
	"loanos-client/internal/render"
	"loanos-client/internal/views"
	admindetail "loanos-client/internal/views/admin/detail"
	adminlist "loanos-client/internal/views/admin/list"
	appdetail "loanos-client/internal/views/application/detail"
	applist "loanos-client/internal/views/application/list"
	"loanos-client/internal/views/application/submit"
	"loanos-client/internal/views/auth/login"
	"loanos-client/internal/views/auth/register"
	"loanos-client/internal/workflow"
)

func registerCmd(a *app) *cobra.Command {
	var form register.Form
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := register.NewHandler(a.api, a.deps())
			if err := h.Submit(cmd.Context(), form); err != nil {
				return failure(h.Runner, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), h.Status().Notice)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Mobile, "mobile", "", "Mobile number")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password")
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var mobile, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.sessions.Restore(ctx)
			h := login.NewHandler(a.api, a.sessions, a.deps())
			if _, err := h.Submit(ctx, mobile, password); err != nil {
				return failure(h.Runner, err)
			}
			sess, _ := a.sessions.Current().Session()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as user %d (%s)\n", sess.UserID, sess.Role())
			return nil
		},
	}
	cmd.Flags().StringVar(&mobile, "mobile", "", "Mobile number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.sessions.Restore(ctx)
			a.sessions.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.sessions.Restore(cmd.Context())
			sess, ok := st.Session()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d (%s), session expires %s\n",
				sess.UserID, sess.Role(), sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func applyCmd(a *app) *cobra.Command {
	form := submit.NewForm()
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a loan application",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.restore(ctx, guard.Customer); err != nil {
				return err
			}
			h := submit.NewHandler(a.api, a.deps())
			if _, err := h.Submit(ctx, form); err != nil {
				return failure(h.Runner, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Application submitted")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FullName, "name", "", "Full name")
	f.StringVar(&form.Mobile, "mobile", "", "Mobile number")
	f.StringVar(&form.PAN, "pan", "", "PAN")
	f.StringVar(&form.DOB, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&form.EmploymentType, "employment", form.EmploymentType, strings.Join(submit.EmploymentTypes(), " or "))
	f.StringVar(&form.MonthlyIncome, "income", "", "Monthly income")
	f.StringVar(&form.LoanAmount, "amount", "", "Loan amount")
	return cmd
}

func applicationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Your loan applications",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your applications",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				if _, err := a.restore(ctx, guard.User); err != nil {
					return err
				}
				h := applist.NewHandler(a.api, a.deps())
				if err := h.Load(ctx); err != nil {
					return failure(h.Runner, err)
				}
				if h.Empty() {
					fmt.Fprintln(cmd.OutOrStdout(), applist.MessageEmpty)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Table(h.Rows(), -1))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one application and its progress",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx := cmd.Context()
				if _, err := a.restore(ctx, guard.User); err != nil {
					return err
				}
				h := appdetail.NewHandler(a.api, id, a.deps())
				if err := h.Load(ctx); err != nil {
					return failure(h.Runner, err)
				}
				sum, _ := h.Summary()
				printSummary(cmd.OutOrStdout(), sum)
				return nil
			},
		},
	)
	return cmd
}

func adminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Review applications and run workflow steps",
	}

	var filter models.AdminFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List all applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.restore(ctx, guard.Admin); err != nil {
				return err
			}
			h := adminlist.NewHandler(a.api, a.deps())
			if err := h.Apply(ctx, filter); err != nil {
				return failure(h.Runner, err)
			}
			rows := h.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No applications found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table(rows, -1))
			return nil
		},
	}
	list.Flags().Var((*statusFlag)(&filter.Status), "status", "Filter by status")
	list.Flags().StringVar(&filter.Eligible, "eligible", "", "Filter by eligibility: true or false")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show an application with its verification results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := adminHandler(cmd, a, args[0])
			if err != nil {
				return err
			}
			sum, _ := h.Summary()
			printSummary(cmd.OutOrStdout(), sum)
			fmt.Fprintln(cmd.OutOrStdout(), render.Buttons(h.Buttons(), actionCommands))
			return nil
		},
	}

	cmd.AddCommand(list, show,
		triggerCmd(a, "kyc", "Run the KYC check", workflow.ActionRunKYC),
		triggerCmd(a, "credit", "Run the credit bureau check", workflow.ActionRunCredit),
		triggerCmd(a, "eligibility", "Run the eligibility engine", workflow.ActionRunEligibility),
	)
	return cmd
}

var actionCommands = map[workflow.Action]string{
	workflow.ActionRunKYC:         "admin kyc",
	workflow.ActionRunCredit:      "admin credit",
	workflow.ActionRunEligibility: "admin eligibility",
}

func triggerCmd(a *app, use, short string, action workflow.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := adminHandler(cmd, a, args[0])
			if err != nil {
				return err
			}
			if err := h.Trigger(cmd.Context(), action); err != nil {
				return failure(h.Runner, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Application #%d is now %s\n", h.ID(), h.WorkflowStatus())
			return nil
		},
	}
}

func adminHandler(cmd *cobra.Command, a *app, rawID string) (*admindetail.Handler, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if _, err := a.restore(ctx, guard.Admin); err != nil {
		return nil, err
	}
	h := admindetail.NewHandler(a.api, id, a.deps())
	if err := h.Load(ctx); err != nil {
		return nil, failure(h.Runner, err)
	}
	return h, nil
}

func printSummary(w io.Writer, sum views.Summary) {
	fmt.Fprintln(w, render.Title(fmt.Sprintf("Application #%d", sum.Application.ID))+"  "+render.Badge(sum.Application.Status))
	fmt.Fprintln(w, render.Timeline(sum.Timeline))
	fmt.Fprintln(w, render.Applicant(sum.Application))
	fmt.Fprintln(w, render.KYC(sum.KYCResult))
	fmt.Fprintln(w, render.Credit(sum.CreditResult))
	fmt.Fprintln(w, render.Decision(sum.Decision))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid application id %q", raw)
	}
	return id, nil
}

// statusFlag accepts any case and normalizes to the wire form.
type statusFlag workflow.Status

func (s *statusFlag) String() string { return string(*s) }

func (s *statusFlag) Set(v string) error {
	st := workflow.ParseStatus(v)
	if st != "" && !st.Known() {
		return fmt.Errorf("unknown status %q", v)
	}
	*s = statusFlag(st)
	return nil
}

func (s *statusFlag) Type() string { return "status" }
