package render

import (
	"fmt"
	"strconv"
	"strings"

	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/views/navbar"
	"loanos-client/internal/workflow"

	"github.com/charmbracelet/lipgloss"
)

func Title(text string) string { return titleStyle.Render(text) }

func Subtitle(text string) string { return subtitleStyle.Render(text) }

func Muted(text string) string { return mutedStyle.Render(text) }

func Cursor(text string) string { return cursorStyle.Render(text) }

func Footer(text string) string { return footerStyle.Render(text) }

// Messages renders the error and notice lines of a view, if any.
func Messages(st views.Status) string {
	var lines []string
	if st.Error != "" {
		lines = append(lines, errorStyle.Render("! "+st.Error))
	}
	if st.Notice != "" {
		lines = append(lines, noticeStyle.Render(st.Notice))
	}
	return strings.Join(lines, "\n")
}

// Badge renders a status in its category colour. Unknown statuses render
// neutral.
func Badge(s workflow.Status) string {
	c := CategoryColor(workflow.ColorFor(s))
	return lipgloss.NewStyle().
		Foreground(colorBase).
		Background(c).
		Padding(0, 1).
		Render(s.String())
}

// Timeline renders the status line with the current step highlighted and
// earlier steps marked done. NOT_ELIGIBLE is shown apart from the line,
// and only when it is the current status.
func Timeline(steps []workflow.Step) string {
	parts := make([]string, 0, len(steps))
	var offLine string
	for _, st := range steps {
		label := strings.Replace(string(st.Status), "_", " ", 1)
		if st.Status == workflow.StatusNotEligible {
			if st.Current {
				offLine = Badge(st.Status)
			}
			continue
		}
		switch {
		case st.Current:
			parts = append(parts, lipgloss.NewStyle().Bold(true).Underline(true).
				Foreground(CategoryColor(workflow.ColorFor(st.Status))).Render("● "+label))
		case st.Done:
			parts = append(parts, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ "+label))
		default:
			parts = append(parts, mutedStyle.Render("○ "+label))
		}
	}
	line := strings.Join(parts, mutedStyle.Render(" → "))
	if offLine != "" {
		line += "   " + offLine
	}
	return line
}

// Table renders application rows. selected < 0 draws no cursor.
func Table(rows []views.Row, selected int) string {
	idW, nameW, panW := len("ID"), len("Applicant"), len("PAN")
	for _, r := range rows {
		idW = max(idW, len(strconv.FormatInt(r.ID, 10)))
		nameW = max(nameW, lipgloss.Width(r.FullName))
		panW = max(panW, len(r.PAN))
	}
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	}

	lines := []string{labelStyle.Render("  " + pad("ID", idW) + "  " + pad("Applicant", nameW) + "  " + pad("PAN", panW) + "  Status")}
	for i, r := range rows {
		prefix := "  "
		if i == selected {
			prefix = Cursor("> ")
		}
		lines = append(lines, prefix+pad(strconv.FormatInt(r.ID, 10), idW)+"  "+pad(r.FullName, nameW)+"  "+pad(r.PAN, panW)+"  "+Badge(r.Status))
	}
	return strings.Join(lines, "\n")
}

// Cards renders one application per card, the customer dashboard layout.
func Cards(rows []views.Row, selected int) string {
	cards := make([]string, 0, len(rows))
	for i, r := range rows {
		style := cardStyle
		if i == selected {
			style = style.BorderForeground(colorFocus)
		}
		body := strings.Join([]string{
			Title(fmt.Sprintf("Application #%d", r.ID)) + "  " + Badge(r.Status),
			field("Name", r.FullName),
			field("PAN", r.PAN),
		}, "\n")
		cards = append(cards, style.Render(body))
	}
	return strings.Join(cards, "\n")
}

// Applicant renders the applicant's details.
func Applicant(app models.Application) string {
	return cardStyle.Render(strings.Join([]string{
		Title("Applicant Details"),
		field("Name", app.FullName),
		field("Mobile", app.Mobile),
		field("PAN", app.PAN),
		field("Employment", app.EmploymentType),
		field("Monthly Income", Money(app.MonthlyIncome)),
		field("Loan Amount", Money(app.LoanAmount)),
	}, "\n"))
}

func KYC(k *models.KYCResult) string {
	lines := []string{Title("KYC Verification")}
	if k == nil {
		lines = append(lines, Muted("KYC verification is pending."))
	} else {
		lines = append(lines,
			field("Status", k.Status),
			field("Name Match Score", strconv.FormatFloat(k.NameMatchScore, 'f', -1, 64)),
		)
		if k.Reason != "" {
			lines = append(lines, field("Remarks", k.Reason))
		}
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func Credit(c *models.CreditResult) string {
	lines := []string{Title("Credit Check")}
	if c == nil {
		lines = append(lines, Muted("Credit bureau check is pending."))
	} else {
		lines = append(lines,
			field("Status", c.Status),
			field("Credit Score", strconv.Itoa(c.CreditScore)),
			field("Active Loans", strconv.Itoa(c.ActiveLoans)),
		)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Decision renders the final decision banner.
func Decision(d workflow.Decision) string {
	var style lipgloss.Style
	switch d.Outcome {
	case workflow.OutcomeApproved:
		style = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	case workflow.OutcomeRejected:
		style = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	default:
		style = lipgloss.NewStyle().Foreground(colorWarning)
	}
	return cardStyle.Render(Title("Final Decision") + "\n" + style.Render(d.Message))
}

// Buttons renders the admin trigger buttons with their shortcut keys.
func Buttons(buttons []workflow.ButtonState, keys map[workflow.Action]string) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		label := fmt.Sprintf("[%s] %s", keys[b.Action], b.Label)
		if b.Enabled {
			parts = append(parts, lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

// Navbar renders the top bar. It is blank while the session is restoring.
func Navbar(bar navbar.Bar, width int) string {
	if !bar.Visible {
		return ""
	}
	left := brandStyle.Render("Loan") + brandAccent.Render("OS")
	var right []string
	if bar.Badge != "" {
		c := colorInfo
		if bar.IsAdmin {
			c = colorError
		}
		right = append(right, lipgloss.NewStyle().Foreground(colorBase).Background(c).Padding(0, 1).Render(bar.Badge))
	}
	for _, l := range bar.Links {
		right = append(right, l.Label)
	}
	r := strings.Join(right, "  ")
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(r)-2)
	return navStyle.Render(left + strings.Repeat(" ", gap) + r)
}

// Money formats an amount in rupees with Indian digit grouping.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		whole = strings.Join(groups, ",") + "," + tail
	}
	out := "₹" + whole
	if frac != "00" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
