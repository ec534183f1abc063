package render

import (
	"strings"
	"testing"

	"loanos-client/internal/models"
	"loanos-client/internal/views"
	"loanos-client/internal/views/navbar"
	"loanos-client/internal/workflow"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, colorSuccess, CategoryColor(workflow.CategorySuccess))
	assert.Equal(t, colorError, CategoryColor(workflow.CategoryDanger))
	assert.Equal(t, colorInfo, CategoryColor(workflow.CategoryInfo))
	assert.Equal(t, colorWarning, CategoryColor(workflow.CategoryWarning))
	assert.Equal(t, colorMuted, CategoryColor(workflow.CategoryNeutral))
	assert.Equal(t, colorMuted, CategoryColor("whatever"))
}

func TestBadge(t *testing.T) {
	assert.Contains(t, Badge(workflow.StatusKYCPending), "KYC_PENDING")
	assert.Contains(t, Badge(""), "UNKNOWN")
}

func TestTimeline(t *testing.T) {
	out := Timeline(workflow.Timeline(workflow.StatusKYCCompleted))
	assert.Contains(t, out, "✓ DRAFT")
	assert.Contains(t, out, "✓ KYC PENDING")
	assert.Contains(t, out, "● KYC COMPLETED")
	assert.Contains(t, out, "○ ELIGIBLE")
	assert.NotContains(t, out, "NOT_ELIGIBLE")

	out = Timeline(workflow.Timeline(workflow.StatusNotEligible))
	assert.Contains(t, out, "✓ CREDIT CHECK_COMPLETED")
	assert.Contains(t, out, "NOT_ELIGIBLE")
}

func TestTable(t *testing.T) {
	out := Table([]views.Row{
		{ID: 1, FullName: "Asha Rao", PAN: "ABCDE1234F", Status: workflow.StatusDraft},
		{ID: 12, FullName: "Vik", PAN: "PQRST9876Z", Status: workflow.StatusEligible},
	}, 1)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Applicant")
	assert.Contains(t, lines[2], "> ")
	assert.Contains(t, lines[2], "PQRST9876Z")
	assert.Equal(t, strings.Index(lines[1], "ABCDE1234F"), strings.Index(lines[2], "PQRST9876Z"), "columns are aligned")
	assert.Equal(t, lipgloss.Width(lines[0][:strings.Index(lines[0], "Status")]), lipgloss.Width(lines[1][:strings.Index(lines[1], "DRAFT")])-1)
}

func TestCards(t *testing.T) {
	out := Cards([]views.Row{{ID: 7, FullName: "Asha", PAN: "P", Status: workflow.StatusDraft}}, 0)
	assert.Contains(t, out, "Application #7")
	assert.Contains(t, out, "Name: Asha")
}

func TestResultCards(t *testing.T) {
	assert.Contains(t, KYC(nil), "KYC verification is pending.")
	assert.Contains(t, Credit(nil), "Credit bureau check is pending.")

	k := KYC(&models.KYCResult{Status: "VERIFIED", NameMatchScore: 0.87, Reason: "minor spelling"})
	assert.Contains(t, k, "0.87")
	assert.Contains(t, k, "Remarks: minor spelling")
	assert.NotContains(t, KYC(&models.KYCResult{Status: "VERIFIED"}), "Remarks")

	c := Credit(&models.CreditResult{Status: "GOOD", CreditScore: 760, ActiveLoans: 2})
	assert.Contains(t, c, "Credit Score: 760")
	assert.Contains(t, c, "Active Loans: 2")
}

func TestDecision(t *testing.T) {
	assert.Contains(t, Decision(workflow.DecisionFor(workflow.StatusEligible)), "Applicant is eligible for the loan.")
	assert.Contains(t, Decision(workflow.DecisionFor(workflow.StatusDraft)), "Application is still under processing.")
}

func TestButtons(t *testing.T) {
	keys := map[workflow.Action]string{
		workflow.ActionRunKYC:         "k",
		workflow.ActionRunCredit:      "c",
		workflow.ActionRunEligibility: "e",
	}
	out := Buttons(workflow.Buttons(workflow.StatusDraft, false), keys)
	assert.Contains(t, out, "[k] Run KYC")
	assert.Contains(t, out, "[c] Run Credit Check")
	assert.Contains(t, out, "[e] Run Eligibility")
}

func TestNavbar(t *testing.T) {
	assert.Empty(t, Navbar(navbar.Bar{}, 80))

	out := Navbar(navbar.Bar{Visible: true, Badge: "Admin", IsAdmin: true, Links: []navbar.Link{{Label: "Admin Panel"}, {Label: "Logout"}}}, 80)
	assert.Contains(t, out, "LoanOS")
	assert.Contains(t, out, "Admin Panel")
	assert.Contains(t, out, "Logout")
}

func TestMessages(t *testing.T) {
	assert.Empty(t, Messages(views.Status{}))
	out := Messages(views.Status{Error: "Failed to run KYC", Notice: "ok"})
	assert.Contains(t, out, "! Failed to run KYC")
	assert.Contains(t, out, "ok")
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:          "₹0",
		999:        "₹999",
		85000:      "₹85,000",
		500000:     "₹5,00,000",
		12345678.5: "₹1,23,45,678.50",
		-1500:      "-₹1,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(in), "%v", in)
	}
}
