package views

import (
	"loanos-client/internal/models"
	"loanos-client/internal/workflow"
)

// Row is one line of an application list.
type Row struct {
	ID       int64
	FullName string
	PAN      string
	Status   workflow.Status
	Category workflow.Category
}

func Rows(apps []models.Application) []Row {
	rows := make([]Row, len(apps))
	for i, a := range apps {
		rows[i] = Row{
			ID:       a.ID,
			FullName: a.FullName,
			PAN:      a.PAN,
			Status:   a.Status,
			Category: workflow.ColorFor(a.Status),
		}
	}
	return rows
}

// Audience selects the wording of the decision banner.
type Audience int

const (
	AudienceCustomer Audience = iota
	AudienceAdmin
)

// Summary is everything a detail page derives from an application.
type Summary struct {
	Application models.Application
	Category    workflow.Category
	Timeline    []workflow.Step
	// Progress is the main-line position; OnLine is false for NOT_ELIGIBLE
	// and unknown statuses.
	Progress     int
	OnLine       bool
	Terminal     bool
	Decision     workflow.Decision
	KYCResult    *models.KYCResult
	CreditResult *models.CreditResult
}

func Summarize(d *models.ApplicationDetail, audience Audience) Summary {
	status := d.Application.Status
	progress, onLine := workflow.ProgressIndex(status)

	decision := workflow.CustomerDecisionFor(status)
	if audience == AudienceAdmin {
		decision = workflow.DecisionFor(status)
	}

	return Summary{
		Application:  d.Application,
		Category:     workflow.ColorFor(status),
		Timeline:     workflow.Timeline(status),
		Progress:     progress,
		OnLine:       onLine,
		Terminal:     workflow.IsTerminal(status),
		Decision:     decision,
		KYCResult:    d.KYCResult,
		CreditResult: d.CreditResult,
	}
}
