// internal/models/application.go
package models

import "loanos-client/internal/workflow"

// Application is a loan application as owned by the loan service. The client
// only displays it.
type Application struct {
	ID             int64           `json:"id"`
	FullName       string          `json:"full_name"`
	Mobile         string          `json:"mobile"`
	PAN            string          `json:"pan"`
	DOB            string          `json:"dob,omitempty"`
	EmploymentType string          `json:"employment_type"`
	MonthlyIncome  float64         `json:"monthly_income"`
	LoanAmount     float64         `json:"loan_amount"`
	Status         workflow.Status `json:"status"`
}

// ApplicationDetail is the single-application payload with verification results.
type ApplicationDetail struct {
	Application  Application   `json:"application"`
	KYCResult    *KYCResult    `json:"kyc_result,omitempty"`
	CreditResult *CreditResult `json:"credit_result,omitempty"`
}

type KYCResult struct {
	Status         string  `json:"status"`
	NameMatchScore float64 `json:"name_match_score"`
	Reason         string  `json:"reason,omitempty"`
}

type CreditResult struct {
	Status      string `json:"status"`
	CreditScore int    `json:"credit_score"`
	ActiveLoans int    `json:"active_loans"`
}

// Employment types offered by the application form.
const (
	EmploymentSalaried     = "Salaried"
	EmploymentSelfEmployed = "Self-Employed"
)

// ApplicationDraft is the body of a new application submission.
type ApplicationDraft struct {
	FullName       string  `json:"full_name"`
	Mobile         string  `json:"mobile"`
	PAN            string  `json:"pan"`
	DOB            string  `json:"dob"`
	EmploymentType string  `json:"employment_type"`
	MonthlyIncome  float64 `json:"monthly_income"`
	LoanAmount     float64 `json:"loan_amount"`
}

// AdminFilter narrows the admin application list. Empty fields are omitted.
type AdminFilter struct {
	Status   workflow.Status
	Eligible string // "", "true" or "false"
}
