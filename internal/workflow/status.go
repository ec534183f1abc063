// Package workflow models the loan application status line and the UI policy
// derived from it. Everything here is pure: no I/O, no shared state.
package workflow

import (
	"encoding/json"
	"strings"
)

// Status is an application status as reported by the loan service. Values
// outside the known set are kept and treated as unknown.
type Status string

const (
	StatusDraft                Status = "DRAFT"
	StatusKYCPending           Status = "KYC_PENDING"
	StatusKYCCompleted         Status = "KYC_COMPLETED"
	StatusCreditCheckPending   Status = "CREDIT_CHECK_PENDING"
	StatusCreditCheckCompleted Status = "CREDIT_CHECK_COMPLETED"
	StatusEligible             Status = "ELIGIBLE"
	StatusNotEligible          Status = "NOT_ELIGIBLE"
)

// progression is the main line. NOT_ELIGIBLE is off the line.
var progression = []Status{
	StatusDraft,
	StatusKYCPending,
	StatusKYCCompleted,
	StatusCreditCheckPending,
	StatusCreditCheckCompleted,
	StatusEligible,
}

// Progression returns the ordered main line, DRAFT through ELIGIBLE.
func Progression() []Status {
	out := make([]Status, len(progression))
	copy(out, progression)
	return out
}

// All returns every known status, main line first, then NOT_ELIGIBLE.
func All() []Status {
	return append(Progression(), StatusNotEligible)
}

// ParseStatus normalizes a status typed by the user, such as a filter flag.
// It never fails: unknown values come back upper-cased. Statuses read from
// the service are not normalized.
func ParseStatus(raw string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}

// Known reports whether s is one of the seven defined statuses.
func (s Status) Known() bool {
	if s == StatusNotEligible {
		return true
	}
	_, ok := ProgressIndex(s)
	return ok
}

func (s Status) String() string {
	if s == "" {
		return "UNKNOWN"
	}
	return string(s)
}

// ProgressIndex returns the position of s on the main line. The second result
// is false for NOT_ELIGIBLE, which renders as an out-of-band terminal marker,
// and for unknown statuses.
func ProgressIndex(s Status) (int, bool) {
	for i, step := range progression {
		if step == s {
			return i, true
		}
	}
	return -1, false
}

// IsTerminal reports whether a final decision has been made.
func IsTerminal(s Status) bool {
	return s == StatusEligible || s == StatusNotEligible
}

// CanTransition reports whether the service may legally move an application
// from one status to another: strictly forward along the main line, or from
// CREDIT_CHECK_COMPLETED to NOT_ELIGIBLE. Statuses never regress.
func CanTransition(from, to Status) bool {
	if from == StatusCreditCheckCompleted && to == StatusNotEligible {
		return true
	}
	fi, ok := ProgressIndex(from)
	if !ok {
		return false
	}
	ti, ok := ProgressIndex(to)
	if !ok {
		return false
	}
	return ti > fi
}

// UnmarshalJSON keeps the wire value verbatim, so a status that differs from
// the enum only in case or spacing stays unknown and permits no action. A
// null status decodes to "".
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = ""
		return nil
	}
	*s = Status(*raw)
	return nil
}
