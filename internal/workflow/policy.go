package workflow

// Category is the badge colour class for a status.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryDanger  Category = "danger"
	CategoryInfo    Category = "info"
	CategoryWarning Category = "warning"
	CategoryNeutral Category = "neutral"
)

// ColorFor maps a status to its badge category. Total over all inputs.
func ColorFor(s Status) Category {
	switch s {
	case StatusEligible:
		return CategorySuccess
	case StatusNotEligible:
		return CategoryDanger
	case StatusKYCCompleted, StatusCreditCheckCompleted:
		return CategoryInfo
	case StatusKYCPending, StatusCreditCheckPending:
		return CategoryWarning
	default:
		return CategoryNeutral
	}
}

// Action is an admin-triggered verification step.
type Action string

const (
	ActionRunKYC         Action = "runKyc"
	ActionRunCredit      Action = "runCredit"
	ActionRunEligibility Action = "runEligibility"
)

// Actions lists the trigger actions in workflow order.
func Actions() []Action {
	return []Action{ActionRunKYC, ActionRunCredit, ActionRunEligibility}
}

// actionSource is the only status each action may be triggered from.
var actionSource = map[Action]Status{
	ActionRunKYC:         StatusDraft,
	ActionRunCredit:      StatusKYCCompleted,
	ActionRunEligibility: StatusCreditCheckCompleted,
}

// PermittedAction returns the single action the status allows, if any.
func PermittedAction(s Status) (Action, bool) {
	for _, a := range Actions() {
		if actionSource[a] == s {
			return a, true
		}
	}
	return "", false
}

// Permits reports whether action a may be triggered at status s.
func Permits(s Status, a Action) bool {
	src, ok := actionSource[a]
	return ok && src == s
}

// Source returns the status the action must be triggered from.
func (a Action) Source() Status {
	return actionSource[a]
}

// Endpoint returns the trigger path prefix; the application id is appended.
func (a Action) Endpoint() string {
	switch a {
	case ActionRunKYC:
		return "/kyc"
	case ActionRunCredit:
		return "/credit"
	case ActionRunEligibility:
		return "/eligibility"
	default:
		return ""
	}
}

// Label is the button text, with the in-progress variant while busy.
func (a Action) Label(busy bool) string {
	switch a {
	case ActionRunKYC:
		if busy {
			return "Running KYC..."
		}
		return "Run KYC"
	case ActionRunCredit:
		if busy {
			return "Running Credit Check..."
		}
		return "Run Credit Check"
	case ActionRunEligibility:
		if busy {
			return "Evaluating Eligibility..."
		}
		return "Run Eligibility"
	default:
		return string(a)
	}
}

// FailureMessage is shown when the trigger fails without a server detail.
func (a Action) FailureMessage() string {
	switch a {
	case ActionRunKYC:
		return "Failed to run KYC"
	case ActionRunCredit:
		return "Failed to run credit check"
	case ActionRunEligibility:
		return "Failed to run eligibility check"
	default:
		return "Action failed"
	}
}

// ButtonState is how one trigger button renders.
type ButtonState struct {
	Action  Action
	Label   string
	Enabled bool
}

// Buttons derives all three trigger buttons. While busy every button is
// disabled and the permitted one shows its in-progress label.
func Buttons(s Status, busy bool) []ButtonState {
	out := make([]ButtonState, 0, len(actionSource))
	for _, a := range Actions() {
		permitted := Permits(s, a)
		out = append(out, ButtonState{
			Action:  a,
			Label:   a.Label(busy && permitted),
			Enabled: permitted && !busy,
		})
	}
	return out
}

// Outcome is the final-decision banner kind.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
	OutcomePending  Outcome = "pending"
)

// Decision is the final-decision banner for a status.
type Decision struct {
	Outcome Outcome
	Message string
}

// DecisionFor returns the banner: shown in place of the progress control once
// the status is terminal, and as a pending notice before that.
func DecisionFor(s Status) Decision {
	switch s {
	case StatusEligible:
		return Decision{Outcome: OutcomeApproved, Message: "Applicant is eligible for the loan."}
	case StatusNotEligible:
		return Decision{Outcome: OutcomeRejected, Message: "Applicant is not eligible for the loan."}
	default:
		return Decision{Outcome: OutcomePending, Message: "Application is still under processing."}
	}
}

// CustomerDecisionFor is DecisionFor worded for the applicant.
func CustomerDecisionFor(s Status) Decision {
	switch s {
	case StatusEligible:
		return Decision{Outcome: OutcomeApproved, Message: "Congratulations! You are eligible for this loan."}
	case StatusNotEligible:
		return Decision{Outcome: OutcomeRejected, Message: "Unfortunately, you are not eligible at this time."}
	default:
		return Decision{Outcome: OutcomePending, Message: "Your application is under review. Please check back later."}
	}
}

// Step is one badge of the workflow timeline.
type Step struct {
	Status  Status
	Current bool
	// Done is set for main-line steps before the current one.
	Done bool
}

// Timeline returns all seven badges with the current one marked. For
// NOT_ELIGIBLE the main line up to CREDIT_CHECK_COMPLETED counts as done.
func Timeline(s Status) []Step {
	idx, onLine := ProgressIndex(s)
	if s == StatusNotEligible {
		idx, _ = ProgressIndex(StatusCreditCheckCompleted)
		idx++
		onLine = true
	}

	steps := make([]Step, 0, len(progression)+1)
	for i, st := range progression {
		steps = append(steps, Step{
			Status:  st,
			Current: st == s,
			Done:    onLine && i < idx,
		})
	}
	steps = append(steps, Step{Status: StatusNotEligible, Current: s == StatusNotEligible})
	return steps
}
