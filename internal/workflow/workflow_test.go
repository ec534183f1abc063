package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unknownStatuses = []Status{"", "APPROVED", "kyc_pending_v2", "DISBURSED", "  "}

func TestColorFor(t *testing.T) {
	tests := []struct {
		status Status
		want   Category
	}{
		{StatusDraft, CategoryNeutral},
		{StatusKYCPending, CategoryWarning},
		{StatusKYCCompleted, CategoryInfo},
		{StatusCreditCheckPending, CategoryWarning},
		{StatusCreditCheckCompleted, CategoryInfo},
		{StatusEligible, CategorySuccess},
		{StatusNotEligible, CategoryDanger},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFor(tt.status))
			assert.Equal(t, ColorFor(tt.status), ColorFor(tt.status), "pure function")
		})
	}
}

func TestColorFor_IsTotal(t *testing.T) {
	valid := map[Category]bool{
		CategorySuccess: true, CategoryDanger: true, CategoryInfo: true,
		CategoryWarning: true, CategoryNeutral: true,
	}
	for _, s := range All() {
		assert.True(t, valid[ColorFor(s)], "status %s", s)
	}
	for _, s := range unknownStatuses {
		assert.Equal(t, CategoryNeutral, ColorFor(s), "unknown status %q", s)
	}
}

func TestPermittedAction_ExactlyOnePerStatus(t *testing.T) {
	want := map[Status]Action{
		StatusDraft:                ActionRunKYC,
		StatusKYCPending:           "",
		StatusKYCCompleted:         ActionRunCredit,
		StatusCreditCheckPending:   "",
		StatusCreditCheckCompleted: ActionRunEligibility,
		StatusEligible:             "",
		StatusNotEligible:          "",
	}
	require.Len(t, All(), 7)

	for _, s := range All() {
		t.Run(string(s), func(t *testing.T) {
			action, ok := PermittedAction(s)
			assert.Equal(t, want[s], action)
			assert.Equal(t, want[s] != "", ok)

			permitted := 0
			for _, a := range Actions() {
				if Permits(s, a) {
					permitted++
					assert.Equal(t, want[s], a)
				}
			}
			assert.LessOrEqual(t, permitted, 1)
		})
	}
}

func TestPermittedAction_UnknownGrantsNothing(t *testing.T) {
	for _, s := range unknownStatuses {
		_, ok := PermittedAction(s)
		assert.False(t, ok, "status %q", s)
		for _, a := range Actions() {
			assert.False(t, Permits(s, a))
		}
	}
	assert.False(t, Permits(StatusDraft, Action("runDisbursement")))
}

func TestProgressIndex(t *testing.T) {
	prev := -1
	for _, s := range Progression() {
		idx, ok := ProgressIndex(s)
		require.True(t, ok, "status %s", s)
		assert.Greater(t, idx, prev, "strictly increasing at %s", s)
		prev = idx
	}

	idx, ok := ProgressIndex(StatusNotEligible)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	for _, s := range unknownStatuses {
		_, ok := ProgressIndex(s)
		assert.False(t, ok)
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range All() {
		want := s == StatusEligible || s == StatusNotEligible
		assert.Equal(t, want, IsTerminal(s), "status %s", s)
	}
	assert.False(t, IsTerminal("SOMETHING_NEW"))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusKYCPending))
	assert.True(t, CanTransition(StatusDraft, StatusKYCCompleted))
	assert.True(t, CanTransition(StatusCreditCheckCompleted, StatusEligible))
	assert.True(t, CanTransition(StatusCreditCheckCompleted, StatusNotEligible))

	assert.False(t, CanTransition(StatusKYCCompleted, StatusDraft), "never regresses")
	assert.False(t, CanTransition(StatusKYCPending, StatusKYCPending))
	assert.False(t, CanTransition(StatusKYCCompleted, StatusNotEligible), "side branch only from credit check completed")
	assert.False(t, CanTransition(StatusNotEligible, StatusEligible))
	assert.False(t, CanTransition(StatusEligible, StatusNotEligible))
	assert.False(t, CanTransition("NEW", StatusDraft))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusKYCPending, ParseStatus(" kyc_pending "))
	assert.True(t, ParseStatus("eligible").Known())
	assert.False(t, ParseStatus("archived").Known())
	assert.Equal(t, Status("ARCHIVED"), ParseStatus("archived"))
	assert.Equal(t, "UNKNOWN", Status("").String())
}

func TestButtons(t *testing.T) {
	buttons := Buttons(StatusDraft, false)
	require.Len(t, buttons, 3)
	assert.Equal(t, ButtonState{Action: ActionRunKYC, Label: "Run KYC", Enabled: true}, buttons[0])
	assert.False(t, buttons[1].Enabled)
	assert.False(t, buttons[2].Enabled)

	busy := Buttons(StatusDraft, true)
	assert.Equal(t, "Running KYC...", busy[0].Label)
	for _, b := range busy {
		assert.False(t, b.Enabled, "busy disables %s", b.Action)
	}
	assert.Equal(t, "Run Credit Check", busy[1].Label)

	for _, b := range Buttons(StatusNotEligible, false) {
		assert.False(t, b.Enabled)
	}
}

func TestActionMetadata(t *testing.T) {
	assert.Equal(t, "/kyc", ActionRunKYC.Endpoint())
	assert.Equal(t, "/credit", ActionRunCredit.Endpoint())
	assert.Equal(t, "/eligibility", ActionRunEligibility.Endpoint())
	assert.Equal(t, StatusKYCCompleted, ActionRunCredit.Source())
	assert.Equal(t, "Failed to run eligibility check", ActionRunEligibility.FailureMessage())
	assert.Equal(t, "Evaluating Eligibility...", ActionRunEligibility.Label(true))
}

func TestDecisionFor(t *testing.T) {
	assert.Equal(t, OutcomeApproved, DecisionFor(StatusEligible).Outcome)
	assert.Equal(t, OutcomeRejected, DecisionFor(StatusNotEligible).Outcome)
	assert.Equal(t, OutcomePending, DecisionFor(StatusCreditCheckPending).Outcome)
	assert.Equal(t, OutcomePending, DecisionFor("MYSTERY").Outcome)
}

func TestTimeline(t *testing.T) {
	steps := Timeline(StatusKYCCompleted)
	require.Len(t, steps, 7)
	assert.True(t, steps[0].Done)
	assert.True(t, steps[1].Done)
	assert.True(t, steps[2].Current)
	assert.False(t, steps[2].Done)
	assert.False(t, steps[3].Done)
	assert.Equal(t, StatusNotEligible, steps[6].Status)

	rejected := Timeline(StatusNotEligible)
	assert.True(t, rejected[4].Done)
	assert.False(t, rejected[5].Done, "ELIGIBLE is never reached on the side branch")
	assert.True(t, rejected[6].Current)

	for _, st := range Timeline("MYSTERY") {
		assert.False(t, st.Current)
		assert.False(t, st.Done)
	}
}

// Status DRAFT: only runKyc enabled; after it succeeds the new status decides
// what is enabled next.
func TestScenario_KYCThenCredit(t *testing.T) {
	action, ok := PermittedAction(StatusDraft)
	require.True(t, ok)
	assert.Equal(t, ActionRunKYC, action)

	for _, next := range []Status{StatusKYCPending, StatusKYCCompleted} {
		require.True(t, CanTransition(StatusDraft, next))
		assert.False(t, Permits(next, ActionRunKYC))
		assert.Equal(t, next == StatusKYCCompleted, Permits(next, ActionRunCredit))
	}
}

// Status CREDIT_CHECK_COMPLETED, eligibility returns NOT_ELIGIBLE: the final
// decision is negative and nothing else is enabled.
func TestScenario_EligibilityRejected(t *testing.T) {
	require.True(t, Permits(StatusCreditCheckCompleted, ActionRunEligibility))
	require.True(t, CanTransition(StatusCreditCheckCompleted, StatusNotEligible))

	assert.True(t, IsTerminal(StatusNotEligible))
	assert.Equal(t, OutcomeRejected, DecisionFor(StatusNotEligible).Outcome)
	_, ok := PermittedAction(StatusNotEligible)
	assert.False(t, ok)
}

func TestStatusUnmarshalJSON(t *testing.T) {
	var v struct {
		Status Status `json:"status"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"status":"KYC_PENDING"}`), &v))
	assert.Equal(t, StatusKYCPending, v.Status)

	tests := []struct {
		wire   string
		status Status
	}{
		{`"draft"`, Status("draft")},
		{`"Credit_Check_Completed"`, Status("Credit_Check_Completed")},
		{`" eligible"`, Status(" eligible")},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			var got Status
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &got))
			assert.Equal(t, tt.status, got)
			assert.False(t, got.Known())
			_, ok := PermittedAction(got)
			assert.False(t, ok, "unknown status grants no action")
			for _, a := range Actions() {
				assert.False(t, Permits(got, a))
			}
			assert.Equal(t, CategoryNeutral, ColorFor(got))
		})
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"status":"ON_HOLD"}`), &v))
	assert.Equal(t, Status("ON_HOLD"), v.Status)
	assert.Equal(t, CategoryNeutral, ColorFor(v.Status))

	assert.NoError(t, json.Unmarshal([]byte(`{"status":null}`), &v))
	assert.Equal(t, Status(""), v.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":3}`), &v))
}

func TestCustomerDecisionFor(t *testing.T) {
	assert.Equal(t, OutcomeApproved, CustomerDecisionFor(StatusEligible).Outcome)
	assert.Equal(t, OutcomeRejected, CustomerDecisionFor(StatusNotEligible).Outcome)
	for _, s := range append([]Status{StatusDraft, StatusCreditCheckCompleted}, unknownStatuses...) {
		d := CustomerDecisionFor(s)
		assert.Equal(t, OutcomePending, d.Outcome, s)
		assert.Equal(t, "Your application is under review. Please check back later.", d.Message)
	}
}
