package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanos-client/internal/common/logger"
	"loanos-client/internal/common/storage"
	"loanos-client/internal/guard"
	"loanos-client/internal/session"
	"loanos-client/internal/session/sessiontest"
	"loanos-client/internal/views"
	"loanos-client/internal/workflow"
)

func TestVersionSkipsSetup(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "loanos version "+Version+"\n", out.String())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := parseID(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestStatusFlag(t *testing.T) {
	var s statusFlag
	require.NoError(t, s.Set("kyc_completed"))
	assert.Equal(t, workflow.StatusKYCCompleted, workflow.Status(s))

	require.NoError(t, s.Set(""))
	assert.Equal(t, "", s.String())

	assert.Error(t, s.Set("approved"))
}

func TestRestoreAppliesGuard(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T) string
		guard   guard.Guard
		wantErr string
	}{
		{"no session", func(*testing.T) string { return "" }, guard.User, "not logged in; run `loanos login` first"},
		{"customer on admin command", func(t *testing.T) string { return sessiontest.Customer(t, 7) }, guard.Admin, "this command needs an admin account"},
		{"admin applying", func(t *testing.T) string { return sessiontest.Admin(t, 1) }, guard.Customer, "admins cannot submit applications"},
		{"customer applying", func(t *testing.T) string { return sessiontest.Customer(t, 7) }, guard.Customer, ""},
		{"public", func(*testing.T) string { return "" }, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &app{sessions: session.NewStore(storage.NewMemoryStore(tt.token(t)), logger.NewNoOpLogger())}
			_, err := a.restore(context.Background(), tt.guard)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestFailurePrefersViewMessage(t *testing.T) {
	r := views.NewRunner("test", views.Deps{})
	err := errors.New("raw")
	assert.Equal(t, err, failure(r, err))

	_ = r.Run(context.Background(), "runKyc", "Failed to run KYC", func(context.Context) error { return err })
	assert.EqualError(t, failure(r, err), "Failed to run KYC")
}
