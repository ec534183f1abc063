package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loanos.log")

	log := NewStructured("debug", "json", path)
	log.WithFields(map[string]interface{}{"view": "admin-detail"}).
		Info("action completed", map[string]interface{}{"action": "runKyc"})
	log.WithError(errors.New("boom")).Error("action failed", nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"action completed"`)
	assert.Contains(t, string(data), `"view":"admin-detail"`)
	assert.Contains(t, string(data), `"action":"runKyc"`)
	assert.Contains(t, string(data), `"error":"boom"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")

	log := NewStructured("warn", "json", path)
	log.Info("hidden", nil)
	log.Warn("shown", nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestMapToZapFields(t *testing.T) {
	assert.Nil(t, mapToZapFields(nil))
	assert.Len(t, mapToZapFields(map[string]interface{}{"a": 1, "b": "x"}), 2)
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().Info("nothing", map[string]interface{}{"k": "v"})
	NewTestLogger(t).Debug("to testing.T", nil)
}
