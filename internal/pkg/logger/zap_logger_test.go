package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.log")
	log := NewIsolatedLogger(path)

	log.Debug("Hub", "not written", nil)
	log.Info("Hub", "Client registered", map[string]interface{}{"user_id": "u-1"})
	log.Error("Hub", "Redis publish failed", map[string]interface{}{"error": "connection refused"})
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "Client registered", first["message"])
	assert.Equal(t, "Hub", first["module"])
	assert.Equal(t, map[string]interface{}{"user_id": "u-1"}, first["details"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "connection refused", second["error_ref"])
}

func TestNopLogger(t *testing.T) {
	var log ILogger = NewNopLogger()
	log.Info("x", "y", nil)
	assert.NoError(t, log.Sync())
}
