package wsguard

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf).WithField("supervisor", "abc").WithField("net", "ws_socket")
	logger.Infof("connected to %s", "ws://example.test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "abc", entry["supervisor"])
	assert.Equal(t, "ws_socket", entry["net"])
	assert.Equal(t, "connected to ws://example.test", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := NoopLogger().WithField("k", "v")

	// Must not panic and must keep returning a usable logger.
	logger.Debugf("x")
	logger.Infof("x")
	logger.Warnf("x")
	logger.Errorf("x %d", 1)
}
