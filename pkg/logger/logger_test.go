package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("extraction-service", "production", &buf)

	log.WithRequestID("req-1").
		WithComponent("handler").
		Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "extraction-service", entry["service"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "handler", entry["component"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_DevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("extraction-service", "development", &buf)
	log.Info().Msg("readable")

	out := buf.String()
	assert.Contains(t, out, "readable")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "console output should not be JSON")
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().Error().Msg("discarded")
}
