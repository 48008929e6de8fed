package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Str("asset", "BTC").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "BTC", entry["asset"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_RejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestMustNew_FallsBack(t *testing.T) {
	var buf bytes.Buffer
	l := MustNew(Config{Level: "loud", Output: &buf})
	assert.Contains(t, buf.String(), "falling back to default logger")
	l.Info().Msg("still works")
	assert.Contains(t, buf.String(), "still works")
}
