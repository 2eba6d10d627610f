package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, "error", Error.String())
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "tracker", Out: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"component": "cache"}).Warn("refetch failed", map[string]any{
		"key":   "persons",
		"error": errors.New("boom"),
		"":      "ignored",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "refetch failed", entry["message"])
	assert.Equal(t, "tracker", entry["app"])
	assert.Equal(t, "cache", entry["component"])
	assert.Equal(t, "persons", entry["key"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "")
}
