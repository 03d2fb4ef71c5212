package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", "json", &buf)

	log.Info("hidden")
	log.Warn("shown", zap.Int("unique", 3))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 3, entry["unique"])
}

func TestNew_ConsoleNamed(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "console", &buf).Named("convert")

	log.Debug("extracted", zap.Int("matches", 2))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "convert")
	assert.Contains(t, out, "extracted")
	assert.Contains(t, out, `"matches": 2`)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { NewNop().Info("nothing") })
}
