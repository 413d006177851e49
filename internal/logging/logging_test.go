package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logrus.Level
		known bool
	}{
		{"error", logrus.ErrorLevel, true},
		{" WARN ", logrus.WarnLevel, true},
		{"warning", logrus.WarnLevel, true},
		{"info", logrus.InfoLevel, true},
		{"", logrus.InfoLevel, true},
		{"debug", logrus.DebugLevel, true},
		{"trace", logrus.TraceLevel, true},
		{"verbose?", logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		got, known := parseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.known, known, tt.in)
	}
}

func TestNewWithOutput_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("warn", &buf)

	logger.Info("dropped")
	logger.WithField("books", 3).Warn("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, float64(3), entry["books"])
}

func TestNewWithOutput_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("loud", &buf)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "unknown log level, using info", entry["msg"])
	assert.Equal(t, "loud", entry["log_level"])
	assert.Equal(t, "warning", entry["level"])
}
