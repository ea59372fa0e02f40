package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	})
	return &buf
}

func TestLogJSONKeepsSeverity(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{level: "INFO", expected: "INFO"},
		{level: "WARN", expected: "WARN"},
		{level: "ERROR", expected: "ERROR"},
		{level: "FATAL", expected: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := captureOutput(t)

			LogJSON(tt.level, "Post created", map[string]interface{}{"route": "/api/posts", "userID": "u-1"})

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
			assert.Equal(t, tt.expected, entry["severity"])
			assert.Equal(t, "Post created", entry["message"])
			assert.Equal(t, "/api/posts", entry["route"])
			assert.Equal(t, "u-1", entry["userID"])
			assert.Contains(t, entry, "time")
		})
	}
}

func TestLogJSONRespectsLevel(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("error")

	LogJSON("INFO", "ignored", nil)
	assert.Empty(t, buf.String())

	LogJSON("ERROR", "kept", nil)
	assert.Contains(t, buf.String(), `"severity":"ERROR"`)
}
