package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestEmbeddedMessages_SameKeys(t *testing.T) {
	ru := getEmbeddedMessages("ru-RU")
	en := getEmbeddedMessages("en-US")

	assert.Equal(t, len(en), len(ru))
	for key := range en {
		assert.Contains(t, ru, key)
	}
}

func TestGetMessage_Fallback(t *testing.T) {
	l := &Logger{language: "ru-RU", messages: map[string]string{"report_created": "Отчёт создан"}}

	assert.Equal(t, "Отчёт создан", l.GetMessage("report_created"))
	assert.Equal(t, "Report deleted from CRM", l.GetMessage("report_deleted"))
	assert.Equal(t, "unknown_key", l.GetMessage("unknown_key"))
}

func TestLoadLocaleMessages_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "locales"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locales", "en-US.yaml"),
		[]byte("messages:\n  report_created: \"Report is ready\"\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	messages, err := loadLocaleMessages("en-US")
	require.NoError(t, err)
	assert.Equal(t, "Report is ready", messages["report_created"])
	assert.Equal(t, "Report deleted from CRM", messages["report_deleted"])

	messages, err = loadLocaleMessages("ru-RU")
	assert.Error(t, err)
	assert.Equal(t, "Отчёт в CRM создан", messages["report_created"])
}

func TestLogger_WritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestWithOutput(&buf).WithField("report", "mttr report")

	l.Warn("report_delete_failed").Str("uuid", "report$1").Err(errors.New("boom")).Send()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Failed to delete report from CRM", entry["message"])
	assert.Equal(t, "mttr report", entry["report"])
	assert.Equal(t, "report$1", entry["uuid"])
	assert.Equal(t, "boom", entry["error"])
}
