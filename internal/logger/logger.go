package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/rs/zerolog"
)

const DefaultLanguage = "ru-RU"

// Logger writes zerolog events whose "message" is looked up by key in the
// message table of the configured language.
type Logger struct {
	logger   zerolog.Logger
	language string
	messages map[string]string
}

// NewWithConfig logs to stderr so command output on stdout stays parseable.
func NewWithConfig(cfg *types.Config) *Logger {
	language := cfg.Settings.Language
	if language == "" {
		language = DefaultLanguage
	}

	l := &Logger{
		logger:   newConsole(os.Stderr, parseLogLevel(cfg.Settings.LogLevel)),
		language: language,
	}
	l.loadMessages()
	return l
}

func newConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) loadMessages() {
	messages, err := loadLocaleMessages(l.language)
	if err != nil {
		messages = getEmbeddedMessages(l.language)
	}
	l.messages = messages
}

func (l *Logger) GetMessage(key string) string {
	return l.getMessage(key)
}

// getMessage falls back to the English table, then to the key itself.
func (l *Logger) getMessage(key string) string {
	if message, exists := l.messages[key]; exists {
		return message
	}
	if message, exists := getEmbeddedMessages("en-US")[key]; exists {
		return message
	}
	return key
}

func (l *Logger) Debug(key string) *zerolog.Event {
	return l.logger.Debug().Str("message", l.getMessage(key))
}

func (l *Logger) Info(key string) *zerolog.Event {
	return l.logger.Info().Str("message", l.getMessage(key))
}

func (l *Logger) Warn(key string) *zerolog.Event {
	return l.logger.Warn().Str("message", l.getMessage(key))
}

func (l *Logger) Error(key string) *zerolog.Event {
	return l.logger.Error().Str("message", l.getMessage(key))
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}

	return &Logger{
		logger:   ctx.Logger(),
		language: l.language,
		messages: l.messages,
	}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}
