package logger

import (
	"io"

	"github.com/rs/zerolog"
)

func NewTest() *Logger {
	return NewTestWithOutput(io.Discard)
}

func NewTestWithOutput(w io.Writer) *Logger {
	testLogger := zerolog.New(w).With().Timestamp().Logger()

	return &Logger{
		logger:   testLogger,
		language: "en-US",
		messages: getEmbeddedMessages("en-US"),
	}
}
