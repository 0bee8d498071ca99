package converter

import (
	"io"

	"github.com/teltech/logger"
)

// Logger is the logging interface used by the converter.
// Messages are printf-style format strings.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns the default structured logger writing to w. Debug
// messages are only emitted when verbose is set.
func NewLogger(w io.Writer, verbose bool) Logger {
	log := logger.New().WithOutput(w)
	if verbose {
		log = log.WithLevel(logger.DEBUG)
	}
	return &structuredLogger{log: log}
}

type structuredLogger struct {
	log *logger.Log
}

func (l *structuredLogger) Debug(msg string, args ...interface{}) {
	l.log.Debugf(msg, args...)
}

func (l *structuredLogger) Info(msg string, args ...interface{}) {
	l.log.Infof(msg, args...)
}

func (l *structuredLogger) Warn(msg string, args ...interface{}) {
	l.log.Warnf(msg, args...)
}

func (l *structuredLogger) Error(msg string, args ...interface{}) {
	l.log.Errorf(msg, args...)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
