// Package logger sets up the console logger shared by the exercises.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger so the exercises and libraries do not have to
// agree on a global.
type Logger struct {
	logger *zerolog.Logger
}

// New creates a console logger tagged with the program name.
// Unknown levels fall back to info.
func New(tag, level string, noColor bool) *Logger {
	return NewWithWriter(os.Stderr, tag, level, noColor)
}

func NewWithWriter(w io.Writer, tag, level string, noColor bool) *Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: noColor}
	logger := zerolog.New(output).Level(ParseLevel(level)).With().
		Timestamp().
		Str("s", tag).
		Logger()
	return &Logger{logger: &logger}
}

// Nop returns a logger that discards everything. Used by tests and library
// callers that pass no logger.
func Nop() *Logger {
	l := zerolog.Nop()
	return &Logger{logger: &l}
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Extend returns a child Logger carrying an extra module field.
func (l *Logger) Extend(module string) *Logger {
	logger := l.logger.With().Str("m", module).Logger()
	return &Logger{logger: &logger}
}

func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// WithLevel starts a new message with level.
func (l *Logger) WithLevel(level zerolog.Level) *zerolog.Event { return l.logger.WithLevel(level) }

// Check logs err and panics with it when it is not nil.
func (l *Logger) Check(err error, msg string) {
	if err != nil {
		l.logger.Error().Err(err).Msg(msg)
		panic(err)
	}
}

// Elapsed logs the time passed since start at debug level.
func (l *Logger) Elapsed(start time.Time, what string) {
	l.logger.Debug().Dur("took", time.Since(start)).Msg(what)
}
