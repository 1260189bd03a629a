package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus so packages share one configured instance.
type Logger struct {
	*logrus.Logger
}

// New creates a JSON logger writing to stderr at the given level.
// Unknown levels fall back to info.
func New(level string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &Logger{Logger: l}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// WithOp returns an entry tagged with the operation name.
func (l *Logger) WithOp(op string) *logrus.Entry {
	return l.WithField("op", op)
}
