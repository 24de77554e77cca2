package converter

import (
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging interface used by the converter.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns a Logger writing to w. Output is limited to warnings
// and errors unless verbose is set. Every line carries runID.
func NewLogger(w io.Writer, verbose bool, runID string) Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}

	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Level:           level,
		Prefix:          "csvtree",
	})

	return &charmLogger{l: l.With("run", runID)}
}

// charmLogger adapts a charmbracelet logger to Logger.
type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, args ...interface{}) { c.l.Debugf(msg, args...) }
func (c *charmLogger) Info(msg string, args ...interface{})  { c.l.Infof(msg, args...) }
func (c *charmLogger) Warn(msg string, args ...interface{})  { c.l.Warnf(msg, args...) }
func (c *charmLogger) Error(msg string, args ...interface{}) { c.l.Errorf(msg, args...) }

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
