// Package logger provides the structured logging facade used across the
// engine. It wraps charmbracelet/log so callers depend on a small, stable
// API instead of the logging library directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger is a structured, leveled logger with persistent fields.
type Logger struct {
	base   *cblog.Logger
	fields []interface{}
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := cblog.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	formatter := cblog.JSONFormatter
	if opts.HumanReadable {
		formatter = cblog.TextFormatter
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})

	var fields []interface{}
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}

	return &Logger{base: base, fields: fields}, nil
}

// WithFields returns a derived logger that always writes the supplied fields,
// applied in sorted key order so output is deterministic.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil || len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	next := make([]interface{}, len(l.fields), len(l.fields)+len(keys)*2)
	copy(next, l.fields)
	for _, key := range keys {
		next = append(next, key, fields[key])
	}

	return &Logger{base: l.base, fields: next}
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info(strings.TrimSpace(msg), l.fields...)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug(strings.TrimSpace(msg), l.fields...)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn(strings.TrimSpace(msg), l.fields...)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	fields := l.fields
	if err != nil {
		fields = append(append([]interface{}{}, fields...), "error", err.Error())
	}
	l.base.Error(strings.TrimSpace(msg), fields...)
}
