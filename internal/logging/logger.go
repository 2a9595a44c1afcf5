package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging surface the rest of the program depends on. The
// leveled methods take structured fields; Printf and Println exist for the
// HTTP server's startup and shutdown narration, which predates fields.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is one key/value pair attached to a log entry. Values keep their
// native type all the way to the backend, so numeric fields land in JSON as
// numbers rather than strings.
type Field struct {
	Key   string
	Value any
}

// String builds a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 builds an int64-valued field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 builds a uint64-valued field. Fibonacci indexes are uint64
// throughout the engine, so this is the most common numeric field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 builds a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err builds an error field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// attach adds the field to a zerolog event with its native type.
func (f Field) attach(ev *zerolog.Event) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return ev.Str(f.Key, v)
	case int:
		return ev.Int(f.Key, v)
	case int64:
		return ev.Int64(f.Key, v)
	case uint64:
		return ev.Uint64(f.Key, v)
	case float64:
		return ev.Float64(f.Key, v)
	case bool:
		return ev.Bool(f.Key, v)
	case error:
		return ev.Err(v)
	default:
		return ev.Interface(f.Key, v)
	}
}

// StructuredLogger emits JSON lines through zerolog. It is the production
// backend; every entry carries the component it was constructed with.
type StructuredLogger struct {
	z zerolog.Logger
}

// NewLogger builds a StructuredLogger writing JSON lines to w, tagging every
// entry with the given component name.
func NewLogger(w io.Writer, component string) *StructuredLogger {
	return &StructuredLogger{
		z: zerolog.New(w).With().Str("component", component).Timestamp().Logger(),
	}
}

func (l *StructuredLogger) emit(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		ev = f.attach(ev)
	}
	ev.Msg(msg)
}

// Info logs at info level.
func (l *StructuredLogger) Info(msg string, fields ...Field) {
	l.emit(l.z.Info(), msg, fields)
}

// Error logs at error level with the causing error attached.
func (l *StructuredLogger) Error(msg string, err error, fields ...Field) {
	l.emit(l.z.Error().Err(err), msg, fields)
}

// Debug logs at debug level; zerolog's global level decides whether the
// entry is emitted at all.
func (l *StructuredLogger) Debug(msg string, fields ...Field) {
	l.emit(l.z.Debug(), msg, fields)
}

// Printf logs a formatted message at info level.
func (l *StructuredLogger) Printf(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

// Println logs its arguments at info level.
func (l *StructuredLogger) Println(args ...any) {
	l.z.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// PlainLogger routes entries to a standard library log.Logger. The server
// accepts one through its options so callers embedding it can keep their
// existing log destination.
type PlainLogger struct {
	l *stdlog.Logger
}

// NewPlainLogger wraps a standard library logger.
func NewPlainLogger(l *stdlog.Logger) *PlainLogger {
	return &PlainLogger{l: l}
}

// fieldSuffix renders fields as " key=value" pairs for plain-text output.
func fieldSuffix(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// Info logs at info level.
func (p *PlainLogger) Info(msg string, fields ...Field) {
	p.l.Printf("INFO %s%s", msg, fieldSuffix(fields))
}

// Error logs at error level.
func (p *PlainLogger) Error(msg string, err error, fields ...Field) {
	p.l.Printf("ERROR %s: %v%s", msg, err, fieldSuffix(fields))
}

// Debug logs at debug level. Plain output has no level filtering; callers
// that care use the structured backend.
func (p *PlainLogger) Debug(msg string, fields ...Field) {
	p.l.Printf("DEBUG %s%s", msg, fieldSuffix(fields))
}

// Printf forwards to the wrapped logger.
func (p *PlainLogger) Printf(format string, args ...any) {
	p.l.Printf(format, args...)
}

// Println forwards to the wrapped logger.
func (p *PlainLogger) Println(args ...any) {
	p.l.Println(args...)
}
