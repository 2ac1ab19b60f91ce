package log

import (
	"strconv"
	"time"
)

// Logger is the structured logger accepted by every xtalcheck package.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key-value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Hz creates a frequency field rendered in whole Hz ("14318180"), which
// reads better than the exponent form float fields get for large values.
func Hz(key string, hz float64) Field {
	return Field{Key: key, Value: strconv.FormatFloat(hz, 'f', 0, 64)}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field with key "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// With returns a Logger that adds fields to every line written through it.
// Fields given at the call site come after the bound ones.
func With(logger Logger, fields ...Field) Logger {
	if len(fields) == 0 {
		return logger
	}
	if w, ok := logger.(*boundLogger); ok {
		return &boundLogger{next: w.next, fields: append(append([]Field(nil), w.fields...), fields...)}
	}
	return &boundLogger{next: logger, fields: append([]Field(nil), fields...)}
}

type boundLogger struct {
	next   Logger
	fields []Field
}

func (b *boundLogger) join(fields []Field) []Field {
	out := make([]Field, 0, len(b.fields)+len(fields))
	return append(append(out, b.fields...), fields...)
}

func (b *boundLogger) Debug(msg string, fields ...Field) { b.next.Debug(msg, b.join(fields)...) }
func (b *boundLogger) Info(msg string, fields ...Field)  { b.next.Info(msg, b.join(fields)...) }
func (b *boundLogger) Warn(msg string, fields ...Field)  { b.next.Warn(msg, b.join(fields)...) }
func (b *boundLogger) Error(msg string, fields ...Field) { b.next.Error(msg, b.join(fields)...) }
