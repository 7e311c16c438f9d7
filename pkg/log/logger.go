package log

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Logger provides structured, levelled logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
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

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Bytes renders a byte count in IEC units, e.g. "64 MiB".
func Bytes(key string, n uint64) Field {
	return Field{Key: key, Value: humanize.IBytes(n)}
}

// Rate renders a bytes-per-second figure in IEC units, e.g. "21 MiB/s".
func Rate(key string, bytesPerSecond float64) Field {
	if bytesPerSecond < 0 {
		bytesPerSecond = 0
	}
	return Field{Key: key, Value: humanize.IBytes(uint64(bytesPerSecond)) + "/s"}
}
