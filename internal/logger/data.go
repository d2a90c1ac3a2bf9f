package logger

import (
	"io"
	"sync"
)

// Logger provides leveled logging tagged by component
type Logger struct {
	MinLevel LogLevel
	// Output overrides the standard logger destination when set
	Output io.Writer
	mu     sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func New(level LogLevel) *Logger {
	return &Logger{MinLevel: level}
}

// Discard returns a logger that writes nothing, used by tests.
func Discard() *Logger {
	return &Logger{MinLevel: LevelError + 1}
}
