package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name to a Level, defaulting to info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// leveledLogger writes timestamped, component-prefixed lines to a writer.
type leveledLogger struct {
	mu        sync.Mutex
	out       io.Writer
	level     Level
	component string
}

var (
	defaultOut   io.Writer = os.Stderr
	defaultLevel           = LevelInfo
	defaultMu    sync.RWMutex
)

// SetDefaultOutput redirects all component loggers created afterwards.
func SetDefaultOutput(w io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if w != nil {
		defaultOut = w
	}
}

// SetDefaultLevel sets the minimum level for component loggers created afterwards.
func SetDefaultLevel(level Level) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLevel = level
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return &leveledLogger{out: defaultOut, level: defaultLevel, component: component}
}

// NewLeveledLogger builds a logger with an explicit writer and level.
func NewLeveledLogger(w io.Writer, level Level, component string) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &leveledLogger{out: w, level: level, component: component}
}

func (l *leveledLogger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	} else {
		file = "???"
		line = 0
	}

	component := l.component
	if component == "" {
		component = "CALLSTREAM"
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s [%s] [%s] %s:%d - %s\n",
		timestamp, level, component, file, line, message)
}

func (l *leveledLogger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

func (l *leveledLogger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *leveledLogger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *leveledLogger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}
