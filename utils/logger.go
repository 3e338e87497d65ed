package utils

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a concurrency-safe, levelled logger used across the pipeline.
// Messages take slog-style key/value pairs:
//
//	utils.L().Warn("file skipped", "file", path, "error", err)
type Logger struct {
	mu    sync.Mutex
	level *slog.LevelVar
	inner *slog.Logger
	file  *os.File
}

var (
	globalLogger *Logger
	logOnce      sync.Once
)

// NewLogger builds a logger writing text records to w.
func NewLogger(minLevel LogLevel, w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(minLevel.slogLevel())
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{level: lv, inner: slog.New(h)}
}

// InitLogger creates the singleton logger. Call once at startup.
// Records always go to stderr and, when logFilePath is set, to that file too.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	logOnce.Do(func() {
		var writers []io.Writer
		writers = append(writers, os.Stderr)

		var f *os.File
		if logFilePath != "" {
			var err error
			f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, f)
			} else {
				log.Printf("[WARN] could not open log file %s: %v\n", logFilePath, err)
			}
		}

		globalLogger = NewLogger(minLevel, io.MultiWriter(writers...))
		globalLogger.file = f
	})
	return globalLogger
}

// L returns the global logger, initialising a stderr-only INFO logger on
// first use. Safe for concurrent callers.
func L() *Logger {
	return InitLogger(INFO, "")
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(lvl LogLevel) {
	l.level.Set(lvl.slogLevel())
}

// Enabled reports whether records at lvl would be emitted.
func (l *Logger) Enabled(lvl LogLevel) bool {
	return lvl.slogLevel() >= l.level.Level()
}

// AddAttrs attaches key/value pairs to every subsequent record.
func (l *Logger) AddAttrs(args ...any) {
	l.mu.Lock()
	l.inner = l.inner.With(args...)
	l.mu.Unlock()
}

// Close closes the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) log(lvl LogLevel, msg string, args ...any) {
	l.mu.Lock()
	inner := l.inner
	l.mu.Unlock()
	inner.Log(context.Background(), lvl.slogLevel(), msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(ERROR, msg, args...) }
