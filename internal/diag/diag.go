// Package diag is the dashboard's diagnostic channel. Failures that must not
// interrupt the UI are logged through zap and kept in a short in-memory ring
// that developer settings renders.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultCapacity = 50

// Level of a recorded event.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event is one recorded diagnostic.
type Event struct {
	At      time.Time
	Level   Level
	Source  string
	Message string
}

// String formats the event as a single log line.
func (e Event) String() string {
	return fmt.Sprintf("%s %-5s %s: %s", e.At.Format("15:04:05"), e.Level, e.Source, e.Message)
}

// Channel records diagnostics. Safe for use from tea.Cmd goroutines.
type Channel struct {
	mu       sync.Mutex
	logger   *zap.Logger
	events   []Event
	capacity int
	now      func() time.Time
}

// New wraps logger. A nil logger is replaced with zap.NewNop.
func New(logger *zap.Logger) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{
		logger:   logger,
		capacity: defaultCapacity,
		now:      time.Now,
	}
}

// Discard returns a channel that only keeps the in-memory ring.
func Discard() *Channel {
	return New(nil)
}

// NewFileLogger builds a JSON zap logger writing to path. The TUI owns
// stdout, so the log never goes to the terminal.
func NewFileLogger(path string, debug bool) (*zap.Logger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Info records an informational event.
func (c *Channel) Info(source, message string, fields ...zap.Field) {
	c.logger.Info(message, append(fields, zap.String("source", source))...)
	c.record(LevelInfo, source, message)
}

// Warn records a degraded-but-working event.
func (c *Channel) Warn(source, message string, fields ...zap.Field) {
	c.logger.Warn(message, append(fields, zap.String("source", source))...)
	c.record(LevelWarn, source, message)
}

// Report records a contained failure. A nil err is ignored.
func (c *Channel) Report(source string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	c.logger.Error("contained failure", append(fields, zap.String("source", source), zap.Error(err))...)
	c.record(LevelError, source, err.Error())
}

// Events returns a copy of the recorded events, oldest first.
func (c *Channel) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Dump formats every recorded event, one per line.
func (c *Channel) Dump() string {
	events := c.Events()
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// Sync flushes the logger. Errors from syncing a terminal are ignored.
func (c *Channel) Sync() {
	_ = c.logger.Sync()
}

func (c *Channel) record(level Level, source, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{
		At:      c.now(),
		Level:   level,
		Source:  source,
		Message: message,
	})
	if over := len(c.events) - c.capacity; over > 0 {
		c.events = append([]Event(nil), c.events[over:]...)
	}
}
