// Test support for structured logging. CaptureLogger records log calls
// in memory so tests can assert on messages and attribute values
// without parsing serialized output.

package log

import (
	"context"
	"fmt"
	"sync"
)

// Entry is one captured log record.
type Entry struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// CaptureLogger implements Logger by recording every emitted entry.
// It is safe for concurrent use; With clones share the parent's entry
// list, so a single CaptureLogger observes a whole component tree.
type CaptureLogger struct {
	mu      *sync.Mutex
	entries *[]Entry
	level   Level
	bound   []any
}

// NewCaptureLogger returns a capture logger that records entries at or
// above the given level.
//
// Example:
//
//	logger := log.NewCaptureLogger(log.LevelDebug)
//	logger.Info("trained stump", log.FeatureKey, 3)
//	if !logger.HasField(log.FeatureKey, 3) { ... }
func NewCaptureLogger(level Level) *CaptureLogger {
	return &CaptureLogger{
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
		level:   level,
	}
}

func (c *CaptureLogger) Debug(msg string, fields ...any) { c.record(LevelDebug, msg, fields) }
func (c *CaptureLogger) Info(msg string, fields ...any)  { c.record(LevelInfo, msg, fields) }
func (c *CaptureLogger) Warn(msg string, fields ...any)  { c.record(LevelWarn, msg, fields) }
func (c *CaptureLogger) Error(msg string, fields ...any) { c.record(LevelError, msg, fields) }

// With returns a clone whose entries carry the given fields. The clone
// records into the same entry list as its parent.
func (c *CaptureLogger) With(fields ...any) Logger {
	clone := *c
	clone.bound = append(append([]any{}, c.bound...), fields...)
	return &clone
}

// Enabled reports whether entries at the given level are recorded.
func (c *CaptureLogger) Enabled(_ context.Context, level Level) bool {
	return level >= c.level
}

func (c *CaptureLogger) record(level Level, msg string, fields []any) {
	if level < c.level {
		return
	}

	merged := make(map[string]any, (len(c.bound)+len(fields))/2)
	collectFields(merged, c.bound)
	collectFields(merged, fields)

	c.mu.Lock()
	*c.entries = append(*c.entries, Entry{Level: level, Message: msg, Fields: merged})
	c.mu.Unlock()
}

// collectFields folds a key-value field list into dst. A bare error
// with no preceding key lands under the standard error attribute, the
// same convention ErrAttr uses.
func collectFields(dst map[string]any, fields []any) {
	i := 0
	for i < len(fields) {
		if err, ok := fields[i].(error); ok {
			dst[ErrAttrKey] = err
			i++
			continue
		}
		if i+1 >= len(fields) {
			return
		}
		dst[fmt.Sprintf("%v", fields[i])] = fields[i+1]
		i += 2
	}
}

// Entries returns a snapshot of everything recorded so far.
func (c *CaptureLogger) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), *c.entries...)
}

// HasMessage reports whether any recorded entry carries the message.
func (c *CaptureLogger) HasMessage(msg string) bool {
	for _, e := range c.Entries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// HasField reports whether any recorded entry carries the field with
// exactly the given value.
func (c *CaptureLogger) HasField(key string, value any) bool {
	for _, e := range c.Entries() {
		if got, ok := e.Fields[key]; ok && got == value {
			return true
		}
	}
	return false
}

// Reset discards all recorded entries.
func (c *CaptureLogger) Reset() {
	c.mu.Lock()
	*c.entries = (*c.entries)[:0]
	c.mu.Unlock()
}

// CaptureProvider implements LoggerProvider on top of a single
// CaptureLogger, for tests that inject a provider rather than a logger.
type CaptureProvider struct {
	root *CaptureLogger
}

// NewCaptureProvider returns a provider whose loggers all record into
// the returned CaptureLogger.
func NewCaptureProvider(level Level) (*CaptureProvider, *CaptureLogger) {
	root := NewCaptureLogger(level)
	return &CaptureProvider{root: root}, root
}

// GetLogger returns the root capture logger.
func (p *CaptureProvider) GetLogger() Logger { return p.root }

// GetLoggerWithName returns a capture logger tagged with the component
// name, recording into the shared entry list.
func (p *CaptureProvider) GetLoggerWithName(name string) Logger {
	return p.root.With(ComponentKey, name)
}

// SetLevel changes the minimum recorded level for loggers created
// after the call.
func (p *CaptureProvider) SetLevel(level Level) {
	p.root.level = level
}
