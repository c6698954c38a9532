package observe

import (
	"context"
	"encoding/json"
	"io"
	"maps"
	"os"
	"slices"
	"sync"
	"time"
)

// Logger is a minimal structured logging interface.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: logging is best-effort and never panics.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)

	// WithScanner returns a logger that stamps every line with meta.
	WithScanner(meta ScanMeta) Logger
}

// Field is one structured log attribute.
type Field struct {
	Key   string
	Value any
}

// LogLevel orders log severities.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

func lookupLevel(name string) (LogLevel, bool) {
	i := slices.Index(levelNames[:], name)
	return LogLevel(i), i >= 0
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	if l, ok := lookupLevel(s); ok {
		return l
	}
	return LevelInfo
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return levelNames[LevelInfo]
	}
	return levelNames[l]
}

// jsonLogger writes one JSON object per line. Loggers derived through
// WithScanner share the writer and its lock.
type jsonLogger struct {
	min   LogLevel
	w     io.Writer
	mu    *sync.Mutex
	attrs map[string]any
}

// NewLogger creates a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a JSON logger writing to w.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &jsonLogger{min: ParseLogLevel(level), w: w, mu: &sync.Mutex{}}
}

func (l *jsonLogger) WithScanner(meta ScanMeta) Logger {
	attrs := maps.Clone(l.attrs)
	if attrs == nil {
		attrs = make(map[string]any, 2)
	}
	attrs["scanner.id"] = meta.ScannerID
	if meta.Kind != "" {
		attrs["snapshot.kind"] = string(meta.Kind)
	}
	return &jsonLogger{min: l.min, w: l.w, mu: l.mu, attrs: attrs}
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelDebug, msg, fields)
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelError, msg, fields)
}

func (l *jsonLogger) write(level LogLevel, msg string, fields []Field) {
	if level < l.min {
		return
	}

	line := make(map[string]any, len(l.attrs)+len(fields)+3)
	maps.Copy(line, l.attrs)
	for _, f := range fields {
		line[f.Key] = fieldValue(f)
	}
	line["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	line["level"] = level.String()
	line["msg"] = msg

	data, err := json.Marshal(line)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(data, '\n'))
}

// redactedKeys are field keys whose values never reach the output. Broker
// URIs and management credentials end up under these.
var redactedKeys = []string{
	"password",
	"secret",
	"token",
	"credential",
	"uri",
	"amqp_uri",
	"management_url",
}

func fieldValue(f Field) any {
	if slices.Contains(redactedKeys, f.Key) {
		return "[REDACTED]"
	}
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}
	return f.Value
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...Field)  {}
func (nopLogger) Warn(context.Context, string, ...Field)  {}
func (nopLogger) Error(context.Context, string, ...Field) {}
func (nopLogger) Debug(context.Context, string, ...Field) {}
func (l nopLogger) WithScanner(ScanMeta) Logger           { return l }

var _ Logger = (*jsonLogger)(nil)
