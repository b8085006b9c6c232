// Package logger wraps zerolog with context-aware request IDs and buffered output.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// LoggerKey is the context key for the per-request logger
	LoggerKey contextKey = "logger"
)

var (
	globalLogger zerolog.Logger
	globalWriter *BufferedWriter
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output io.Writer
}

// InitWithFile initializes the logger writing to both stdout and a rotating file.
func InitWithFile(filename, level, format string) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	logFile := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	Init(Config{
		Level:  level,
		Format: format,
		Output: io.MultiWriter(os.Stdout, logFile),
	})
}

// Init initializes the global logger
func Init(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Buffer writes, flush every second and immediately on error-level lines
	bw := NewBufferedWriter(output, time.Second)
	globalWriter = bw
	output = bw

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "2006-01-02 15:04:05.000",
		}
	}

	globalLogger = zerolog.New(output).With().Timestamp().Caller().Logger()
}

// Flush forces buffered logs out to the underlying writer
func Flush() {
	if globalWriter != nil {
		_ = globalWriter.Sync()
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequestID returns a context carrying the request ID and a derived logger
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := globalLogger.With().Str("request_id", requestID).Logger()
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return context.WithValue(ctx, LoggerKey, &l)
}

// WithFields returns a context whose logger carries the given fields
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	c := FromContext(ctx).With()
	for k, v := range fields {
		c = c.Interface(k, v)
	}
	l := c.Logger()
	return context.WithValue(ctx, LoggerKey, &l)
}

// FromContext extracts the logger from context, falling back to the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &globalLogger
	}
	if l, ok := ctx.Value(LoggerKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		l := globalLogger.With().Str("request_id", requestID).Logger()
		return &l
	}
	return &globalLogger
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// Debug logs a debug message
func Debug(ctx context.Context) *zerolog.Event { return FromContext(ctx).Debug() }

// Info logs an info message
func Info(ctx context.Context) *zerolog.Event { return FromContext(ctx).Info() }

// Warn logs a warning message
func Warn(ctx context.Context) *zerolog.Event { return FromContext(ctx).Warn() }

// Error logs an error message
func Error(ctx context.Context) *zerolog.Event { return FromContext(ctx).Error() }

// Fatal logs a fatal message and exits
func Fatal(ctx context.Context) *zerolog.Event { return FromContext(ctx).Fatal() }

// Global logger methods for call sites without a context

// InfoGlobal logs an info message without context
func InfoGlobal() *zerolog.Event { return globalLogger.Info() }

// WarnGlobal logs a warning message without context
func WarnGlobal() *zerolog.Event { return globalLogger.Warn() }

// ErrorGlobal logs an error message without context
func ErrorGlobal() *zerolog.Event { return globalLogger.Error() }

// FatalGlobal logs a fatal message without context and exits
func FatalGlobal() *zerolog.Event { return globalLogger.Fatal() }
