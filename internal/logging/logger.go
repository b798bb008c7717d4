package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Options controls how the global logger is built.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
	With(keyvals ...interface{}) *log.Logger
}

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Configure(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// Configure rebuilds the global logger from the given options.
func Configure(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	Logger = log.New(out)

	level := ParseLevel(opts.Level)
	setLogLevel(Logger, level)
	Logger.SetFormatter(parseFormatter(opts.Format))

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(true)
	Logger.SetPrefix("[hexscape]")

	Logger.Debug("Logger initialized successfully", "level", level)
}

// ParseLevel maps a user supplied level name onto a LogLevel, defaulting to debug.
func ParseLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		// Default to debug level for maximum visibility
		return DebugLevel
	}
}

func parseFormatter(raw string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent creates a logger tagged with the component name
func WithComponent(component string) *log.Logger {
	return WithFields("component", component)
}

// WithTile creates a logger with tile coordinate context
func WithTile(col, row int) *log.Logger {
	return WithFields("col", col, "row", row)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
