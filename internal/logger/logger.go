package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logging interface used across the application.
// Exposed as an interface so the implementation can be swapped if needed.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields is the common field type for structured log output.
type Fields map[string]any

// Log is the global logger instance. It works at info level even when
// InitFromEnv was never called.
var Log Logger = NewLogger("info")

// InitFromEnv reads the log level from the given environment variable and
// reinitializes the global logger. Empty or unknown values fall back to info.
func InitFromEnv(envKey string) {
	level := strings.ToLower(os.Getenv(envKey))
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
}

// Init sets the global logger to the given level.
func Init(level string) {
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
}

// NewLogger builds a gookit/slog based logger for the given level.
func NewLogger(level string) Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	// Restrict the built-in fields to datetime/level/message; everything
	// else is emitted as top-level keys via Fields.
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	logger := slog.NewWithHandlers(h)
	return logger
}

func withServiceName(fields Fields) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields["service_name"]; !ok {
		if sn := os.Getenv("SERVICE_NAME"); sn != "" {
			fields["service_name"] = sn
		}
	}
	return fields
}

// InfoWithFields emits a JSON log line with structured fields such as
// request_id, span_id and service_name.
func InfoWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Info(msg)
		return
	}
	Log.Info(msg)
}

func DebugWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Debug(msg)
		return
	}
	Log.Debug(msg)
}

func WarnWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Warn(msg)
		return
	}
	Log.Warn(msg)
}

func ErrorWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Error(msg)
		return
	}
	Log.Error(msg)
}
