package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger writes structured JSON lines keyed by action and session.
type Logger struct {
	service string
	handler *slog.Logger
}

func New(service string) *Logger {
	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return &Logger{service: service, handler: handler}
}

func (l *Logger) Info(action, sessionKey, message string) {
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelInfo,
		message,
		slog.String("service", l.service),
		slog.String("action", action),
		slog.String("session", sessionKey),
	)
}

func (l *Logger) Error(action, sessionKey, message string, err error) {
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelError,
		message,
		slog.String("service", l.service),
		slog.String("action", action),
		slog.String("session", sessionKey),
		slog.String("error", err.Error()),
	)
}
