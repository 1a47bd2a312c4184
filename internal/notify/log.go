package notify

import (
	"context"
	"log/slog"
)

// LogSubscriber mirrors notifications into a structured logger.
type LogSubscriber struct {
	Logger *slog.Logger
}

// NewLogSubscriber creates a subscriber writing to the given logger.
func NewLogSubscriber(logger *slog.Logger) *LogSubscriber {
	return &LogSubscriber{Logger: logger}
}

func (l *LogSubscriber) Notify(n Notification) {
	level := slog.LevelInfo
	switch n.Level {
	case Warning:
		level = slog.LevelWarn
	case Error:
		level = slog.LevelError
	}
	l.Logger.Log(context.Background(), level, n.Message, "node", n.Source, "level", n.Level.String())
}

func (l *LogSubscriber) ProcessStart() {
	l.Logger.Debug("Validation pass started.")
}

func (l *LogSubscriber) ProcessEnd() {
	l.Logger.Debug("Validation pass finished.")
}

func (l *LogSubscriber) Progress(percent int) {
	l.Logger.Debug("Validation pass progress.", "percent", percent)
}
