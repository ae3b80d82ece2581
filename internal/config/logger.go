package config

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const attemptIDKey ctxKey = "attempt_id"

var Logger = logrus.New()

func InitLogger(level, format string) {
	Logger.SetOutput(os.Stdout)

	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.WithError(err).Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}

func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey, id)
}

func AttemptIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(attemptIDKey).(string)
	return id
}

func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if id := AttemptIDFromContext(ctx); id != "" {
		entry = entry.WithField("attempt_id", id)
	}
	return entry
}
