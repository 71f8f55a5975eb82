package logger

import (
	"errors"
	"log/slog"
	"time"
)

// QueryLogger times one store operation and logs its outcome.
type QueryLogger struct {
	Operation string
	Store     string
	Args      []any
	StartTime time.Time
}

func NewQueryLogger(store, operation string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Store:     store,
		Args:      args,
		StartTime: time.Now(),
	}
}

// Log records a failed operation at error level and a successful one at debug level.
// Errors listed in expected are logged as successes: a missing row is an answer, not a failure.
func (l *QueryLogger) Log(err error, expected ...error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("store", l.Store),
		slog.String("operation", l.Operation),
		slog.Any("args", l.Args),
		slog.Duration("took", time.Since(l.StartTime)),
	}

	if err != nil && !isExpected(err, expected) {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("result", err.Error()))
	}
	slog.Debug("Query executed", attrs...)
}

func isExpected(err error, expected []error) bool {
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
