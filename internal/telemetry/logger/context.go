package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "prefmirror.logger"
	// commitIDKey is the context key for the commit ID of an in-flight save.
	commitIDKey contextKey = "prefmirror.commit_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithCommitID adds a commit ID to the context.
func WithCommitID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, commitIDKey, id)
}

// CommitIDFromContext extracts the commit ID from context.
func CommitIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(commitIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the commit ID from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := CommitIDFromContext(ctx); id != "" {
		l = l.With("commit_id", id)
	}

	return l
}
