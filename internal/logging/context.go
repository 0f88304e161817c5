package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

type entryKey struct{}

// WithEntry stores a request-scoped log entry in ctx
func WithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, entryKey{}, entry)
}

// FromContext returns the request-scoped entry stored in ctx, or fallback
func FromContext(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if entry, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return fallback
}

// Invocation returns ctx carrying a request-scoped entry, creating one from
// logger when ctx has none yet
func Invocation(ctx context.Context, logger logrus.FieldLogger) (context.Context, *logrus.Entry) {
	if entry, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok && entry != nil {
		return ctx, entry
	}
	entry := ForInvocation(ctx, logger)
	return WithEntry(ctx, entry), entry
}
