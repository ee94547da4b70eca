// Package logging defines the structured, context-aware logger used by the
// client services and the CLI.
package logging

import "context"

// Logger takes key-value pairs after the message:
//
//	log.Info(ctx, "catalog loaded", "items", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always adds the given pairs.
	With(args ...any) Logger
}
