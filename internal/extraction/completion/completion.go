package completion

import (
	"context"

	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/imaging"
)

// Completer sends one encoded document image together with the fixed
// extraction prompt to a vision-capable model and returns the model's reply.
// Implementations make exactly one remote call per invocation; a retry or
// timeout policy belongs in a wrapper around this interface.
type Completer interface {
	// Complete returns the text of the first completion choice, unmodified.
	Complete(ctx context.Context, img *imaging.Encoded) (string, error)

	// Name returns the completer name for logging
	Name() string
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, img *imaging.Encoded) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, img *imaging.Encoded) (string, error) {
	return f(ctx, img)
}

func (f CompleterFunc) Name() string { return "func" }
