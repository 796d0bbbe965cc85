// Package agent invokes the external model backend that performs reviews.
package agent

import (
	"context"

	"github.com/techweeksl/prreview/internal/domain"
)

// Reviewer runs one review prompt against a model backend and returns the
// parsed result. Implementations are expected to treat every failure mode as
// fatal: no retries happen at this layer.
type Reviewer interface {
	// Name returns the backend's identifier (e.g., "claude").
	Name() string

	// IsAvailable checks if the backend CLI is installed and accessible.
	IsAvailable() error

	// Review sends the prompt and parses the response into a ModelReview.
	Review(ctx context.Context, prompt string) (*domain.ModelReview, error)
}
