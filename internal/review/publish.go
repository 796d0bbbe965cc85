package review

import (
	"context"
	"fmt"

	"github.com/techweeksl/prreview/internal/domain"
	"github.com/techweeksl/prreview/internal/terminal"
)

// Signature is appended to every posted comment and summary body.
const Signature = "\n\n---\n*Review by Claude*"

// Poster submits a finished review to the hosting platform.
type Poster interface {
	PostReview(ctx context.Context, pr domain.PullRequest, comments []domain.ReviewComment, body string) error
}

// Publish posts the validated comments as one review, or logs them in
// dry-run mode. The standalone summary body is included only when there are
// zero inline comments; otherwise the feedback is already inline and the
// summary is dropped from the post.
func Publish(ctx context.Context, poster Poster, pr domain.PullRequest, comments []domain.ReviewComment, summary string, dryRun bool, logger *terminal.Logger) error {
	if dryRun {
		logger.Log("=== DRY RUN: review will NOT be posted ===", terminal.StyleInfo)
		logger.Logf(terminal.StyleInfo, "Summary: %s", summary)
		for _, c := range comments {
			logger.Logf(terminal.StyleInfo, "  %s:%d: %s", c.Path, c.Line, c.Body)
		}
		logger.Logf(terminal.StyleInfo, "Total: %d comment(s)", len(comments))
		return nil
	}

	signed := make([]domain.ReviewComment, 0, len(comments))
	for _, c := range comments {
		c.Body += Signature
		signed = append(signed, c)
	}

	body := ""
	if len(signed) == 0 {
		body = summary + Signature
	}

	if err := poster.PostReview(ctx, pr, signed, body); err != nil {
		return fmt.Errorf("posting review failed: %w", err)
	}

	logger.Logf(terminal.StyleSuccess, "Posted review with %d comment(s) on %s/%s#%d",
		len(signed), pr.Owner, pr.Repo, pr.Number)
	return nil
}
