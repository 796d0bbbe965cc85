package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/techweeksl/prreview/internal/agent"
	"github.com/techweeksl/prreview/internal/batch"
	"github.com/techweeksl/prreview/internal/domain"
	"github.com/techweeksl/prreview/internal/filter"
	"github.com/techweeksl/prreview/internal/github"
	"github.com/techweeksl/prreview/internal/prompt"
	"github.com/techweeksl/prreview/internal/terminal"
)

// Client combines the platform operations one run needs: fetching the PR
// and posting the finished review.
type Client interface {
	FetchPullRequest(ctx context.Context, ref github.PRRef) (domain.PullRequest, []domain.ReviewableFile, error)
	Poster
}

// Runner executes one end-to-end review of a single pull request. Batches
// are reviewed strictly in order, one at a time; the first invocation error
// aborts the run before anything is posted.
type Runner struct {
	Client     Client
	Agent      agent.Reviewer
	Logger     *terminal.Logger
	BatchChars int
	Guidelines string // guidelines document text, already loaded
	DryRun     bool
}

// Run processes the pull request end to end: fetch, filter, batch, review,
// validate, publish.
func (r *Runner) Run(ctx context.Context, ref github.PRRef) error {
	r.Logger.Logf(terminal.StyleInfo, "Fetching %s", ref)
	pr, rawFiles, err := r.Client.FetchPullRequest(ctx, ref)
	if err != nil {
		return err
	}
	r.Logger.Logf(terminal.StyleInfo, "PR: %s", pr.Title)

	files := r.gatherReviewable(rawFiles)
	r.Logger.Logf(terminal.StyleInfo, "Found %d reviewable file(s)", len(files))
	if len(files) == 0 {
		r.Logger.Log("Nothing to review.", terminal.StyleInfo)
		return nil
	}

	limit := r.BatchChars
	if limit <= 0 {
		limit = batch.DefaultCharLimit
	}
	batches := batch.Plan(files, limit)
	r.Logger.Logf(terminal.StyleInfo, "Reviewing %d file(s) in %d batch(es)", len(files), len(batches))

	var comments []domain.RawComment
	summaries := make([]string, 0, len(batches))
	for i, b := range batches {
		r.Logger.Logf(terminal.StyleInfo, "Processing batch %d/%d (%d files, %d chars)",
			i+1, len(batches), len(b), b.Size())

		result, err := r.Agent.Review(ctx, prompt.Build(pr, b, r.Guidelines))
		if err != nil {
			return fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}
		comments = append(comments, result.Comments...)
		summaries = append(summaries, result.Summary)
	}

	summary := summaries[0]
	if len(summaries) > 1 {
		summary = strings.Join(summaries, "\n\n")
	}

	known := make(map[string]struct{}, len(files))
	for _, f := range files {
		known[f.Filename] = struct{}{}
	}
	validated := ValidateComments(comments, known, r.Logger)

	return Publish(ctx, r.Client, pr, validated, summary, r.DryRun, r.Logger)
}

// gatherReviewable applies the eligibility filter and drops files with empty
// patches (binary files and pure renames carry no diff text).
func (r *Runner) gatherReviewable(files []domain.ReviewableFile) []domain.ReviewableFile {
	out := make([]domain.ReviewableFile, 0, len(files))
	for _, f := range files {
		if !filter.ShouldReview(f.Filename) {
			r.Logger.Debugf("Skipping %s", f.Filename)
			continue
		}
		if f.Patch == "" {
			r.Logger.Debugf("Skipping %s (no patch)", f.Filename)
			continue
		}
		out = append(out, f)
	}
	return out
}
