package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/techweeksl/prreview/internal/domain"
	"github.com/techweeksl/prreview/internal/terminal"
)

// fakePoster records the last posted review.
type fakePoster struct {
	called   bool
	comments []domain.ReviewComment
	body     string
	err      error
}

func (p *fakePoster) PostReview(_ context.Context, _ domain.PullRequest, comments []domain.ReviewComment, body string) error {
	p.called = true
	p.comments = comments
	p.body = body
	return p.err
}

func testPR() domain.PullRequest {
	return domain.PullRequest{Owner: "octocat", Repo: "hello", Number: 7, HeadSHA: "abc123"}
}

func TestPublishSummaryOnlyWhenNoComments(t *testing.T) {
	poster := &fakePoster{}
	terminal.WithColorsDisabled(func() {
		logger, _ := testLogger()
		err := Publish(context.Background(), poster, testPR(), nil, "all good", false, logger)
		if err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
	})

	if !poster.called {
		t.Fatal("PostReview was not called")
	}
	if poster.body != "all good"+Signature {
		t.Errorf("body = %q, want summary plus signature", poster.body)
	}
	if len(poster.comments) != 0 {
		t.Errorf("got %d inline comments, want 0", len(poster.comments))
	}
}

func TestPublishDropsSummaryWithComments(t *testing.T) {
	poster := &fakePoster{}
	comments := []domain.ReviewComment{
		{Path: "a.go", Line: 3, Body: "off-by-one"},
		{Path: "b.go", Line: 8, Body: "unchecked error"},
	}

	terminal.WithColorsDisabled(func() {
		logger, _ := testLogger()
		if err := Publish(context.Background(), poster, testPR(), comments, "summary text", false, logger); err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
	})

	if poster.body != "" {
		t.Errorf("body = %q, want empty when inline comments exist", poster.body)
	}
	if len(poster.comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(poster.comments))
	}
	for i, c := range poster.comments {
		if !strings.HasSuffix(c.Body, Signature) {
			t.Errorf("comment %d body %q missing signature", i, c.Body)
		}
	}
	if poster.comments[0].Body != "off-by-one"+Signature {
		t.Errorf("comment body = %q", poster.comments[0].Body)
	}
}

func TestPublishDryRun(t *testing.T) {
	poster := &fakePoster{}
	comments := []domain.ReviewComment{{Path: "a.go", Line: 1, Body: "x"}}

	terminal.WithColorsDisabled(func() {
		logger, buf := testLogger()
		if err := Publish(context.Background(), poster, testPR(), comments, "the summary", true, logger); err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "DRY RUN") {
			t.Errorf("dry-run banner missing from %q", out)
		}
		if !strings.Contains(out, "the summary") || !strings.Contains(out, "a.go:1") {
			t.Errorf("dry-run rendering incomplete: %q", out)
		}
	})

	if poster.called {
		t.Error("dry run must not post")
	}
}

func TestPublishPropagatesPostError(t *testing.T) {
	poster := &fakePoster{err: errors.New("api down")}
	terminal.WithColorsDisabled(func() {
		logger, _ := testLogger()
		err := Publish(context.Background(), poster, testPR(), nil, "s", false, logger)
		if err == nil || !strings.Contains(err.Error(), "api down") {
			t.Errorf("Publish() error = %v, want wrapped post error", err)
		}
	})
}
