package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"

	"github.com/techweeksl/prreview/internal/domain"
)

// ErrNoPR indicates no pull request exists for the given reference.
var ErrNoPR = errors.New("pull request not found")

// ErrAuthFailed indicates GitHub rejected the access token.
var ErrAuthFailed = errors.New("GitHub authentication failed")

// Client wraps the GitHub REST API for the operations a review run needs.
type Client struct {
	api *gh.Client
}

// NewClient creates a Client authenticated with the given access token.
func NewClient(token string) *Client {
	return &Client{api: gh.NewClient(nil).WithAuthToken(token)}
}

// FetchPullRequest loads PR metadata and the full list of changed files.
// Files are returned in API order with no filtering applied.
func (c *Client) FetchPullRequest(ctx context.Context, ref PRRef) (domain.PullRequest, []domain.ReviewableFile, error) {
	pr, _, err := c.api.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return domain.PullRequest{}, nil, fmt.Errorf("failed to fetch %s: %w", ref, classifyAPIError(err))
	}

	files, err := c.listFiles(ctx, ref)
	if err != nil {
		return domain.PullRequest{}, nil, fmt.Errorf("failed to list files for %s: %w", ref, err)
	}

	meta := domain.PullRequest{
		Owner:   ref.Owner,
		Repo:    ref.Repo,
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
	}
	return meta, files, nil
}

// listFiles pages through the PR's changed files.
func (c *Client) listFiles(ctx context.Context, ref PRRef) ([]domain.ReviewableFile, error) {
	opt := &gh.ListOptions{PerPage: 100}
	var all []domain.ReviewableFile
	for {
		files, resp, err := c.api.PullRequests.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opt)
		if err != nil {
			return nil, classifyAPIError(err)
		}
		for _, f := range files {
			all = append(all, fileFromAPI(f))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

// fileFromAPI converts an API file entry to the domain type.
func fileFromAPI(f *gh.CommitFile) domain.ReviewableFile {
	return domain.ReviewableFile{
		Filename: f.GetFilename(),
		Patch:    f.GetPatch(),
		Status:   domain.FileStatus(f.GetStatus()),
	}
}

// PostReview submits one review transaction: all inline comments plus the
// body, anchored at the PR's most recent commit. Comment bodies are posted
// as given; signature appending is the publisher's job.
func (c *Client) PostReview(ctx context.Context, pr domain.PullRequest, comments []domain.ReviewComment, body string) error {
	req := &gh.PullRequestReviewRequest{
		CommitID: gh.Ptr(pr.HeadSHA),
		Body:     gh.Ptr(body),
		Event:    gh.Ptr("COMMENT"),
		Comments: draftComments(comments),
	}

	_, _, err := c.api.PullRequests.CreateReview(ctx, pr.Owner, pr.Repo, pr.Number, req)
	if err != nil {
		return fmt.Errorf("failed to post review on %s/%s#%d: %w", pr.Owner, pr.Repo, pr.Number, classifyAPIError(err))
	}
	return nil
}

// draftComments maps validated comments to inline review comments on the
// added side of the diff.
func draftComments(comments []domain.ReviewComment) []*gh.DraftReviewComment {
	out := make([]*gh.DraftReviewComment, 0, len(comments))
	for _, rc := range comments {
		out = append(out, &gh.DraftReviewComment{
			Path: gh.Ptr(rc.Path),
			Line: gh.Ptr(rc.Line),
			Side: gh.Ptr("RIGHT"),
			Body: gh.Ptr(rc.Body),
		})
	}
	return out
}

// classifyAPIError maps API error responses to typed errors.
func classifyAPIError(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return ErrNoPR
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, ghErr.Message)
		}
	}
	return err
}
