// Package github provides GitHub PR operations via the REST API.
package github

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Trailing URL segments ("/files", "/commits") are tolerated, so a URL
// copied from any PR tab works.
var prURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// PRRef identifies one pull request.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// String renders the ref as "owner/repo#number".
func (r PRRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParseRef parses a positional PR argument: either a full GitHub PR URL or a
// bare number resolved against defaultRepo ("owner/repo").
func ParseRef(arg, defaultRepo string) (PRRef, error) {
	if m := prURLPattern.FindStringSubmatch(arg); m != nil {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return PRRef{}, fmt.Errorf("invalid PR number in URL %q: %w", arg, err)
		}
		return PRRef{Owner: m[1], Repo: m[2], Number: n}, nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return PRRef{}, fmt.Errorf("expected a PR number or GitHub PR URL, got %q", arg)
	}

	if defaultRepo == "" {
		return PRRef{}, errors.New("a bare PR number requires a configured repository (set repo in .prreview.yaml, PRREVIEW_REPO, or --repo)")
	}
	owner, repo, ok := strings.Cut(defaultRepo, "/")
	if !ok || owner == "" || repo == "" {
		return PRRef{}, fmt.Errorf("invalid repository %q: expected owner/repo", defaultRepo)
	}
	return PRRef{Owner: owner, Repo: repo, Number: n}, nil
}
