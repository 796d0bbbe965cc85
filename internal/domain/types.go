// Package domain provides core types for the PR reviewer.
package domain

// FileStatus is the change status GitHub reports for a file in a PR.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

// ReviewableFile is one changed file that passed the eligibility filter.
// It lives only for the duration of a single review run.
type ReviewableFile struct {
	Filename string
	Patch    string // unified-diff hunk text
	Status   FileStatus
}

// Batch is an ordered group of files reviewed together in one model call.
// The combined patch length of a batch stays under the configured character
// budget, except when a single file alone exceeds it.
type Batch []ReviewableFile

// Size returns the combined patch length of all files in the batch.
func (b Batch) Size() int {
	total := 0
	for _, f := range b {
		total += len(f.Patch)
	}
	return total
}

// PullRequest holds the PR metadata needed to build prompts and post reviews.
type PullRequest struct {
	Owner   string
	Repo    string
	Number  int
	Title   string
	Body    string
	HeadSHA string // most recent commit on the PR branch
}

// RawComment is an untrusted comment record as decoded from model output.
// Field types are deliberately loose: the model may emit anything, and the
// validator decides what survives.
type RawComment struct {
	Path any `json:"path"`
	Line any `json:"line"`
	Body any `json:"body"`
}

// ModelReview is the raw per-batch result parsed from the model's response.
type ModelReview struct {
	Comments []RawComment `json:"comments"`
	Summary  string       `json:"summary"`
}

// ReviewComment is a validated inline comment bound to a known file and a
// positive line number on the added side of the diff.
type ReviewComment struct {
	Path string
	Line int
	Body string
}
