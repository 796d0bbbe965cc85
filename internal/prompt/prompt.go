// Package prompt renders review instructions for the model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/techweeksl/prreview/internal/domain"
)

// formatInstruction pins the response contract: the model must return only
// this JSON shape, with no fences or preamble. The invoker still strips
// fences defensively before parsing.
const formatInstruction = `Respond ONLY with valid JSON matching this schema, no markdown fences, no preamble:
{"comments": [{"path": "file.py", "line": 10, "body": "description"}], "summary": "text"}`

// reviewPolicy tells the model what to flag and what to leave alone.
const reviewPolicy = `## Instructions

Review the diffs above. Only comment on things that truly matter:
- Bugs, logic errors, or security issues
- Violations of the project guidelines that affect correctness or maintainability
- Code smells that will cause real problems (e.g. mocking DB objects in tests)

Do NOT comment on:
- Code that was not changed in this PR
- Cosmetic or stylistic issues (naming, formatting, import order, docstrings, comments)
- Missing type hints unless they cause ambiguity
- Anything auto-formatters handle
- Minor preferences or "nice to have" improvements
- Positive feedback or praise

Be pragmatic. When in doubt, don't comment. Fewer high-quality comments are
better than many nitpicks.

For each issue, provide the exact file path and the line number from the NEW
version of the file (the line number shown after the + in the diff hunk header).
Only reference lines that appear in the diff with a + prefix.

If the PR looks good and follows all guidelines, return an empty comments array
and a short summary saying so.`

// Build renders the full review prompt for one batch. It is a pure function:
// identical inputs produce byte-identical output.
func Build(pr domain.PullRequest, files domain.Batch, guidelines string) string {
	sections := make([]string, 0, len(files))
	for _, f := range files {
		sections = append(sections,
			fmt.Sprintf("### %s (%s)\n```diff\n%s\n```", f.Filename, f.Status, f.Patch))
	}

	body := pr.Body
	if body == "" {
		body = "(no description)"
	}

	var b strings.Builder
	b.WriteString(formatInstruction)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "You are reviewing pull request #%d: %q\n\n", pr.Number, pr.Title)
	b.WriteString("PR description:\n")
	b.WriteString(body)
	b.WriteString("\n\n## Project guidelines\n\n")
	b.WriteString(guidelines)
	b.WriteString("\n\n## Diffs to review\n\n")
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(reviewPolicy)
	return b.String()
}
