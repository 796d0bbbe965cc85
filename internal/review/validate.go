// Package review runs the end-to-end review of a single pull request.
package review

import (
	"math"
	"strings"

	"github.com/techweeksl/prreview/internal/domain"
	"github.com/techweeksl/prreview/internal/terminal"
)

// ValidateComments filters untrusted model comments down to those naming a
// known file, a positive line number, and a non-empty body. Rejected
// comments are logged and dropped; they never abort the run. Survivors keep
// their original relative order, with no deduplication.
func ValidateComments(raw []domain.RawComment, known map[string]struct{}, logger *terminal.Logger) []domain.ReviewComment {
	validated := make([]domain.ReviewComment, 0, len(raw))
	for _, c := range raw {
		path, ok := c.Path.(string)
		if !ok {
			logger.Logf(terminal.StyleWarning, "Dropping comment with non-string path: %v", c.Path)
			continue
		}
		if _, ok := known[path]; !ok {
			logger.Logf(terminal.StyleWarning, "Dropping comment for unknown file: %s", path)
			continue
		}

		line, ok := asLine(c.Line)
		if !ok || line < 1 {
			logger.Logf(terminal.StyleWarning, "Dropping comment with invalid line %v in %s", c.Line, path)
			continue
		}

		body, ok := c.Body.(string)
		if !ok || strings.TrimSpace(body) == "" {
			logger.Logf(terminal.StyleWarning, "Dropping empty comment for %s:%d", path, line)
			continue
		}

		validated = append(validated, domain.ReviewComment{Path: path, Line: line, Body: body})
	}
	return validated
}

// asLine converts a decoded JSON value to an integer line number.
// JSON numbers decode as float64; fractional values are rejected.
func asLine(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
