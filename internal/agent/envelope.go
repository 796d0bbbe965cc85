package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/techweeksl/prreview/internal/domain"
)

var (
	// ErrTimeout indicates the review invocation exceeded its deadline.
	ErrTimeout = errors.New("review invocation timed out")

	// ErrInsufficientCredit indicates the API account is out of credit.
	// This needs external remediation, not a retry.
	ErrInsufficientCredit = errors.New("insufficient API credit")

	// ErrEmptyResult indicates the backend reported success with no payload.
	ErrEmptyResult = errors.New("no review output from claude CLI")
)

// responseEnvelope is the outer JSON object the claude CLI emits with
// --output-format json. On success the payload is either free text in
// result (possibly fence-wrapped JSON) or an already-structured object in
// structured_output.
type responseEnvelope struct {
	IsError          bool             `json:"is_error"`
	Result           string           `json:"result"`
	StructuredOutput *json.RawMessage `json:"structured_output"`
}

// ParseResponse parses the claude CLI's response envelope into a ModelReview.
// Error envelopes, empty payloads, and payloads that do not parse as the
// expected {comments, summary} shape are all reported as errors; partial
// output is never guessed at.
func ParseResponse(data []byte) (*domain.ModelReview, error) {
	var env responseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unparseable claude CLI response: %w", err)
	}

	if env.IsError {
		msg := env.Result
		if msg == "" {
			msg = "unknown"
		}
		if isCreditError(msg) {
			return nil, fmt.Errorf("%w: %s (add credits at https://console.anthropic.com/settings/billing)",
				ErrInsufficientCredit, msg)
		}
		return nil, fmt.Errorf("claude reported an error: %s", msg)
	}

	text := strings.TrimSpace(env.Result)
	if text == "" {
		// Fall back to structured_output when result is empty
		if env.StructuredOutput != nil {
			raw := strings.TrimSpace(string(*env.StructuredOutput))
			if raw != "" && raw != "null" {
				text = raw
			}
		}
		if text == "" {
			return nil, ErrEmptyResult
		}
	}

	cleaned := StripMarkdownCodeFence(text)

	var review domain.ModelReview
	if err := json.Unmarshal([]byte(cleaned), &review); err != nil {
		return nil, fmt.Errorf("model output is not valid review JSON: %w", err)
	}
	return &review, nil
}

// isCreditError reports whether an error message indicates exhausted account
// balance rather than a transient failure.
func isCreditError(msg string) bool {
	return strings.Contains(msg, "Credit balance is too low") ||
		strings.Contains(strings.ToLower(msg), "balance")
}

// StripMarkdownCodeFence removes surrounding code fence markers, with or
// without a language tag. Input without fences is returned trimmed.
func StripMarkdownCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	rest := trimmed[3:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		// Multi-line fence: drop the opening line including any language tag
		rest = rest[i+1:]
	} else {
		// Single-line fence: ```json {...}```
		rest = strings.TrimPrefix(rest, "json")
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
