package prompt

import "os"

// NoGuidelines is substituted when the guidelines document is absent.
const NoGuidelines = "No specific guidelines were provided for this repository. Apply general code review judgment."

// LoadGuidelines reads the guidelines document from path. A missing or
// unreadable file is not an error: the placeholder text is returned instead.
func LoadGuidelines(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return NoGuidelines
	}
	return string(data)
}
