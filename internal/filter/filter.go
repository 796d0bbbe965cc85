// Package filter decides which changed files are eligible for review.
package filter

import (
	"path"
	"strings"
)

// skipNames holds exact path matches that are never reviewed. The comparison
// is against the full path string, so "a/b/package-lock.json" does not match
// the bare "package-lock.json" entry.
var skipNames = map[string]struct{}{
	"poetry.lock":       {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	".gitignore":        {},
}

// skipPrefixes holds directory prefixes for generated or vendored code.
var skipPrefixes = []string{
	"node_modules/",
	"vendor/",
	"dist/",
	"migrations/",
	".tox/",
	".env/",
}

// skipExtensions holds lowercase extensions of binary/media/artifact files.
var skipExtensions = map[string]struct{}{
	".png":   {},
	".jpg":   {},
	".jpeg":  {},
	".gif":   {},
	".ico":   {},
	".svg":   {},
	".woff":  {},
	".woff2": {},
	".ttf":   {},
	".eot":   {},
	".otf":   {},
	".mp3":   {},
	".mp4":   {},
	".webm":  {},
	".ogg":   {},
	".wav":   {},
	".zip":   {},
	".tar":   {},
	".gz":    {},
	".bz2":   {},
	".xz":    {},
	".pdf":   {},
	".pyc":   {},
	".pyo":   {},
	".so":    {},
	".dylib": {},
	".dll":   {},
	".exe":   {},
	".bin":   {},
	".dat":   {},
}

// ShouldReview reports whether a file path is eligible for review.
// It is a pure predicate: files with empty patches are excluded by the
// caller, not here.
func ShouldReview(filename string) bool {
	if _, ok := skipNames[filename]; ok {
		return false
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(filename, prefix) {
			return false
		}
	}
	if ext := extension(filename); ext != "" {
		if _, ok := skipExtensions[ext]; ok {
			return false
		}
	}
	return true
}

// extension returns the lowercase last dot-delimited suffix of the base name,
// or "" for extensionless files and dotfiles like ".gitignore".
func extension(filename string) string {
	base := path.Base(filename)
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(base[i:])
}
