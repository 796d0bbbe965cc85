// Package config provides configuration file support for prreview.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/techweeksl/prreview/internal/agent"
	"github.com/techweeksl/prreview/internal/batch"
)

// ConfigFileName is the name of the config file, looked up in the working
// directory.
const ConfigFileName = ".prreview.yaml"

// TokenEnvVar names the required GitHub access token variable.
const TokenEnvVar = "GITHUB_TOKEN"

// DefaultGuidelinesFile is the repository-relative guidelines document.
const DefaultGuidelinesFile = "CLAUDE.md"

// Duration is a custom type that handles YAML duration parsing.
// Supports both Go duration format ("5m", "300s") and numeric seconds.
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v) * time.Second)
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
	return nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Config represents the prreview configuration file. Nil fields were not set
// and fall through to env vars or defaults during Resolve.
type Config struct {
	Repo       *string   `yaml:"repo"`
	Model      *string   `yaml:"model"`
	BatchChars *int      `yaml:"batch_chars"`
	Timeout    *Duration `yaml:"timeout"`
	Guidelines *string   `yaml:"guidelines"`
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.BatchChars != nil && *c.BatchChars < 1 {
		return fmt.Errorf("batch_chars must be >= 1, got %d", *c.BatchChars)
	}
	if c.Timeout != nil && c.Timeout.AsDuration() <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.AsDuration())
	}
	if c.Repo != nil && *c.Repo != "" && !validRepo(*c.Repo) {
		return fmt.Errorf("repo must look like owner/repo, got %q", *c.Repo)
	}
	return nil
}

func validRepo(repo string) bool {
	owner, name, ok := strings.Cut(repo, "/")
	return ok && owner != "" && name != ""
}

// LoadResult contains the loaded config and any warnings encountered.
type LoadResult struct {
	Config   *Config
	Warnings []string
}

// Load reads ConfigFileName from the current directory.
// Returns an empty config (not error) if the file doesn't exist.
func Load() (*LoadResult, error) {
	return LoadFromPath(ConfigFileName)
}

// LoadFromPath reads a config file and returns warnings for unknown keys.
// Returns an empty config (not error) if the file doesn't exist.
// Returns an error if the file exists but is invalid YAML or fails validation.
func LoadFromPath(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &LoadResult{Config: &Config{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	warnings := checkUnknownKeys(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}

	return &LoadResult{Config: &cfg, Warnings: warnings}, nil
}

// knownKeys are the valid top-level keys in the config file.
var knownKeys = []string{"repo", "model", "batch_chars", "timeout", "guidelines"}

// checkUnknownKeys checks for unknown keys in the YAML data and returns warnings.
func checkUnknownKeys(data []byte) []string {
	var warnings []string

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// If we can't parse, let the main parser handle the error
		return nil
	}

	for key := range raw {
		if !slices.Contains(knownKeys, key) {
			warning := fmt.Sprintf("unknown key %q in %s", key, ConfigFileName)
			if suggestion := findSimilar(key, knownKeys); suggestion != "" {
				warning += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			warnings = append(warnings, warning)
		}
	}

	return warnings
}

// findSimilar finds the most similar string from candidates using Levenshtein
// distance. Returns empty string if no candidate is within 3 edits.
func findSimilar(input string, candidates []string) string {
	const maxDistance = 3
	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		dist := levenshtein(input, candidate)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}

// Resolved holds the final configuration after precedence resolution.
type Resolved struct {
	Repo       string
	Model      string
	BatchChars int
	Timeout    time.Duration
	Guidelines string
}

// FlagState tracks which flags were explicitly set on the command line.
type FlagState struct {
	RepoSet       bool
	ModelSet      bool
	BatchCharsSet bool
	TimeoutSet    bool
	GuidelinesSet bool
}

// EnvState holds environment variable values and whether each was set to a
// usable value. Malformed numeric/duration values are ignored.
type EnvState struct {
	Repo          string
	RepoSet       bool
	Model         string
	ModelSet      bool
	BatchChars    int
	BatchCharsSet bool
	Timeout       time.Duration
	TimeoutSet    bool
	Guidelines    string
	GuidelinesSet bool
}

// LoadEnvState reads the PRREVIEW_* environment variables.
func LoadEnvState() EnvState {
	var env EnvState

	if v := os.Getenv("PRREVIEW_REPO"); v != "" {
		env.Repo = v
		env.RepoSet = true
	}
	if v := os.Getenv("PRREVIEW_MODEL"); v != "" {
		env.Model = v
		env.ModelSet = true
	}
	if v := os.Getenv("PRREVIEW_BATCH_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			env.BatchChars = n
			env.BatchCharsSet = true
		}
	}
	if v := os.Getenv("PRREVIEW_TIMEOUT"); v != "" {
		if d, err := parseTimeout(v); err == nil && d > 0 {
			env.Timeout = d
			env.TimeoutSet = true
		}
	}
	if v := os.Getenv("PRREVIEW_GUIDELINES"); v != "" {
		env.Guidelines = v
		env.GuidelinesSet = true
	}

	return env
}

// parseTimeout accepts a Go duration string or bare seconds.
func parseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return time.Duration(secs) * time.Second, nil
}

// Resolve computes the final configuration with precedence:
// flags > env vars > config file > defaults.
func Resolve(cfg *Config, env EnvState, flags FlagState, flagValues Resolved) Resolved {
	out := Resolved{
		BatchChars: batch.DefaultCharLimit,
		Timeout:    agent.DefaultTimeout,
		Guidelines: DefaultGuidelinesFile,
	}

	if cfg != nil {
		if cfg.Repo != nil {
			out.Repo = *cfg.Repo
		}
		if cfg.Model != nil {
			out.Model = *cfg.Model
		}
		if cfg.BatchChars != nil {
			out.BatchChars = *cfg.BatchChars
		}
		if cfg.Timeout != nil {
			out.Timeout = cfg.Timeout.AsDuration()
		}
		if cfg.Guidelines != nil {
			out.Guidelines = *cfg.Guidelines
		}
	}

	if env.RepoSet {
		out.Repo = env.Repo
	}
	if env.ModelSet {
		out.Model = env.Model
	}
	if env.BatchCharsSet {
		out.BatchChars = env.BatchChars
	}
	if env.TimeoutSet {
		out.Timeout = env.Timeout
	}
	if env.GuidelinesSet {
		out.Guidelines = env.Guidelines
	}

	if flags.RepoSet {
		out.Repo = flagValues.Repo
	}
	if flags.ModelSet {
		out.Model = flagValues.Model
	}
	if flags.BatchCharsSet {
		out.BatchChars = flagValues.BatchChars
	}
	if flags.TimeoutSet {
		out.Timeout = flagValues.Timeout
	}
	if flags.GuidelinesSet {
		out.Guidelines = flagValues.Guidelines
	}

	return out
}
