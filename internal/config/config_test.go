package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/techweeksl/prreview/internal/agent"
	"github.com/techweeksl/prreview/internal/batch"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		wantWarning string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:    "full config",
			content: "repo: octocat/hello\nmodel: sonnet\nbatch_chars: 50000\ntimeout: 5m\nguidelines: docs/REVIEW.md\n",
			check: func(t *testing.T, cfg *Config) {
				if *cfg.Repo != "octocat/hello" {
					t.Errorf("repo = %q", *cfg.Repo)
				}
				if *cfg.BatchChars != 50000 {
					t.Errorf("batch_chars = %d", *cfg.BatchChars)
				}
				if cfg.Timeout.AsDuration() != 5*time.Minute {
					t.Errorf("timeout = %s", cfg.Timeout.AsDuration())
				}
			},
		},
		{
			name:    "numeric timeout is seconds",
			content: "timeout: 300\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Timeout.AsDuration() != 300*time.Second {
					t.Errorf("timeout = %s, want 300s", cfg.Timeout.AsDuration())
				}
			},
		},
		{
			name:        "unknown key warns with suggestion",
			content:     "batch_char: 100\n",
			wantWarning: `did you mean "batch_chars"?`,
		},
		{
			name:    "invalid yaml",
			content: "repo: [unclosed\n",
			wantErr: true,
		},
		{
			name:    "invalid batch_chars",
			content: "batch_chars: 0\n",
			wantErr: true,
		},
		{
			name:    "invalid repo shape",
			content: "repo: justaname\n",
			wantErr: true,
		},
		{
			name:    "invalid duration string",
			content: "timeout: banana\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoadFromPath(writeConfig(t, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantWarning != "" {
				found := false
				for _, w := range result.Warnings {
					if strings.Contains(w, tt.wantWarning) {
						found = true
					}
				}
				if !found {
					t.Errorf("warnings %v missing %q", result.Warnings, tt.wantWarning)
				}
			}
			if tt.check != nil {
				tt.check(t, result.Config)
			}
		})
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	result, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if result.Config == nil {
		t.Fatal("missing file should yield empty config")
	}
}

func TestResolvePrecedence(t *testing.T) {
	repo := "file/repo"
	chars := 1000
	cfg := &Config{Repo: &repo, BatchChars: &chars}

	env := EnvState{
		Repo:          "env/repo",
		RepoSet:       true,
		Timeout:       2 * time.Minute,
		TimeoutSet:    true,
		BatchChars:    2000,
		BatchCharsSet: true,
	}

	flags := FlagState{RepoSet: true}
	flagValues := Resolved{Repo: "flag/repo"}

	got := Resolve(cfg, env, flags, flagValues)

	if got.Repo != "flag/repo" {
		t.Errorf("Repo = %q, want flag value", got.Repo)
	}
	if got.BatchChars != 2000 {
		t.Errorf("BatchChars = %d, want env value 2000", got.BatchChars)
	}
	if got.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %s, want env value", got.Timeout)
	}
	if got.Model != "" {
		t.Errorf("Model = %q, want default empty", got.Model)
	}
	if got.Guidelines != DefaultGuidelinesFile {
		t.Errorf("Guidelines = %q, want default", got.Guidelines)
	}
}

func TestResolveDefaults(t *testing.T) {
	got := Resolve(nil, EnvState{}, FlagState{}, Resolved{})
	if got.BatchChars != batch.DefaultCharLimit {
		t.Errorf("BatchChars = %d, want %d", got.BatchChars, batch.DefaultCharLimit)
	}
	if got.Timeout != agent.DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", got.Timeout, agent.DefaultTimeout)
	}
}

func TestLoadEnvState(t *testing.T) {
	t.Setenv("PRREVIEW_REPO", "octocat/hello")
	t.Setenv("PRREVIEW_BATCH_CHARS", "9000")
	t.Setenv("PRREVIEW_TIMEOUT", "90")
	t.Setenv("PRREVIEW_MODEL", "")

	env := LoadEnvState()
	if !env.RepoSet || env.Repo != "octocat/hello" {
		t.Errorf("Repo = %q (set=%v)", env.Repo, env.RepoSet)
	}
	if !env.BatchCharsSet || env.BatchChars != 9000 {
		t.Errorf("BatchChars = %d (set=%v)", env.BatchChars, env.BatchCharsSet)
	}
	if !env.TimeoutSet || env.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s (set=%v)", env.Timeout, env.TimeoutSet)
	}
	if env.ModelSet {
		t.Error("empty env var should not count as set")
	}
}

func TestLoadEnvStateIgnoresMalformed(t *testing.T) {
	t.Setenv("PRREVIEW_BATCH_CHARS", "lots")
	t.Setenv("PRREVIEW_TIMEOUT", "soon")

	env := LoadEnvState()
	if env.BatchCharsSet || env.TimeoutSet {
		t.Errorf("malformed values treated as set: %+v", env)
	}
}

func TestFindSimilar(t *testing.T) {
	if got := findSimilar("modle", knownKeys); got != "model" {
		t.Errorf("findSimilar(modle) = %q", got)
	}
	if got := findSimilar("completely_different", knownKeys); got != "" {
		t.Errorf("findSimilar for distant key = %q, want empty", got)
	}
}
