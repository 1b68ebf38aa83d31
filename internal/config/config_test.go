package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gabraconv/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "gabraconv", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if !filepath.IsAbs(cfg.Paths.OutDir) {
		t.Fatalf("expected absolute out dir, got %q", cfg.Paths.OutDir)
	}
	if cfg.Paths.WorkDir != "" {
		t.Fatalf("expected empty work dir, got %q", cfg.Paths.WorkDir)
	}
	if cfg.Lexemes.Exporter != "csv" || cfg.Wordforms.Exporter != "csv" {
		t.Fatalf("unexpected exporters: %q %q", cfg.Lexemes.Exporter, cfg.Wordforms.Exporter)
	}
	if len(cfg.Lexemes.Cleaners) != 0 {
		t.Fatalf("expected no lexeme cleaners by default, got %v", cfg.Lexemes.Cleaners)
	}
	if len(cfg.Wordforms.Cleaners) != 1 || cfg.Wordforms.Cleaners[0] != "missing_lexeme" {
		t.Fatalf("expected missing_lexeme default, got %v", cfg.Wordforms.Cleaners)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	data := config.Default()
	data.Paths.OutDir = "~/exports/gabra"
	data.Paths.WorkDir = "~/scratch"
	data.Lexemes.Cleaners = []string{" lemma_spaces ", "pending"}
	data.Logging.Level = "DEBUG"
	data.Logging.Format = "JSON"

	encoded, err := toml.Marshal(data)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.OutDir != filepath.Join(tempHome, "exports", "gabra") {
		t.Fatalf("unexpected out dir: %q", cfg.Paths.OutDir)
	}
	if cfg.Paths.WorkDir != filepath.Join(tempHome, "scratch") {
		t.Fatalf("unexpected work dir: %q", cfg.Paths.WorkDir)
	}
	if got := strings.Join(cfg.Lexemes.Cleaners, ","); got != "lemma_spaces,pending" {
		t.Fatalf("unexpected cleaners: %q", got)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[lexemes]\ncleanerz = [\"pending\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestNormalizeSplitsCommaSeparatedCleaners(t *testing.T) {
	cfg := config.Default()
	cfg.Wordforms.Cleaners = []string{"new_lines,missing_lexeme", "", " pending"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got := strings.Join(cfg.Wordforms.Cleaners, "|"); got != "new_lines|missing_lexeme|pending" {
		t.Fatalf("unexpected cleaners: %q", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"exporter", func(c *config.Config) { c.Lexemes.Exporter = " " }, "lexemes.exporter"},
		{"duplicate", func(c *config.Config) { c.Wordforms.Cleaners = []string{"pending", "pending"} }, "more than once"},
		{"empty", func(c *config.Config) { c.Lexemes.Cleaners = []string{""} }, "empty id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if len(cfg.Lexemes.Cleaners) != 5 {
		t.Fatalf("expected five lexeme cleaners in sample, got %v", cfg.Lexemes.Cleaners)
	}
	if cfg.Wordforms.Cleaners[1] != "missing_lexeme" {
		t.Fatalf("unexpected wordform chain: %v", cfg.Wordforms.Cleaners)
	}
}
