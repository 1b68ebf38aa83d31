package testsupport

import (
	"path/filepath"
	"testing"

	"gabraconv/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The output directory is not created, matching a fresh run.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutDir = filepath.Join(base, "out")
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLexemeCleaners replaces the lexeme cleaner chain.
func WithLexemeCleaners(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lexemes.Cleaners = ids
	}
}

// WithWordformCleaners replaces the wordform cleaner chain.
func WithWordformCleaners(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Wordforms.Cleaners = ids
	}
}

// WithTempWorkDir clears the work directory so runs extract into a temp dir.
func WithTempWorkDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.WorkDir = ""
	}
}

// WithLogFile directs logs into a file under the test's base directory.
func WithLogFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, name)
	}
}
