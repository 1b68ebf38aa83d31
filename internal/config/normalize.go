package config

import (
	"fmt"
	"strings"
)

// Normalize trims identifiers, lowercases enumerations, and expands paths.
// It is idempotent so callers can re-run it after applying flag overrides.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Lexemes.normalize()
	c.Wordforms.normalize()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.OutDir = strings.TrimSpace(c.Paths.OutDir)
	if c.Paths.OutDir == "" {
		c.Paths.OutDir = defaultOutDir
	}
	if c.Paths.OutDir, err = expandPath(c.Paths.OutDir); err != nil {
		return fmt.Errorf("paths.out_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (k *Kind) normalize() {
	cleaners := make([]string, 0, len(k.Cleaners))
	for _, id := range k.Cleaners {
		for _, part := range strings.Split(id, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaners = append(cleaners, part)
			}
		}
	}
	k.Cleaners = cleaners
	k.Exporter = strings.TrimSpace(k.Exporter)
	if k.Exporter == "" {
		k.Exporter = defaultExporter
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}
