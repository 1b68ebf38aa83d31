package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Cleaner and exporter ids are
// resolved against the registries by the orchestrator, not here.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutDir) == "" {
		return errors.New("paths.out_dir must be set")
	}
	if err := c.Lexemes.validate("lexemes"); err != nil {
		return err
	}
	if err := c.Wordforms.validate("wordforms"); err != nil {
		return err
	}
	return c.validateLogging()
}

func (k Kind) validate(section string) error {
	if strings.TrimSpace(k.Exporter) == "" {
		return fmt.Errorf("%s.exporter must be set", section)
	}
	seen := make(map[string]struct{}, len(k.Cleaners))
	for _, id := range k.Cleaners {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%s.cleaners contains an empty id", section)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s.cleaners lists %q more than once", section, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
