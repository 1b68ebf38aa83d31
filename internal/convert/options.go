package convert

import (
	"log/slog"
	"strings"

	"gabraconv/internal/config"
)

// ArchiveSuffix is the only accepted dump extension.
const ArchiveSuffix = ".tar.gz"

// Options describes one conversion.
type Options struct {
	ArchivePath string
	// OutDir must not exist; it is created by Run.
	OutDir string
	// WorkDir holds the extracted dump. Empty means a system temp directory.
	WorkDir   string
	Lexemes   config.Kind
	Wordforms config.Kind
	// RunID tags every log line. Empty means a fresh UUID.
	RunID    string
	Logger   *slog.Logger
	Listener RunListener
}

// OptionsFromConfig seeds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, archivePath string) Options {
	return Options{
		ArchivePath: strings.TrimSpace(archivePath),
		OutDir:      cfg.Paths.OutDir,
		WorkDir:     cfg.Paths.WorkDir,
		Lexemes:     cloneKind(cfg.Lexemes),
		Wordforms:   cloneKind(cfg.Wordforms),
	}
}

func cloneKind(k config.Kind) config.Kind {
	return config.Kind{Cleaners: append([]string(nil), k.Cleaners...), Exporter: k.Exporter}
}
