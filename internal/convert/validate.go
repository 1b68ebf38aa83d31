package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gabraconv/internal/cleaner"
	"gabraconv/internal/export"
	"gabraconv/internal/faults"
	"gabraconv/internal/pipeline"
)

// plan is a validated request with its cleaners and exporters resolved.
type plan struct {
	archivePath      string
	outDir           string
	workDir          string
	lexemeCleaners   []cleaner.Lexeme
	wordformCleaners []cleaner.Wordform
	lexemeExporter   export.LexemeExporter
	wordformExporter export.WordformExporter
}

// Validate checks opts without touching the filesystem beyond stat calls.
func Validate(opts Options) error {
	_, err := validate(opts)
	return err
}

func validate(opts Options) (*plan, error) {
	archivePath := strings.TrimSpace(opts.ArchivePath)
	if archivePath == "" {
		return nil, configError("archive", "dump archive path is required", nil)
	}
	if !strings.HasSuffix(strings.ToLower(archivePath), ArchiveSuffix) {
		return nil, configError("archive", fmt.Sprintf("%s must end in %s", archivePath, ArchiveSuffix), nil)
	}
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, configError("archive", archivePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, configError("archive", archivePath+" is not a regular file", nil)
	}

	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, configError("output", "output directory is required", nil)
	}
	outDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, configError("output", opts.OutDir, err)
	}
	if _, err := os.Lstat(outDir); err == nil {
		return nil, configError("output", fmt.Sprintf("output directory %s already exists", outDir), nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, configError("output", outDir, err)
	}

	p := &plan{archivePath: archivePath, outDir: outDir, workDir: strings.TrimSpace(opts.WorkDir)}

	if p.lexemeCleaners, err = cleaner.SelectLexeme(opts.Lexemes.Cleaners); err != nil {
		return nil, configError(pipeline.LexemeKind, "cleaners", err)
	}
	if p.wordformCleaners, err = cleaner.SelectWordform(opts.Wordforms.Cleaners); err != nil {
		return nil, configError(pipeline.WordformKind, "cleaners", err)
	}
	if p.lexemeExporter, err = export.NewLexeme(opts.Lexemes.Exporter); err != nil {
		return nil, configError(pipeline.LexemeKind, "exporter", err)
	}
	if p.wordformExporter, err = export.NewWordform(opts.Wordforms.Exporter); err != nil {
		return nil, configError(pipeline.WordformKind, "exporter", err)
	}

	if err := checkChain(pipeline.LexemeKind, cleaner.Infos(p.lexemeCleaners), p.lexemeExporter.Info()); err != nil {
		return nil, err
	}
	if err := checkChain(pipeline.WordformKind, cleaner.Infos(p.wordformCleaners), p.wordformExporter.Info()); err != nil {
		return nil, err
	}
	return p, nil
}

func checkChain(kind string, chain []cleaner.Info, exporter export.Info) error {
	if missing := export.MissingCleaners(exporter, cleaner.IDs(chain)); len(missing) > 0 {
		return configError(kind, fmt.Sprintf("exporter %s requires cleaners: %s", exporter.ID, strings.Join(missing, ", ")), nil)
	}
	if err := cleaner.ValidateChain(chain); err != nil {
		return configError(kind, "cleaners", err)
	}
	return nil
}

func configError(operation, message string, err error) error {
	return faults.Wrap(faults.ErrConfiguration, "validate", operation, message, err)
}
