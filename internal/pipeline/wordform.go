package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"gabraconv/internal/cleaner"
	"gabraconv/internal/export"
	"gabraconv/internal/faults"
	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
)

// WordformKind names the wordform outputs and skip log.
const WordformKind = "wordforms"

// WordformPipeline converts wordform documents against a frozen lexeme id map.
type WordformPipeline struct {
	core     *core[*row.Wordform]
	cleaners []cleaner.Wordform
	exporter export.WordformExporter
	ids      *idmap.Map
	closed   bool
}

// NewWordform validates the cleaner chain and returns a pipeline ready for Create.
func NewWordform(cleaners []cleaner.Wordform, exporter export.WordformExporter, logger *slog.Logger, listeners ...Listener[*row.Wordform]) (*WordformPipeline, error) {
	if exporter == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, WordformKind, "pipeline", "exporter is required", nil)
	}
	if err := validateChain(WordformKind, cleaner.Infos(cleaners), exporter.Info()); err != nil {
		return nil, err
	}
	p := &WordformPipeline{cleaners: cleaners, exporter: exporter}
	p.core = newCore(kind[*row.Wordform]{
		name:  WordformKind,
		parse: row.ParseWordform,
		clean: func(wf *row.Wordform) outcome {
			for _, c := range p.cleaners {
				if !c.Clean(wf, p.ids) {
					info := c.Info()
					return rejected(info.ID, info.Description, cleaner.ExplainWordform(c, wf))
				}
			}
			return outcome{accepted: true}
		},
		export: func(wf *row.Wordform) (int, error) {
			return p.exporter.AddRow(wf, p.ids)
		},
	}, logger, listeners)
	return p, nil
}

// Create initializes the exporter and the skip log in dir.
func (p *WordformPipeline) Create(dir string) error {
	if err := p.exporter.Create(dir); err != nil {
		return faults.Wrap(faults.ErrExport, WordformKind, "create exporter", "", err)
	}
	return p.core.create(dir)
}

// ConvertFile streams path through the pipeline using ids to resolve lexeme
// references. The exporter is closed on return.
func (p *WordformPipeline) ConvertFile(ctx context.Context, path string, ids *idmap.Map) (stats Stats, err error) {
	defer func() {
		if closeErr := p.exporter.Close(); closeErr != nil && err == nil {
			err = faults.Wrap(faults.ErrExport, WordformKind, "close exporter", "", closeErr)
		}
	}()
	if ids == nil {
		return stats, faults.Wrap(faults.ErrExport, WordformKind, "convert", "lexeme id map is required", nil)
	}
	p.ids = ids
	return p.core.convert(ctx, path)
}

// Files lists every output file the pipeline created.
func (p *WordformPipeline) Files() []string {
	return appendSkipLog(p.exporter.Files(), p.core.skipLog.Path())
}

// Close releases the exporter and skip log. It is safe to call more than once.
func (p *WordformPipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return errors.Join(p.exporter.Close(), p.core.close())
}
