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

// LexemeKind names the lexeme outputs and skip log.
const LexemeKind = "lexemes"

// LexemePipeline converts lexeme documents and produces the id map.
type LexemePipeline struct {
	core     *core[*row.Lexeme]
	cleaners []cleaner.Lexeme
	exporter export.LexemeExporter
	closed   bool
}

// NewLexeme validates the cleaner chain and returns a pipeline ready for Create.
func NewLexeme(cleaners []cleaner.Lexeme, exporter export.LexemeExporter, logger *slog.Logger, listeners ...Listener[*row.Lexeme]) (*LexemePipeline, error) {
	if exporter == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, LexemeKind, "pipeline", "exporter is required", nil)
	}
	if err := validateChain(LexemeKind, cleaner.Infos(cleaners), exporter.Info()); err != nil {
		return nil, err
	}
	p := &LexemePipeline{cleaners: cleaners, exporter: exporter}
	p.core = newCore(kind[*row.Lexeme]{
		name:  LexemeKind,
		parse: row.ParseLexeme,
		clean: func(lex *row.Lexeme) outcome {
			for _, c := range p.cleaners {
				if !c.Clean(lex) {
					info := c.Info()
					return rejected(info.ID, info.Description, cleaner.ExplainLexeme(c, lex))
				}
			}
			return outcome{accepted: true}
		},
		export: p.exporter.AddRow,
		skipExport: func(err error) bool {
			return errors.Is(err, idmap.ErrDuplicateID)
		},
	}, logger, listeners)
	return p, nil
}

// Create initializes the exporter and the skip log in dir.
func (p *LexemePipeline) Create(dir string) error {
	if err := p.exporter.Create(dir); err != nil {
		return faults.Wrap(faults.ErrExport, LexemeKind, "create exporter", "", err)
	}
	return p.core.create(dir)
}

// ConvertFile streams path through the pipeline. The exporter is closed on
// return, so IDMap is available afterwards even when an error is returned.
func (p *LexemePipeline) ConvertFile(ctx context.Context, path string) (stats Stats, err error) {
	defer func() {
		if closeErr := p.exporter.Close(); closeErr != nil && err == nil {
			err = faults.Wrap(faults.ErrExport, LexemeKind, "close exporter", "", closeErr)
		}
	}()
	return p.core.convert(ctx, path)
}

// IDMap returns the lexeme id map once ConvertFile has finished.
func (p *LexemePipeline) IDMap() (*idmap.Map, error) {
	ids, err := p.exporter.IDMap()
	if err != nil {
		return nil, faults.Wrap(faults.ErrExport, LexemeKind, "id map", "", err)
	}
	return ids, nil
}

// Files lists every output file the pipeline created.
func (p *LexemePipeline) Files() []string {
	return appendSkipLog(p.exporter.Files(), p.core.skipLog.Path())
}

// Close releases the exporter and skip log. It is safe to call more than once.
func (p *LexemePipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return errors.Join(p.exporter.Close(), p.core.close())
}
