package export

import (
	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
)

// Info identifies an exporter.
type Info struct {
	ID          string
	Description string
	// RequiredCleaners must be present in the cleaner chain this exporter runs after.
	RequiredCleaners []string
}

// LexemeExporter writes lexemes and records their export ids.
type LexemeExporter interface {
	Info() Info
	Create(dir string) error
	// AddRow writes lex and returns its export id.
	AddRow(lex *row.Lexeme) (int, error)
	// IDMap returns the original id to export id mapping. Valid only after Close.
	IDMap() (*idmap.Map, error)
	// Files lists the paths opened by Create.
	Files() []string
	Close() error
}

// WordformExporter writes wordforms with their lexeme reference remapped through ids.
type WordformExporter interface {
	Info() Info
	Create(dir string) error
	AddRow(wf *row.Wordform, ids *idmap.Map) (int, error)
	Files() []string
	Close() error
}

// MissingCleaners returns the cleaners info requires that chain lacks.
func MissingCleaners(info Info, chain []string) []string {
	present := make(map[string]bool, len(chain))
	for _, id := range chain {
		present[id] = true
	}
	var missing []string
	for _, id := range info.RequiredCleaners {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
