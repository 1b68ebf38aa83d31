package export

import "fmt"

// CSV is the id of the relational CSV exporter.
const CSV = "csv"

type lexemeEntry struct {
	info Info
	new  func() LexemeExporter
}

type wordformEntry struct {
	info Info
	new  func() WordformExporter
}

var lexemeRegistry = []lexemeEntry{
	{
		info: Info{ID: CSV, Description: "CSV tables with list fields split into side tables"},
		new:  func() LexemeExporter { return NewLexemeCSV() },
	},
}

var wordformRegistry = []wordformEntry{
	{
		info: Info{
			ID:               CSV,
			Description:      "CSV tables with list fields split into side tables",
			RequiredCleaners: []string{"missing_lexeme"},
		},
		new: func() WordformExporter { return NewWordformCSV() },
	},
}

func init() {
	seen := map[string]bool{}
	for _, e := range lexemeRegistry {
		if seen[e.info.ID] {
			panic(fmt.Sprintf("export: duplicate lexeme exporter id %q", e.info.ID))
		}
		seen[e.info.ID] = true
	}
	seen = map[string]bool{}
	for _, e := range wordformRegistry {
		if seen[e.info.ID] {
			panic(fmt.Sprintf("export: duplicate wordform exporter id %q", e.info.ID))
		}
		seen[e.info.ID] = true
	}
}

// LexemeExporters lists the registered lexeme exporters.
func LexemeExporters() []Info {
	out := make([]Info, 0, len(lexemeRegistry))
	for _, e := range lexemeRegistry {
		out = append(out, e.info)
	}
	return out
}

// WordformExporters lists the registered wordform exporters.
func WordformExporters() []Info {
	out := make([]Info, 0, len(wordformRegistry))
	for _, e := range wordformRegistry {
		out = append(out, e.info)
	}
	return out
}

// LookupLexeme returns the Info of a lexeme exporter.
func LookupLexeme(id string) (Info, error) {
	for _, e := range lexemeRegistry {
		if e.info.ID == id {
			return e.info, nil
		}
	}
	return Info{}, fmt.Errorf("%w for lexemes: %q", ErrUnknown, id)
}

// LookupWordform returns the Info of a wordform exporter.
func LookupWordform(id string) (Info, error) {
	for _, e := range wordformRegistry {
		if e.info.ID == id {
			return e.info, nil
		}
	}
	return Info{}, fmt.Errorf("%w for wordforms: %q", ErrUnknown, id)
}

// NewLexeme returns a fresh lexeme exporter.
func NewLexeme(id string) (LexemeExporter, error) {
	for _, e := range lexemeRegistry {
		if e.info.ID == id {
			return e.new(), nil
		}
	}
	return nil, fmt.Errorf("%w for lexemes: %q", ErrUnknown, id)
}

// NewWordform returns a fresh wordform exporter.
func NewWordform(id string) (WordformExporter, error) {
	for _, e := range wordformRegistry {
		if e.info.ID == id {
			return e.new(), nil
		}
	}
	return nil, fmt.Errorf("%w for wordforms: %q", ErrUnknown, id)
}
