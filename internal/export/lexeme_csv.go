package export

import (
	"errors"
	"fmt"

	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
)

const (
	lexemesTable        = "lexemes"
	lexemeAlternatives  = "lexemes_alternatives"
	lexemeSources       = "lexemes_sources"
	lexemeGlosses       = "lexemes_glosses"
	lexemeGlossExamples = "lexemes_glosses_examples"
)

var lexemeColumns = []string{
	"id", "lemma", "pos", "root_radicals", "root_variant", "derived_form",
	"form", "gender", "number", "frequency", "norm_freq", "pending",
	"archaic", "hypothetical", "intransitive", "ditransitive",
	"onomastic_type", "phonetic", "apertium_paradigm", "created", "modified",
}

// LexemeCSV exports lexemes to five CSV tables.
type LexemeCSV struct {
	tables   *tableSet
	main     *table
	alts     *table
	sources  *table
	glosses  *table
	examples *table
	files    []string

	ids     *idmap.Builder
	frozen  *idmap.Map
	glossID int
	closed  bool
}

// NewLexemeCSV returns an exporter that has not been created yet.
func NewLexemeCSV() *LexemeCSV {
	return &LexemeCSV{ids: idmap.NewBuilder()}
}

func (e *LexemeCSV) Info() Info {
	info, _ := LookupLexeme(CSV)
	return info
}

// Create opens the output tables in dir.
func (e *LexemeCSV) Create(dir string) error {
	if e.tables != nil || e.closed {
		return errors.New("lexeme exporter already created")
	}
	set, err := openTables(dir, []tableSpec{
		{name: lexemesTable, header: lexemeColumns},
		{name: lexemeAlternatives, header: []string{"lexeme_id", "value"}},
		{name: lexemeSources, header: []string{"lexeme_id", "value"}},
		{name: lexemeGlosses, header: []string{"lexeme_id", "gloss_id", "gloss"}},
		{name: lexemeGlossExamples, header: []string{"gloss_id", "example", "type"}},
	})
	if err != nil {
		return err
	}
	e.tables = set
	e.main, e.alts, e.sources, e.glosses, e.examples = set.tables[0], set.tables[1], set.tables[2], set.tables[3], set.tables[4]
	e.files = set.paths()
	return nil
}

// AddRow writes lex and its list fields. A repeated original id fails with
// idmap.ErrDuplicateID before anything is written.
func (e *LexemeCSV) AddRow(lex *row.Lexeme) (int, error) {
	if e.tables == nil {
		return 0, fmt.Errorf("lexeme exporter: %w", ErrNotInitialized)
	}
	id, err := e.ids.Assign(lex.ID)
	if err != nil {
		return 0, err
	}
	key := formatID(id)

	var radicals *string
	var variant *int64
	if lex.Root != nil {
		radicals, variant = lex.Root.Radicals, lex.Root.Variant
	}
	record := []string{
		key,
		lex.Lemma,
		formatString(lex.POS),
		formatString(radicals),
		formatInt(variant),
		formatInt(lex.DerivedForm),
		formatString(lex.Form),
		formatString(lex.Gender),
		formatString(lex.Number),
		formatInt(lex.Frequency),
		formatFloat(lex.NormFreq),
		formatBool(lex.Pending),
		formatOptionalBool(lex.Archaic),
		formatOptionalBool(lex.Hypothetical),
		formatOptionalBool(lex.Intransitive),
		formatOptionalBool(lex.Ditransitive),
		formatString(lex.OnomasticType),
		formatString(lex.Phonetic),
		formatString(lex.ApertiumParadigm),
		formatString(lex.Created),
		formatString(lex.Modified),
	}
	if err := e.main.write(record); err != nil {
		return 0, err
	}
	if err := writeValues(e.alts, key, lex.Alternatives); err != nil {
		return 0, err
	}
	if err := writeValues(e.sources, key, lex.Sources); err != nil {
		return 0, err
	}
	for _, gloss := range lex.Glosses {
		e.glossID++
		glossKey := formatID(e.glossID)
		if err := e.glosses.write([]string{key, glossKey, formatString(gloss.Gloss)}); err != nil {
			return 0, err
		}
		for _, ex := range gloss.Examples {
			if err := e.examples.write([]string{glossKey, formatString(ex.Example), formatString(ex.Type)}); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// IDMap returns the frozen id map once the exporter is closed.
func (e *LexemeCSV) IDMap() (*idmap.Map, error) {
	if !e.closed {
		return nil, ErrIDMapNotReady
	}
	return e.frozen, nil
}

func (e *LexemeCSV) Files() []string {
	return append([]string(nil), e.files...)
}

// Close flushes and closes every table. It is safe to call more than once.
func (e *LexemeCSV) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.frozen = e.ids.Freeze()
	if e.tables == nil {
		return nil
	}
	err := e.tables.close()
	e.tables = nil
	return err
}

func writeValues(t *table, key string, values []string) error {
	for _, v := range values {
		if err := t.write([]string{key, v}); err != nil {
			return err
		}
	}
	return nil
}
