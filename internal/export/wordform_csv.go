package export

import (
	"errors"
	"fmt"

	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
)

const (
	wordformsTable       = "wordforms"
	wordformAlternatives = "wordforms_alternatives"
	wordformSources      = "wordforms_sources"
)

var agreementSlots = []string{"subject", "dir_obj", "ind_obj", "possessor"}

func wordformColumns() []string {
	cols := []string{
		"id", "lexeme_id", "surface_form", "phonetic", "pending", "generated",
		"archaic", "hypothetical", "aspect", "polarity", "form", "gender",
		"number", "plural_form",
	}
	for _, slot := range agreementSlots {
		cols = append(cols, slot+"_person", slot+"_number", slot+"_gender")
	}
	return append(cols, "created", "modified")
}

// WordformCSV exports wordforms to three CSV tables.
type WordformCSV struct {
	tables  *tableSet
	main    *table
	alts    *table
	sources *table
	files   []string
	next    int
	closed  bool
}

// NewWordformCSV returns an exporter that has not been created yet.
func NewWordformCSV() *WordformCSV {
	return &WordformCSV{}
}

func (e *WordformCSV) Info() Info {
	info, _ := LookupWordform(CSV)
	return info
}

// Create opens the output tables in dir.
func (e *WordformCSV) Create(dir string) error {
	if e.tables != nil || e.closed {
		return errors.New("wordform exporter already created")
	}
	set, err := openTables(dir, []tableSpec{
		{name: wordformsTable, header: wordformColumns()},
		{name: wordformAlternatives, header: []string{"wordform_id", "value"}},
		{name: wordformSources, header: []string{"wordform_id", "value"}},
	})
	if err != nil {
		return err
	}
	e.tables = set
	e.main, e.alts, e.sources = set.tables[0], set.tables[1], set.tables[2]
	e.files = set.paths()
	return nil
}

// AddRow writes wf with its lexeme_id replaced by the lexeme's export id.
func (e *WordformCSV) AddRow(wf *row.Wordform, ids *idmap.Map) (int, error) {
	if e.tables == nil {
		return 0, fmt.Errorf("wordform exporter: %w", ErrNotInitialized)
	}
	lexemeID, ok := ids.Lookup(wf.LexemeID)
	if !ok {
		return 0, fmt.Errorf("%w: wordform %q references lexeme %q", ErrDanglingReference, wf.ID, wf.LexemeID)
	}
	e.next++
	key := formatID(e.next)
	record := []string{
		key,
		formatID(lexemeID),
		wf.SurfaceForm,
		formatString(wf.Phonetic),
		formatBool(wf.Pending),
		formatOptionalBool(wf.Generated),
		formatOptionalBool(wf.Archaic),
		formatOptionalBool(wf.Hypothetical),
		formatString(wf.Aspect),
		formatString(wf.Polarity),
		formatString(wf.Form),
		formatString(wf.Gender),
		formatString(wf.Number),
		formatString(wf.PluralForm),
	}
	for _, agr := range []*row.Agreement{wf.Subject, wf.DirObj, wf.IndObj, wf.Possessor} {
		if agr == nil {
			record = append(record, "", "", "")
			continue
		}
		record = append(record, formatString(agr.Person), formatString(agr.Number), formatString(agr.Gender))
	}
	record = append(record, formatString(wf.Created), formatString(wf.Modified))
	if err := e.main.write(record); err != nil {
		return 0, err
	}
	if err := writeValues(e.alts, key, wf.Alternatives); err != nil {
		return 0, err
	}
	if err := writeValues(e.sources, key, wf.Sources); err != nil {
		return 0, err
	}
	return e.next, nil
}

func (e *WordformCSV) Files() []string {
	return append([]string(nil), e.files...)
}

// Close flushes and closes every table. It is safe to call more than once.
func (e *WordformCSV) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.tables == nil {
		return nil
	}
	err := e.tables.close()
	e.tables = nil
	return err
}
