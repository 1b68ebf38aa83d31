package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
)

var (
	// ErrUnknown is returned when a configured cleaner id is not registered.
	ErrUnknown = errors.New("unknown cleaner")
	// ErrInvalidChain is returned when a chain repeats a cleaner or breaks prerequisite order.
	ErrInvalidChain = errors.New("invalid cleaner chain")
)

// Info identifies a cleaner.
type Info struct {
	ID          string
	Description string
	// Requires lists cleaner ids that must run earlier in the same chain.
	Requires []string
}

// Lexeme cleans lexeme rows. Clean may mutate the row and returns false to reject it.
type Lexeme interface {
	Info() Info
	Clean(lex *row.Lexeme) bool
}

// Wordform cleans wordform rows. ids maps exported lexeme ids to export ids.
type Wordform interface {
	Info() Info
	Clean(wf *row.Wordform, ids *idmap.Map) bool
}

// LexemeExplainer is implemented by lexeme cleaners that can detail why they
// rejected a row.
type LexemeExplainer interface {
	Explain(lex *row.Lexeme) string
}

// WordformExplainer is the wordform counterpart of LexemeExplainer.
type WordformExplainer interface {
	Explain(wf *row.Wordform) string
}

// ExplainLexeme returns c's detail for a rejected lex, or "" when c offers none.
func ExplainLexeme(c Lexeme, lex *row.Lexeme) string {
	if e, ok := c.(LexemeExplainer); ok {
		return e.Explain(lex)
	}
	return ""
}

// ExplainWordform returns c's detail for a rejected wf, or "" when c offers none.
func ExplainWordform(c Wordform, wf *row.Wordform) string {
	if e, ok := c.(WordformExplainer); ok {
		return e.Explain(wf)
	}
	return ""
}

type lexemeCleaner struct {
	info    Info
	clean   func(*row.Lexeme) bool
	explain func(*row.Lexeme) string
}

func (c lexemeCleaner) Info() Info                 { return c.info }
func (c lexemeCleaner) Clean(lex *row.Lexeme) bool { return c.clean(lex) }

func (c lexemeCleaner) Explain(lex *row.Lexeme) string {
	if c.explain == nil {
		return ""
	}
	return c.explain(lex)
}

type wordformCleaner struct {
	info    Info
	clean   func(*row.Wordform, *idmap.Map) bool
	explain func(*row.Wordform) string
}

func (c wordformCleaner) Info() Info { return c.info }
func (c wordformCleaner) Clean(wf *row.Wordform, ids *idmap.Map) bool {
	return c.clean(wf, ids)
}

func (c wordformCleaner) Explain(wf *row.Wordform) string {
	if c.explain == nil {
		return ""
	}
	return c.explain(wf)
}

// Infos returns the Info of each cleaner in order.
func Infos[C interface{ Info() Info }](cleaners []C) []Info {
	infos := make([]Info, 0, len(cleaners))
	for _, c := range cleaners {
		infos = append(infos, c.Info())
	}
	return infos
}

// IDs returns the ids of infos in order.
func IDs(infos []Info) []string {
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	return ids
}

// ValidateChain checks that no cleaner appears twice and that every
// prerequisite is present and runs before the cleaner that needs it.
func ValidateChain(chain []Info) error {
	position := make(map[string]int, len(chain))
	for i, info := range chain {
		if _, dup := position[info.ID]; dup {
			return fmt.Errorf("%w: cleaner %q listed more than once", ErrInvalidChain, info.ID)
		}
		position[info.ID] = i
	}
	var problems []string
	for i, info := range chain {
		for _, req := range info.Requires {
			at, ok := position[req]
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("%s requires %s", info.ID, req))
			case at > i:
				problems = append(problems, fmt.Sprintf("%s must run after %s", info.ID, req))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidChain, strings.Join(problems, "; "))
	}
	return nil
}
