package cleaner

import (
	"fmt"
	"strings"
)

var (
	lexemeRegistry   = mustRegistry(builtinLexemeCleaners())
	wordformRegistry = mustRegistry(builtinWordformCleaners())
)

type registry[C interface{ Info() Info }] struct {
	ordered []C
	byID    map[string]C
}

func mustRegistry[C interface{ Info() Info }](cleaners []C) registry[C] {
	reg := registry[C]{ordered: cleaners, byID: make(map[string]C, len(cleaners))}
	for _, c := range cleaners {
		id := c.Info().ID
		if strings.TrimSpace(id) == "" {
			panic("cleaner: empty cleaner id")
		}
		if _, dup := reg.byID[id]; dup {
			panic(fmt.Sprintf("cleaner: duplicate cleaner id %q", id))
		}
		reg.byID[id] = c
	}
	return reg
}

func (r registry[C]) selectIDs(kind string, ids []string) ([]C, error) {
	selected := make([]C, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		c, ok := r.byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		selected = append(selected, c)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w for %s: %s", ErrUnknown, kind, strings.Join(unknown, ", "))
	}
	return selected, nil
}

// LexemeCleaners returns every registered lexeme cleaner in catalogue order.
func LexemeCleaners() []Lexeme {
	return append([]Lexeme(nil), lexemeRegistry.ordered...)
}

// WordformCleaners returns every registered wordform cleaner in catalogue order.
func WordformCleaners() []Wordform {
	return append([]Wordform(nil), wordformRegistry.ordered...)
}

// SelectLexeme resolves ids to lexeme cleaners, preserving the given order.
func SelectLexeme(ids []string) ([]Lexeme, error) {
	return lexemeRegistry.selectIDs("lexemes", ids)
}

// SelectWordform resolves ids to wordform cleaners, preserving the given order.
func SelectWordform(ids []string) ([]Wordform, error) {
	return wordformRegistry.selectIDs("wordforms", ids)
}
