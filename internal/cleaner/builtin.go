package cleaner

import (
	"fmt"

	"gabraconv/internal/idmap"
	"gabraconv/internal/row"
	"gabraconv/internal/textutil"
)

const (
	IDNewLines              = "new_lines"
	IDLemmaSpaces           = "lemma_spaces"
	IDLemmaCapitals         = "lemma_capitals"
	IDLemmaNonMaltese       = "lemma_nonmaltese"
	IDPending               = "pending"
	IDMissingLexeme         = "missing_lexeme"
	IDSurfaceFormSpaces     = "surfaceform_spaces"
	IDSurfaceFormCapitals   = "surfaceform_capitals"
	IDSurfaceFormNonMaltese = "surfaceform_nonmaltese"
)

func builtinLexemeCleaners() []Lexeme {
	return []Lexeme{
		lexemeCleaner{
			info: Info{ID: IDNewLines, Description: "Replace line breaks and control characters in text fields with spaces and compose them to NFC"},
			clean: func(lex *row.Lexeme) bool {
				normalizeText(lex.TextFields())
				return true
			},
		},
		lexemeCleaner{
			info: Info{ID: IDLemmaSpaces, Description: "Trim the lemma and collapse internal whitespace; reject blank lemmas"},
			clean: func(lex *row.Lexeme) bool {
				lex.Lemma = textutil.CollapseSpaces(lex.Lemma)
				collapse(lex.Alternatives)
				return lex.Lemma != ""
			},
		},
		lexemeCleaner{
			info: Info{ID: IDLemmaCapitals, Description: "Lowercase lemmas that are not proper nouns"},
			clean: func(lex *row.Lexeme) bool {
				if lex.IsProperNoun() {
					return true
				}
				lex.Lemma = lowerOne(lex.Lemma)
				lower(lex.Alternatives)
				return true
			},
		},
		lexemeCleaner{
			info: Info{
				ID:          IDLemmaNonMaltese,
				Description: "Reject lexemes whose lemma is not written in the Maltese alphabet",
				Requires:    []string{IDNewLines},
			},
			clean: func(lex *row.Lexeme) bool {
				return textutil.IsMaltese(lex.Lemma)
			},
			explain: func(lex *row.Lexeme) string {
				return foreignDetail(lex.Lemma)
			},
		},
		lexemeCleaner{
			info: Info{ID: IDPending, Description: "Reject lexemes pending review"},
			clean: func(lex *row.Lexeme) bool {
				return !lex.Pending
			},
		},
	}
}

func builtinWordformCleaners() []Wordform {
	return []Wordform{
		wordformCleaner{
			info: Info{ID: IDNewLines, Description: "Replace line breaks and control characters in text fields with spaces and compose them to NFC"},
			clean: func(wf *row.Wordform, _ *idmap.Map) bool {
				normalizeText(wf.TextFields())
				return true
			},
		},
		wordformCleaner{
			info: Info{ID: IDMissingLexeme, Description: "Reject wordforms whose lexeme was not exported"},
			clean: func(wf *row.Wordform, ids *idmap.Map) bool {
				_, ok := ids.Lookup(wf.LexemeID)
				return ok
			},
		},
		wordformCleaner{
			info: Info{ID: IDSurfaceFormSpaces, Description: "Trim the surface form and collapse internal whitespace; reject blank surface forms"},
			clean: func(wf *row.Wordform, _ *idmap.Map) bool {
				wf.SurfaceForm = textutil.CollapseSpaces(wf.SurfaceForm)
				collapse(wf.Alternatives)
				return wf.SurfaceForm != ""
			},
		},
		wordformCleaner{
			info: Info{ID: IDSurfaceFormCapitals, Description: "Lowercase surface forms"},
			clean: func(wf *row.Wordform, _ *idmap.Map) bool {
				wf.SurfaceForm = lowerOne(wf.SurfaceForm)
				lower(wf.Alternatives)
				return true
			},
		},
		wordformCleaner{
			info: Info{
				ID:          IDSurfaceFormNonMaltese,
				Description: "Reject wordforms whose surface form is not written in the Maltese alphabet",
				Requires:    []string{IDNewLines},
			},
			clean: func(wf *row.Wordform, _ *idmap.Map) bool {
				return textutil.IsMaltese(wf.SurfaceForm)
			},
			explain: func(wf *row.Wordform) string {
				return foreignDetail(wf.SurfaceForm)
			},
		},
		wordformCleaner{
			info: Info{ID: IDPending, Description: "Reject wordforms pending review"},
			clean: func(wf *row.Wordform, _ *idmap.Map) bool {
				return !wf.Pending
			},
		},
	}
}

// normalizeText replaces control characters and composes to NFC, so later
// cleaners and the exporters see the composed Maltese letters.
func normalizeText(fields []*string) {
	for _, f := range fields {
		if textutil.HasControl(*f) {
			*f = textutil.ReplaceControl(*f)
		}
		*f = textutil.ComposeNFC(*f)
	}
}

func collapse(values []string) {
	for i := range values {
		values[i] = textutil.CollapseSpaces(values[i])
	}
}

func lowerOne(value string) string {
	if !textutil.HasUpper(value) {
		return value
	}
	return textutil.LowerMaltese(value)
}

func lower(values []string) {
	for i := range values {
		values[i] = lowerOne(values[i])
	}
}

func foreignDetail(value string) string {
	runes := textutil.ForeignRunes(value)
	if len(runes) == 0 {
		return ""
	}
	return fmt.Sprintf("foreign characters %q", string(runes))
}
