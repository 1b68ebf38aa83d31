package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// malteseLetters lists the lowercase letters of the Maltese alphabet plus the
// grave-accented vowels used on stressed final syllables. The digraphs għ and
// ie are covered by their component letters.
const malteseLetters = "abċdefġghħijklmnopqrstuvwxżzàèìòù"

// wordPunctuation may appear inside Maltese headwords.
const wordPunctuation = " '’-"

// IsMaltese reports whether every rune of value, after NFC composition, is a
// Maltese letter in either case or allowed word punctuation.
func IsMaltese(value string) bool {
	value = norm.NFC.String(value)
	if value == "" {
		return false
	}
	for _, r := range value {
		if r == utf8.RuneError {
			return false
		}
		if strings.ContainsRune(wordPunctuation, r) {
			continue
		}
		if !strings.ContainsRune(malteseLetters, lowerRune(r)) {
			return false
		}
	}
	return true
}

// ForeignRunes returns the distinct runes of value that fail IsMaltese, in order of appearance.
func ForeignRunes(value string) []rune {
	value = norm.NFC.String(value)
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range value {
		if strings.ContainsRune(wordPunctuation, r) || strings.ContainsRune(malteseLetters, lowerRune(r)) {
			continue
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func lowerRune(r rune) rune {
	lowered := []rune(LowerMaltese(string(r)))
	if len(lowered) != 1 {
		return r
	}
	return lowered[0]
}
