package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lineBreakReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"\u2028", " ",
	"\u2029", " ",
)

// maltese is the BCP 47 tag used for casing.
var maltese = language.Make("mt")

// ReplaceControl replaces line breaks, tabs and other control characters with a single space each.
func ReplaceControl(value string) string {
	value = lineBreakReplacer.Replace(value)
	if strings.IndexFunc(value, unicode.IsControl) < 0 {
		return value
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
}

// HasControl reports whether value contains anything ReplaceControl rewrites.
func HasControl(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
	}) >= 0
}

// ComposeNFC returns value in Unicode normalization form C.
func ComposeNFC(value string) string {
	return norm.NFC.String(value)
}

// CollapseSpaces trims value and joins its whitespace-separated words with single spaces.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// LowerMaltese lowercases value using Maltese casing rules.
func LowerMaltese(value string) string {
	return cases.Lower(maltese).String(value)
}

// HasUpper reports whether value contains an uppercase or titlecase letter.
func HasUpper(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsUpper(r) || unicode.IsTitle(r)
	}) >= 0
}
