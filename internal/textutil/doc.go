// Package textutil provides the text normalization used by the row cleaners.
//
// The primary use cases are:
//   - Replacing embedded line breaks and control characters with spaces
//   - Trimming and single-spacing headword-like fields
//   - Lowercasing with Maltese casing rules
//   - Checking that a word is written in the Maltese alphabet
//
// Alphabet checks compose input to Unicode NFC first, so decomposed letters
// such as "z" followed by a combining dot above count as ż.
package textutil
