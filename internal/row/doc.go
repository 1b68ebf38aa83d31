// Package row defines the typed lexeme and wordform rows and the fixers that
// reconcile raw decoded documents with the canonical Ġabra schema.
//
// Processing a line is split in three steps: Decode turns the JSON text into a
// loosely typed Raw map, FixLexeme/FixWordform repair the known divergences
// in place, and NewLexeme/NewWordform construct the strongly typed row,
// rejecting anything the fixer could not bring into shape. Every failure is
// an *UnfixableError so the pipeline can log it under the fix stage.
//
// Fixers are idempotent: running one on an already fixed document changes
// nothing.
package row
