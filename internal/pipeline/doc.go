// Package pipeline streams newline-delimited JSON documents through the
// fix, clean and export stages for one row kind.
//
// Every non-blank line ends in exactly one outcome: skipped at the fix stage,
// skipped by the first cleaner that rejects it, or exported. Listeners are
// notified of each outcome in input order. Row-level problems never abort a
// file; exporter and I/O failures do, after the exporter has been closed.
//
// The lexeme pipeline produces the id map the wordform pipeline consumes.
package pipeline
