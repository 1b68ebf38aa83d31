// Package archive unpacks a Ġabra mongodump archive and decodes its BSON
// collections into newline-delimited JSON.
//
// Extract expands a .tar.gz into a work directory and locates the lexemes
// and wordforms collections together with their optional metadata sidecars.
// DecodeCollection streams one collection document by document, normalizing
// BSON-only types to JSON strings and numbers while preserving key order.
// Every failure wraps ErrExtraction.
package archive
