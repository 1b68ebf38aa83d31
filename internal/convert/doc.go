// Package convert runs a complete dump conversion: validate the request,
// lock and create the output directory, extract the archive, export lexemes,
// hand their id map to the wordform pass, and report a Summary.
//
// Validation happens before any side effect. A failure after that point
// aborts the run and leaves the partial output in place; every file handle
// and the output lock are released before Run returns.
package convert
