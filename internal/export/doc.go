// Package export writes accepted rows to the relational CSV layout.
//
// Each exporter owns a main table with one row per entity, keyed by a
// sequential export-local id, plus one side table per multi-valued field
// carrying a foreign key back to the owner. The lexeme exporter records the
// original id of every row it writes and hands the completed mapping to the
// wordform exporter through IDMap once it is closed.
//
// Exporters are created fresh for each run. Create refuses to overwrite an
// existing output file and every file opened by Create is released by Close,
// including when a later file fails to open.
package export
