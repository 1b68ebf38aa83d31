// Package idmap maps original lexeme ids to the export-local ordinals assigned
// by the lexeme exporter.
//
// A Builder is written by exactly one exporter during the lexeme pass. Freeze
// hands the result off as an immutable Map for the wordform pass.
package idmap

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when an original id is assigned twice.
var ErrDuplicateID = errors.New("duplicate original id")

// Builder issues sequential 1-based export ids.
type Builder struct {
	ids    map[string]int
	order  []string
	frozen bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]int)}
}

// Assign records originalID and returns its export id.
func (b *Builder) Assign(originalID string) (int, error) {
	if b.frozen {
		return 0, errors.New("id map already frozen")
	}
	if existing, ok := b.ids[originalID]; ok {
		return 0, fmt.Errorf("%w %q (export id %d)", ErrDuplicateID, originalID, existing)
	}
	next := len(b.order) + 1
	b.ids[originalID] = next
	b.order = append(b.order, originalID)
	return next, nil
}

// Freeze returns the immutable map. Later calls to Assign fail.
func (b *Builder) Freeze() *Map {
	b.frozen = true
	return &Map{ids: b.ids, order: b.order}
}

// Map is a read-only original id to export id mapping.
type Map struct {
	ids   map[string]int
	order []string
}

// Lookup returns the export id of originalID.
func (m *Map) Lookup(originalID string) (int, bool) {
	if m == nil {
		return 0, false
	}
	id, ok := m.ids[originalID]
	return id, ok
}

// Len returns the number of exported lexemes.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Keys returns the original ids in export order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}
