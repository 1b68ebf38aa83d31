package idmap_test

import (
	"errors"
	"testing"

	"gabraconv/internal/idmap"
)

func TestAssignSequential(t *testing.T) {
	b := idmap.NewBuilder()
	for i, id := range []string{"x", "a", "m"} {
		got, err := b.Assign(id)
		if err != nil {
			t.Fatalf("Assign(%q) returned error: %v", id, err)
		}
		if got != i+1 {
			t.Fatalf("Assign(%q) = %d, want %d", id, got, i+1)
		}
	}
	m := b.Freeze()
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "x" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if id, ok := m.Lookup("a"); !ok || id != 2 {
		t.Fatalf("Lookup(a) = %d, %v", id, ok)
	}
	if _, ok := m.Lookup("missing"); ok {
		t.Fatal("expected missing id to be absent")
	}
}

func TestAssignDuplicate(t *testing.T) {
	b := idmap.NewBuilder()
	if _, err := b.Assign("x"); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if _, err := b.Assign("x"); !errors.Is(err, idmap.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if got, err := b.Assign("y"); err != nil || got != 2 {
		t.Fatalf("duplicate must not consume an id, Assign(y) = %d, %v", got, err)
	}
}

func TestFrozenMapIsImmutable(t *testing.T) {
	b := idmap.NewBuilder()
	_, _ = b.Assign("x")
	m := b.Freeze()
	if _, err := b.Assign("y"); err == nil {
		t.Fatal("expected Assign after Freeze to fail")
	}
	keys := m.Keys()
	keys[0] = "mutated"
	if _, ok := m.Lookup("x"); !ok || m.Keys()[0] != "x" {
		t.Fatal("Keys must return a copy")
	}
}

func TestNilMap(t *testing.T) {
	var m *idmap.Map
	if m.Len() != 0 || m.Keys() != nil {
		t.Fatal("nil map should be empty")
	}
	if _, ok := m.Lookup("x"); ok {
		t.Fatal("nil map lookup should miss")
	}
}
