package main

import (
	"errors"
	"testing"

	"gabraconv/internal/faults"
)

func TestVersionFlag(t *testing.T) {
	out, _, err := runCLI(t, []string{"--version"}, "")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	requireContains(t, out, "version "+version)
}

func TestExitCode(t *testing.T) {
	if got := exitCode(faults.Wrap(faults.ErrConfiguration, "validate", "output", "missing", nil)); got != 2 {
		t.Fatalf("configuration exit code = %d, want 2", got)
	}
	if got := exitCode(faults.Wrap(faults.ErrExtraction, "extract", "unpack", "", errors.New("eof"))); got != 1 {
		t.Fatalf("extraction exit code = %d, want 1", got)
	}
}

func TestCleanersListsCatalogue(t *testing.T) {
	out, _, err := runCLI(t, []string{"cleaners"}, "")
	if err != nil {
		t.Fatalf("cleaners: %v", err)
	}
	for _, want := range []string{"lexemes cleaners", "wordforms cleaners", "lemma_nonmaltese", "missing_lexeme", "new_lines"} {
		requireContains(t, out, want)
	}
}

func TestExportersListsRegistry(t *testing.T) {
	out, _, err := runCLI(t, []string{"exporters"}, "")
	if err != nil {
		t.Fatalf("exporters: %v", err)
	}
	requireContains(t, out, "csv")
	requireContains(t, out, "missing_lexeme")
}
