package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"gabraconv/internal/convert"
	"gabraconv/internal/faults"
	"gabraconv/internal/fileutil"
	"gabraconv/internal/pipeline"
	"gabraconv/internal/testsupport"
)

func writeDump(t *testing.T) string {
	t.Helper()
	lexemes := []bson.D{
		{{Key: "_id", Value: "L1"}, {Key: "lemma", Value: "kelb"}, {Key: "pos", Value: "NOUN"}},
		{{Key: "_id", Value: "L2"}, {Key: "lemma", Value: "PENDING"}, {Key: "status", Value: "pending"}},
	}
	wordforms := []bson.D{
		{{Key: "_id", Value: "W1"}, {Key: "lexeme_id", Value: "L1"}, {Key: "surface_form", Value: "klieb"}},
		{{Key: "_id", Value: "W2"}, {Key: "lexeme_id", Value: "L2"}, {Key: "surface_form", Value: "pendings"}},
	}
	return testsupport.DumpArchive(t, filepath.Join(t.TempDir(), "gabra.tar.gz"), lexemes, wordforms)
}

func TestConvertCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLexemeCleaners("pending"))
	configPath := writeTestConfig(t, cfg)
	dump := writeDump(t)

	out, _, err := runCLI(t, []string{"convert", "--dump", dump, "--log-level", "error"}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Conversion complete")
	requireContains(t, out, "Output: "+cfg.Paths.OutDir)
	requireContains(t, out, "skipped rows by stage")
	requireContains(t, out, "lexemes_skipped.csv")
	sum, err := fileutil.HashFile(filepath.Join(cfg.Paths.OutDir, "lexemes.csv"))
	if err != nil {
		t.Fatalf("hash lexemes.csv: %v", err)
	}
	requireContains(t, out, "lexemes.csv  sha256:"+sum)
	if strings.Contains(out, "Rows exported") {
		t.Fatalf("progress must not be rendered to a non-terminal: %q", out)
	}

	lexemes := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutDir, "lexemes.csv"))
	requireContains(t, lexemes, "kelb")
	if strings.Contains(lexemes, "PENDING") {
		t.Fatalf("pending lexeme exported: %q", lexemes)
	}
	wordforms := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutDir, "wordforms.csv"))
	requireContains(t, wordforms, "klieb")
	if strings.Contains(wordforms, "pendings") {
		t.Fatalf("wordform of skipped lexeme exported: %q", wordforms)
	}
}

func TestConvertFlagsOverrideConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	out := filepath.Join(t.TempDir(), "flagged")

	_, _, err := runCLI(t, []string{
		"convert", "--dump", writeDump(t), "--out", out, "--log-level", "error",
		"--lexeme-cleaners", "new_lines,pending",
	}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "lexemes.csv")); err != nil {
		t.Fatalf("expected output under --out: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.OutDir); !os.IsNotExist(err) {
		t.Fatalf("configured out dir must stay untouched, stat err = %v", err)
	}
	requireContains(t, testsupport.ReadFile(t, filepath.Join(out, "lexemes_skipped.csv")), "pending")
}

func TestConvertConfigurationErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	dump := writeDump(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown cleaner", []string{"--lexeme-cleaners", "nope"}},
		{"unknown exporter", []string{"--wordform-exporter", "sqlite"}},
		{"missing requirement", []string{"--wordform-cleaners", "pending"}},
		{"wrong suffix", []string{"--dump", filepath.Join(t.TempDir(), "gabra.zip")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"convert", "--dump", dump}, tt.args...)
			_, _, err := runCLI(t, args, configPath)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if got := faults.Category(err); got != "configuration" {
				t.Fatalf("category = %q, want configuration (%v)", got, err)
			}
			if _, err := os.Stat(cfg.Paths.OutDir); !os.IsNotExist(err) {
				t.Fatalf("out dir created on configuration error, stat err = %v", err)
			}
			if _, err := os.Stat(convert.LockPath(cfg.Paths.OutDir)); !os.IsNotExist(err) {
				t.Fatalf("lock file left behind, stat err = %v", err)
			}
		})
	}
}

func TestConvertCheckOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	out, _, err := runCLI(t, []string{"convert", "--dump", writeDump(t), "--check"}, writeTestConfig(t, cfg))
	if err != nil {
		t.Fatalf("convert --check: %v", err)
	}
	requireContains(t, out, "is valid")
	if _, err := os.Stat(cfg.Paths.OutDir); !os.IsNotExist(err) {
		t.Fatalf("--check must not create the out dir, stat err = %v", err)
	}
}

func TestConvertRequiresDump(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, _, err := runCLI(t, []string{"convert"}, writeTestConfig(t, cfg))
	if err == nil || !strings.Contains(err.Error(), "dump") {
		t.Fatalf("expected missing --dump error, got %v", err)
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	quiet := newProgressPrinter(&buf, false)
	quiet.ExportStarted(pipeline.LexemeKind)
	quiet.RowExported(pipeline.LexemeKind, 1)
	if buf.Len() != 0 {
		t.Fatalf("quiet printer wrote %q", buf.String())
	}

	live := newProgressPrinter(&buf, true)
	live.ExportStarted(pipeline.LexemeKind)
	live.RowExported(pipeline.LexemeKind, 1)
	live.RowExported(pipeline.LexemeKind, 2)
	live.ExportFinished(pipeline.LexemeKind, pipeline.Stats{Exported: 2, Skipped: 1})
	want := "Exporting lexemes\n\r > Rows exported: 1\r > Rows exported: 2\r > Rows exported: 2, skipped: 1\n"
	if buf.String() != want {
		t.Fatalf("progress = %q, want %q", buf.String(), want)
	}

	if shouldRenderProgress(&buf) {
		t.Fatal("a buffer is not a terminal")
	}
}
