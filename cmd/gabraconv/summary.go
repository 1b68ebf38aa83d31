package main

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gabraconv/internal/convert"
	"gabraconv/internal/pipeline"
)

func renderSummary(s *convert.Summary) string {
	var b strings.Builder
	b.WriteString("Conversion complete\n")
	b.WriteString("Run ID: " + s.RunID + "\n")
	b.WriteString("Output: " + s.OutDir + "\n")
	b.WriteString("Elapsed: " + s.Elapsed.Round(time.Millisecond).String() + "\n")

	counts := tableView{
		headers: []string{"Kind", "Documents", "Rows", "Exported", "Skipped"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
		rows: [][]string{
			countRow(pipeline.LexemeKind, s.LexemeDocuments, s.Lexemes),
			countRow(pipeline.WordformKind, s.WordformDocuments, s.Wordforms),
		},
	}
	b.WriteString(counts.render() + "\n")

	skips := tableView{
		title:   "skipped rows by stage",
		headers: []string{"Kind", "Stage", "Rows"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
	}
	skips.rows = appendSkipRows(skips.rows, pipeline.LexemeKind, s.Lexemes)
	skips.rows = appendSkipRows(skips.rows, pipeline.WordformKind, s.Wordforms)
	if len(skips.rows) > 0 {
		b.WriteString(skips.render() + "\n")
	}

	b.WriteString("Files:\n")
	for _, file := range s.Files {
		name := file
		if rel, err := filepath.Rel(s.OutDir, file); err == nil {
			name = rel
		}
		line := "  " + name
		if sum := s.Checksums[file]; sum != "" {
			line += "  sha256:" + sum
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func countRow(kind string, documents int, stats pipeline.Stats) []string {
	return []string{
		kind,
		strconv.Itoa(documents),
		strconv.Itoa(stats.Read),
		strconv.Itoa(stats.Exported),
		strconv.Itoa(stats.Skipped),
	}
}

func appendSkipRows(rows [][]string, kind string, stats pipeline.Stats) [][]string {
	for _, stage := range stats.Stages() {
		rows = append(rows, []string{kind, stage, strconv.Itoa(stats.SkippedByStage[stage])})
	}
	return rows
}
