package pipeline

import (
	"maps"
	"slices"
)

// StageFix is the skip stage for documents that could not be coerced into a row.
const StageFix = "fix"

// Stats counts the outcomes of one file.
type Stats struct {
	Read     int
	Exported int
	Skipped  int
	// SkippedByStage counts skips per stage: StageFix or a cleaner id.
	SkippedByStage map[string]int
	Bytes          int64
}

func (s *Stats) skip(stage string) {
	s.Skipped++
	if s.SkippedByStage == nil {
		s.SkippedByStage = make(map[string]int)
	}
	s.SkippedByStage[stage]++
}

// Stages returns the stages with at least one skip, sorted.
func (s Stats) Stages() []string {
	return slices.Sorted(maps.Keys(s.SkippedByStage))
}
