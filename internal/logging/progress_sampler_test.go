package logging

import "testing"

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		done int64
		want bool
	}{
		{0, true},
		{10, false},
		{25, true},
		{30, false},
		{99, true},
		{100, true},
		{100, false},
		{120, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.done, 100); got != step.want {
			t.Fatalf("ShouldLog(%d) = %v, want %v", step.done, got, step.want)
		}
	}
}

func TestProgressSamplerUnknownTotal(t *testing.T) {
	s := NewProgressSampler(0)
	if s.ShouldLog(5, 0) {
		t.Fatal("unknown total must not log")
	}
	if !s.ShouldLog(5, 100) || s.ShouldLog(9, 100) || !s.ShouldLog(10, 100) {
		t.Fatal("default bucket should be ten percent")
	}
	var nilSampler *ProgressSampler
	if !nilSampler.ShouldLog(1, 0) {
		t.Fatal("nil sampler should always log")
	}
}
