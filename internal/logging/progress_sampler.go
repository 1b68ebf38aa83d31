package logging

// ProgressSampler thins progress logs for one input stream to one record per
// percentage bucket of bytes consumed.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
}

// NewProgressSampler returns a sampler with buckets of bucketSize percent.
// Non-positive sizes fall back to 10.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether done of total enters a new bucket. An unknown
// (non-positive) total never logs; a nil sampler always does.
func (s *ProgressSampler) ShouldLog(done, total int64) bool {
	if s == nil {
		return true
	}
	if total <= 0 {
		return false
	}
	percent := min(float64(done)*100/float64(total), 100)
	bucket := int(percent / s.bucketSize)
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}
