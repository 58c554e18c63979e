package logging

import "strings"

// ProgressSampler keeps log-file progress coarse while the operator display
// updates at two-decimal precision. It emits when the target changes or the
// percentage crosses into a new bucket.
type ProgressSampler struct {
	bucketSize float64
	lastTarget string
	lastBucket int
}

// NewProgressSampler constructs a sampler with the given bucket width in
// percent (default 5%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether a progress event should be logged. Percent can be
// negative to indicate "unknown"; target is trimmed before comparison.
func (s *ProgressSampler) ShouldLog(percent float64, target string) bool {
	if s == nil {
		return true
	}
	target = strings.TrimSpace(target)
	emit := false
	if target != "" && target != s.lastTarget {
		s.lastTarget = target
		s.lastBucket = -1
		emit = true
	}
	if percent >= 0 {
		bucket := int(percent / s.bucketSize)
		if percent >= 100 {
			bucket = int(100 / s.bucketSize)
		}
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	}
	return emit
}

// Reset clears the sampler state before the next target starts.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastTarget = ""
	s.lastBucket = -1
}
