package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "Movie (1999)") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSampler_TargetChange(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(0, "Alpha (2001)") {
		t.Error("first target should log")
	}
	if s.ShouldLog(0, "Alpha (2001)") {
		t.Error("same target and percent should not log again")
	}
	if !s.ShouldLog(0, "Beta (2002)") {
		t.Error("different target should log")
	}
	if s.lastTarget != "Beta (2002)" {
		t.Errorf("lastTarget = %q, want Beta (2002)", s.lastTarget)
	}
}

func TestProgressSampler_PercentBuckets(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(0, "T") {
		t.Error("0% should log")
	}
	if s.ShouldLog(3, "T") {
		t.Error("3% should not log (same bucket)")
	}
	if !s.ShouldLog(5, "T") {
		t.Error("5% should log (new bucket)")
	}
	if s.ShouldLog(7.5, "T") {
		t.Error("7.5% should not log (same bucket)")
	}
	if !s.ShouldLog(100, "T") {
		t.Error("100% should log")
	}
	if s.ShouldLog(104, "T") {
		t.Error("values over 100% share the final bucket")
	}
}

func TestProgressSampler_NegativePercent(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(-1, "Unknown") {
		t.Error("first call should log because the target changed")
	}
	if s.ShouldLog(-1, "Unknown") {
		t.Error("negative percent should not trigger bucket logging")
	}
}

func TestProgressSampler_Reset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(50, "T")
	s.Reset()
	if s.lastTarget != "" || s.lastBucket != -1 {
		t.Fatalf("unexpected state after reset: %+v", s)
	}
	if !s.ShouldLog(50, "T") {
		t.Error("should log after reset")
	}
}
