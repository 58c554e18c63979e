package batch

import (
	"time"

	"tvconvert/internal/naming"
)

// Result is the outcome of one target.
type Result struct {
	Position    int
	Target      naming.Target
	Succeeded   bool
	OutputPath  string
	SidecarPath string
	Diagnostics string
	Duration    time.Duration
	// FollowUp marks targets converted without any primary subtitle.
	FollowUp bool
	// Command is the rendered engine command line, kept for dry runs.
	Command string
	Err     error
}

// Report collects every result of a run in target order.
type Report struct {
	RunID     string
	DryRun    bool
	Results   []Result
	FollowUps []naming.Target
}

// Failed returns the number of failed targets.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Succeeded {
			n++
		}
	}
	return n
}

// Failures returns the failed results in target order.
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Succeeded {
			failed = append(failed, res)
		}
	}
	return failed
}
