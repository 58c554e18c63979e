package history

import "time"

// Run is one invocation of the batch.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	ConfigPath  string
	DryRun      bool
	TargetCount int
	FailedCount int
}

// Entry is the recorded outcome of one target within a run.
type Entry struct {
	RunID       string
	RunStarted  time.Time
	Position    int
	Label       string
	InputPath   string
	OutputPath  string
	Succeeded   bool
	FollowUp    bool
	ErrorKind   string
	Diagnostics string
	Duration    time.Duration
}

// Status renders the entry outcome for tables.
func (e Entry) Status() string {
	switch {
	case !e.Succeeded:
		return "failed"
	case e.FollowUp:
		return "needs subtitle"
	default:
		return "converted"
	}
}
