package results

import (
	"errors"
	"time"

	"collabtopo/internal/persistence"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// RunSpec describes a run at the moment it starts.
type RunSpec struct {
	DataFile   string
	OutputDir  string
	ConfigJSON string
}

// Run is one stored pipeline invocation.
type Run struct {
	ID           string
	Status       Status
	DataFile     string
	OutputDir    string
	ConfigJSON   string
	Processed    int
	Skipped      int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Finished reports whether the run left the running state.
func (r Run) Finished() bool {
	return r.Status != StatusRunning
}

// Duration returns the wall time of a finished run, or zero.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// WindowRecord is the stored outcome of one processed window.
type WindowRecord struct {
	Start       time.Time
	End         time.Time
	Documents   int
	Vertices    int
	Simplices   int
	Betti       persistence.Betti
	Pairs       []persistence.Pair
	DiagramPath string
}

// BettiPoint is one entry of a Betti number time series.
type BettiPoint struct {
	Start     time.Time
	End       time.Time
	Documents int
	Betti     persistence.Betti
}
