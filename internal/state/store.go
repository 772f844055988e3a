// Package state persists run history with database migrations.
//
// Every pipeline run is recorded with its input sizes, join diagnostics,
// and headline statistics, so successive analyses of a survey can be
// compared without re-reading the output files.
package state

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID          string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time

	// Policy is the join policy the run executed with.
	Policy string

	// Input row counts.
	Households int
	Expenses   int
	Products   int

	// Join diagnostics from the share aggregation.
	DroppedNoProduct   int
	DroppedNoHousehold int

	// Headline statistics.
	Gini     float64
	Bottom50 float64

	Error string
}

// Result carries the figures recorded when a run completes successfully.
type Result struct {
	Households         int
	Expenses           int
	Products           int
	DroppedNoProduct   int
	DroppedNoHousehold int
	Gini               float64
	Bottom50           float64
}

// Store records and lists pipeline runs.
type Store interface {
	Open(path string) error
	Migrate() error
	Close() error

	BeginRun(policy string) (*Run, error)
	CompleteRun(id string, res Result) error
	FailRun(id string, errMsg string) error
	ListRuns(limit int) ([]Run, error)
}
