package ingest

import (
	"time"

	"bookshelf/internal/catalog"
)

const (
	StatusRunning         = "RUNNING"
	StatusCompleted       = "COMPLETED"
	StatusCapacityReached = "CAPACITY_REACHED"
	StatusFailed          = "FAILED"
)

// Rejected is a record that failed validation.
type Rejected struct {
	Record catalog.Record
	Errors []catalog.FieldError
}

// Run summarises one load of a source into a shelf.
type Run struct {
	Source     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string // RUNNING, COMPLETED, CAPACITY_REACHED, FAILED
	Fetched    int
	Added      int
	Rejected   []Rejected
	Skipped    int // valid records left out once the shelf was full
	Error      string
}
