package store

import (
	"time"

	"github.com/geopulse/timeline/internal/timeline"
)

// DB is the database storage interface.
type DB interface {
	// PutRecords stores records, replacing those with the same id
	PutRecords(records []timeline.Record) (int, error)
	// GetRecords returns the records overlapping [start, end)
	GetRecords(start, end time.Time) ([]timeline.Record, error)
	// DeleteRecords deletes one or more records by id
	DeleteRecords(ids []string) error
	// FirstStart returns when the earliest stored record began
	FirstStart() (time.Time, error)
	// Count returns the number of stored records
	Count() (int, error)
	// Close ends the database connection
	Close() error
}

var _ DB = (*Client)(nil)
