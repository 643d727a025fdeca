// Package store persists the watch-event audit log.
package store

import (
	"context"

	"github.com/sells-group/dealdesk-cli/internal/model"
)

// EventFilter specifies criteria for listing watch events.
type EventFilter struct {
	DocumentID int64 `json:"document_id,omitempty"` // zero means all documents
	Limit      int   `json:"limit,omitempty"`
}

// Store defines the persistence interface for the watch-event audit log.
type Store interface {
	// RecordEvent appends one observed stage transition.
	RecordEvent(ctx context.Context, ev model.WatchEvent) error
	// ListEvents returns events matching the filter, newest first.
	ListEvents(ctx context.Context, filter EventFilter) ([]model.WatchEvent, error)
	// LastEvent returns the most recent event for a document, or nil.
	LastEvent(ctx context.Context, docID int64) (*model.WatchEvent, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
