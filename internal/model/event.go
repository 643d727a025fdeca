package model

import "time"

// WatchEvent is one recorded pipeline stage transition for a watched
// document. The audit log keeps these so past sessions stay inspectable;
// the live poller itself never reads them back.
type WatchEvent struct {
	ID         string    `json:"id"`
	DocumentID int64     `json:"document_id"`
	Label      string    `json:"label"`
	Terminal   bool      `json:"terminal"`
	Outcome    string    `json:"outcome,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}
