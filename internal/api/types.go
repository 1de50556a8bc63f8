package api

import "time"

// Dweet is one record held by the board for a thing.
type Dweet struct {
	Thing       string         `json:"thing"`
	Created     time.Time      `json:"created"`
	Content     map[string]any `json:"content"`
	Transaction string         `json:"transaction,omitempty"`
}
