// Package types holds the service model shared by the loader, the
// documenters and the render store.
package types

import "time"

// Render is one stored, versioned rendering of an operation's docs.
type Render struct {
	ID        int64     `json:"id"`
	Service   string    `json:"service"`
	Operation string    `json:"operation"`
	Version   int       `json:"version"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
