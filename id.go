package action

import "github.com/google/uuid"

// NewID returns a random correlation id for callers that don't have one.
func NewID() string {
	return uuid.NewString()
}
