package engine

import "github.com/google/uuid"

// generateID creates a random session ID for log correlation.
func generateID() string {
	return uuid.NewString()
}
