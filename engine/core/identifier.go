package core

import "github.com/google/uuid"

// NewIdentifier returns a random identifier for scene objects.
func NewIdentifier() string {
	return uuid.NewString()
}

// ShortIdentifier trims an identifier for log lines.
func ShortIdentifier(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
