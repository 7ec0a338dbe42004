package pkguid

import (
	"log/slog"

	"github.com/google/uuid"
)

// UUID generates time-ordered UUIDv7 strings, so toasts sort by creation.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7. If the clock sequence cannot be read it
// falls back to a random v4 rather than panicking mid-request.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Warn("uuidv7 unavailable, falling back to v4", "error", err)
		return uuid.NewString()
	}
	return id.String()
}
