package ids

import "github.com/google/uuid"

// Generator produces unique identifiers and can be mocked for testing
type Generator interface {
	// NewID returns a new globally unique identifier
	NewID() string
}

// UUIDGenerator implements Generator with random (version 4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random UUID string, e.g. "9b2c6f0e-3d1a-4c55-8a57-2f0f8e3c1d42"
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
