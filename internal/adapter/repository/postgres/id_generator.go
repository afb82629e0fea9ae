package postgres

import (
	"github.com/google/uuid"
)

// UUIDGenerator generates UUID transfer identifiers.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate generates a new UUID.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
