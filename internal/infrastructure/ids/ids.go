// Package ids generates unique IDs for transaction records.
package ids

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs, which sort lexicographically
// by creation time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
