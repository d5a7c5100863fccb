package domain

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

// IDLength is the length of generated task and category identifiers.
const IDLength = 21

// IDGenerator produces opaque unique identifiers.
type IDGenerator func() string

// NewIDGenerator returns a URL-safe nanoid generator.
func NewIDGenerator() (IDGenerator, error) {
	gen, err := nanoid.Standard(IDLength)
	if err != nil {
		return nil, fmt.Errorf("init id generator: %w", err)
	}
	return gen, nil
}
