// ABOUTME: Note identity generation.
// ABOUTME: Random UUIDs with a pseudo-random fallback when crypto randomness fails.

package models

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

var newRandomUUID = uuid.NewRandom

// NewID returns an opaque, collection-unique note id.
func NewID() string {
	id, err := newRandomUUID()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

func fallbackID() string {
	return fmt.Sprintf("note-%016x%016x", rand.Uint64(), rand.Uint64())
}
