package bank

import (
	"errors"
	"fmt"
	"sync/atomic"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generates record identifiers
type IDGenerator interface {
	NewID() (string, error)
}

// Generates identifiers from a session counter followed by a random suffix.
// Counter guarantees uniqueness inside the session.
type SequenceIDs struct {
	counter atomic.Uint64
}

func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

func (s *SequenceIDs) NewID() (string, error) {
	suffix, err := nanoid.Generate(idAlphabet, 10)
	if err != nil {
		return "", errors.Join(errors.New("failed to generate random id suffix"), err)
	}
	return fmt.Sprintf("q%06d-%s", s.counter.Add(1), suffix), nil
}
