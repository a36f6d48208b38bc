// Package random builds the per-player random sources used for secret
// numbers and message picks.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Source hands out independent *rand.Rand values. A non-zero base seed makes
// the sequence of sources reproducible; zero seeds each one from crypto/rand.
type Source struct {
	base uint64
	n    atomic.Uint64
}

// NewSource returns a Source for the given base seed (0 = crypto seeded).
func NewSource(base uint64) *Source {
	return &Source{base: base}
}

// New returns a fresh generator. Each generator must stay with one owner;
// *rand.Rand is not safe for concurrent use.
func (s *Source) New() (*rand.Rand, error) {
	if s.base != 0 {
		i := s.n.Add(1)
		return rand.New(rand.NewPCG(s.base, i)), nil
	}
	a, err := NewSeed()
	if err != nil {
		return nil, err
	}
	b, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(a, b)), nil
}
