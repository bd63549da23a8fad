// Package entropy provides the single pseudorandom stream shared by every
// stage of a generation run. All draws go through one Stream so a run is
// reproducible from its seed as long as the order of draws is unchanged.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Stream is a run-scoped deterministic random source. Not safe for
// concurrent use; a generation run is single threaded.
type Stream struct {
	seed  int64
	rng   *mrand.Rand
	draws uint64
}

// NewStream creates a stream for the given seed. Seed 0 picks a seed from
// crypto/rand; the chosen value is available from Seed.
func NewStream(seed int64) *Stream {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Stream{
		seed: seed,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// Seed returns the effective seed of the stream.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Draws returns how many primitive draws have been taken.
func (s *Stream) Draws() uint64 {
	return s.draws
}

// Float returns a random float64 in [0, 1).
func (s *Stream) Float() float64 {
	s.draws++
	return s.rng.Float64()
}

// Intn returns a random int in [0, n). n must be positive.
func (s *Stream) Intn(n int) int {
	s.draws++
	return s.rng.Intn(n)
}

// Range returns a random float64 in [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// Shuffle pseudo-randomizes the order of n elements.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.draws++
	s.rng.Shuffle(n, swap)
}

// cryptoSeed draws a non-zero seed from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but keep generation running.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
