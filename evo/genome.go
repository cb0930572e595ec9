package evo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	// ErrInvalidLength is returned when a genome or gene chunk does not have the required size.
	ErrInvalidLength = errors.New("invalid bit length")
	// ErrInvalidToken is returned when a serialized genome contains something other than 0 or 1.
	ErrInvalidToken = errors.New("invalid genome token")
	// ErrMismatchedParentLength is returned by Crossover when the parents differ in length.
	ErrMismatchedParentLength = errors.New("parents must have the same length")
	// ErrScoreCount is returned by Evolve when scores are not aligned with the population.
	ErrScoreCount = errors.New("fitness scores do not match population size")
)

// Genome is a fixed-length sequence of bits, one byte (0 or 1) per bit.
// Operators never modify a genome in place; they return new slices.
type Genome []byte

// RandomGenome creates a genome of the given length with uniformly random bits.
func RandomGenome(length int, rng *rand.Rand) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = byte(rng.IntN(2))
	}
	return g
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// String serializes the genome as comma separated 0/1 tokens, e.g. "0,1,1,0".
func (g Genome) String() string {
	var sb strings.Builder
	sb.Grow(len(g) * 2)
	for i, b := range g {
		if i > 0 {
			sb.WriteByte(',')
		}
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseGenome parses the comma separated form produced by String.
// The token count must equal length exactly.
func ParseGenome(s string, length int) (Genome, error) {
	tokens := strings.Split(strings.TrimSpace(s), ",")
	if len(tokens) != length {
		return nil, fmt.Errorf("%w: expected %d tokens, got %d", ErrInvalidLength, length, len(tokens))
	}
	g := make(Genome, length)
	for i, tok := range tokens {
		switch strings.TrimSpace(tok) {
		case "0":
			g[i] = 0
		case "1":
			g[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidToken, tok, i)
		}
	}
	return g, nil
}
