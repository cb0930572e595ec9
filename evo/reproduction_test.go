package evo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

func TestNormalizeFitness(t *testing.T) {
	got := NormalizeFitness([]float64{1, 2, 3, 4})
	assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 2.0 / 3, 1}, got, 1e-12)

	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, NormalizeFitness([]float64{7, 7, 7, 7}))
	assert.Empty(t, NormalizeFitness(nil))
}

func TestEliteIndices(t *testing.T) {
	scores := []float64{3, 9, 3, 5, 9}
	assert.Equal(t, []int{1, 4, 3}, EliteIndices(scores, 3))
	assert.Equal(t, []int{1, 4, 3, 0, 2}, EliteIndices(scores, 10))
	assert.Empty(t, EliteIndices(scores, 0))
}

func TestTournamentSelect(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.5, 0.9}
	rng := newRand()

	// Sampling everyone makes the winner the best score; ties go to the
	// earlier sample, which is one of the two 0.9 entries.
	for range 20 {
		w := TournamentSelect(scores, len(scores), rng)
		assert.Contains(t, []int{1, 3}, w)
	}

	seen := map[int]bool{}
	for range 200 {
		w := TournamentSelect(scores, 1, rng)
		require.GreaterOrEqual(t, w, 0)
		require.Less(t, w, len(scores))
		seen[w] = true
	}
	assert.Len(t, seen, len(scores), "size 1 samples uniformly")

	// Size larger than the population is capped.
	w := TournamentSelect(scores, 10, rng)
	assert.Contains(t, []int{1, 3}, w)
}

func TestCrossover(t *testing.T) {
	n := 180
	p1 := make(Genome, n)
	p2 := make(Genome, n)
	for i := range p2 {
		p2[i] = 1
	}
	rng := newRand()

	for range 50 {
		c1, c2, err := Crossover(p1, p2, rng)
		require.NoError(t, err)
		require.Len(t, c1, n)
		require.Len(t, c2, n)

		// c1 holds one contiguous block taken from p2; c2 is its complement.
		ones, blocks := 0, 0
		for i := range c1 {
			assert.Equal(t, byte(1), c1[i]^c2[i])
			if c1[i] == 1 {
				ones++
				if i == 0 || c1[i-1] == 0 {
					blocks++
				}
			}
		}
		assert.Equal(t, 1, blocks)
		assert.GreaterOrEqual(t, ones, 1)
		assert.LessOrEqual(t, ones, n-1)
	}

	assert.Equal(t, make(Genome, n), p1, "parents are not modified")
}

func TestCrossoverErrors(t *testing.T) {
	_, _, err := Crossover(Genome{0, 1, 0}, Genome{0, 1}, newRand())
	assert.ErrorIs(t, err, ErrMismatchedParentLength)

	_, _, err = Crossover(Genome{0}, Genome{1}, newRand())
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestMutate(t *testing.T) {
	g := RandomGenome(180, newRand())
	original := g.Clone()

	assert.Equal(t, g, Mutate(g, 0, newRand()))

	mutated := Mutate(g, 0.5, newRand())
	assert.Len(t, mutated, len(g))
	assert.NotEqual(t, g, mutated)
	assert.Equal(t, original, g, "input is not modified")

	// Same seed, same result.
	assert.Equal(t, mutated, Mutate(g, 0.5, newRand()))
}

// scriptedSource feeds fixed values to rand.Rand.Float64.
type scriptedSource struct {
	values []float64
	next   int
}

func (s *scriptedSource) Uint64() uint64 {
	v := s.values[s.next]
	s.next++
	return uint64(v * (1 << 53))
}

func TestMutateNeighbourFlips(t *testing.T) {
	// Per bit: the mutation draw, then the left and right neighbour draws
	// when the bit mutates. Out of range neighbours still consume a draw.
	src := &scriptedSource{values: []float64{
		0.1, 0.1, 0.5,   // bit 0 flips, left is out of range, right stays
		0.9,             // bit 1 untouched
		0.2, 0.29, 0.31, // bit 2 flips and drags bit 1
		0.0, 0.0, 0.0,   // bit 3 flips and flips bit 2 back
	}}
	got := Mutate(make(Genome, 4), 0.5, rand.New(src))
	assert.Equal(t, Genome{1, 1, 0, 1}, got)
	assert.Equal(t, len(src.values), src.next)
}

func TestMutateNeighbourFlipRate(t *testing.T) {
	rng := newRand()
	zeros := make(Genome, 180)
	hit, multi := 0, 0
	for range 5000 {
		flipped := 0
		for _, b := range Mutate(zeros, 0.001, rng) {
			flipped += int(b)
		}
		if flipped > 0 {
			hit++
		}
		if flipped > 1 {
			multi++
		}
	}
	require.Greater(t, hit, 400)
	// A lone mutation drags at least one neighbour about half the time
	// (1 - 0.7^2). Independent double hits alone would give under 10%.
	ratio := float64(multi) / float64(hit)
	assert.InDelta(t, 0.55, ratio, 0.1)
}

func TestMutateSingleBitGenome(t *testing.T) {
	// Neighbours outside the genome are skipped without panicking.
	assert.Equal(t, Genome{1}, Mutate(Genome{0}, 1, newRand()))
}
