package evo

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
)

// NeighborFlipProbability is the chance that a bit adjacent to a mutated bit flips as well.
const NeighborFlipProbability = 0.3

// NormalizeFitness min-max scales scores into [0,1].
// When every score is equal each member gets an equal share 1/N.
func NormalizeFitness(scores []float64) []float64 {
	normalized := make([]float64, len(scores))
	if len(scores) == 0 {
		return normalized
	}
	minFitness := MinFloat(scores)
	maxFitness := MaxFloat(scores)
	if maxFitness == minFitness {
		share := 1.0 / float64(len(scores))
		for i := range normalized {
			normalized[i] = share
		}
		return normalized
	}
	fitnessRange := maxFitness - minFitness
	for i, f := range scores {
		normalized[i] = (f - minFitness) / fitnessRange
	}
	return normalized
}

// EliteIndices returns the indices of the top n scores in descending order.
// Equal scores keep population order.
func EliteIndices(scores []float64, n int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})
	return indices[:min(n, len(indices))]
}

// TournamentSelect samples size distinct indices without replacement and returns
// the one with the highest score. Ties go to the first sampled index.
func TournamentSelect(scores []float64, size int, rng *rand.Rand) int {
	n := len(scores)
	size = max(1, min(size, n))

	// Partial Fisher-Yates: the first size entries become the sample.
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < size; i++ {
		j := i + rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	winner := pool[0]
	for _, idx := range pool[1:size] {
		if scores[idx] > scores[winner] {
			winner = idx
		}
	}
	return winner
}

// Crossover performs two-point crossover and returns both complementary children.
func Crossover(parent1, parent2 Genome, rng *rand.Rand) (Genome, Genome, error) {
	if len(parent1) != len(parent2) {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrMismatchedParentLength, len(parent1), len(parent2))
	}
	n := len(parent1)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: crossover needs at least 2 bits, got %d", ErrInvalidLength, n)
	}

	// Two distinct points in [0, n), ascending.
	point1 := rng.IntN(n)
	point2 := rng.IntN(n - 1)
	if point2 >= point1 {
		point2++
	}
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child1 := slices.Concat(parent1[:point1], parent2[point1:point2], parent1[point2:])
	child2 := slices.Concat(parent2[:point1], parent1[point1:point2], parent2[point2:])
	return child1, child2, nil
}

// Mutate returns a copy of genome where every bit flips with probability rate.
// Each flip also draws once for the previous and once for the next neighbour;
// a neighbour flips when its draw succeeds and it lies inside the genome.
func Mutate(genome Genome, rate float64, rng *rand.Rand) Genome {
	mutated := genome.Clone()
	last := len(mutated) - 1
	for i := range mutated {
		if rng.Float64() >= rate {
			continue
		}
		mutated[i] ^= 1
		if rng.Float64() < NeighborFlipProbability && i > 0 {
			mutated[i-1] ^= 1
		}
		if rng.Float64() < NeighborFlipProbability && i < last {
			mutated[i+1] ^= 1
		}
	}
	return mutated
}
