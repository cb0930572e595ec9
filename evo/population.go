package evo

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Population holds the state of the evolutionary process.
// Genomes and the scores passed to Evolve are paired by index.
type Population struct {
	Config      *GAConfig
	Genomes     []Genome // Current generation
	Generation  int
	BestGenome  Genome // Best genome evaluated so far
	BestFitness float64

	src *rand.PCG
	rng *rand.Rand
}

// Stats summarizes the population for reporting.
type Stats struct {
	Generation     int
	BestFitness    float64
	PopulationSize int
	MutationRate   float64
	EliteSize      int
}

// NewPopulation creates a population of uniformly random genomes.
func NewPopulation(config *GAConfig) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed1, seed2 := config.Seed, config.Seed
	if config.Seed == 0 {
		seed1, seed2 = rand.Uint64(), rand.Uint64()
	}
	src := rand.NewPCG(seed1, seed2)

	p := &Population{
		Config:      config,
		BestFitness: math.Inf(-1),
		src:         src,
		rng:         rand.New(src),
	}
	p.Genomes = make([]Genome, config.PopSize)
	for i := range p.Genomes {
		p.Genomes[i] = RandomGenome(config.GenomeLength, p.rng)
	}
	return p, nil
}

// NewPopulationFrom builds a population around existing genomes, e.g. ones
// loaded from disk. Every genome must have the configured length.
func NewPopulationFrom(config *GAConfig, genomes []Genome) (*Population, error) {
	p, err := NewPopulation(config)
	if err != nil {
		return nil, err
	}
	if len(genomes) != config.PopSize {
		return nil, fmt.Errorf("population needs %d genomes, got %d", config.PopSize, len(genomes))
	}
	for i, g := range genomes {
		if len(g) != config.GenomeLength {
			return nil, fmt.Errorf("genome %d: %w: expected %d bits, got %d", i, ErrInvalidLength, config.GenomeLength, len(g))
		}
		p.Genomes[i] = g.Clone()
	}
	return p, nil
}

// Evolve produces the next generation from fitness scores aligned with Genomes.
// It returns the new population and the new generation number.
func (p *Population) Evolve(fitnessScores []float64) ([]Genome, int, error) {
	if len(fitnessScores) != len(p.Genomes) {
		return nil, p.Generation, fmt.Errorf("%w: got %d scores for %d genomes", ErrScoreCount, len(fitnessScores), len(p.Genomes))
	}
	p.trackBest(fitnessScores)

	normalized := NormalizeFitness(fitnessScores)
	popSize := p.Config.PopSize
	newPopulation := make([]Genome, 0, popSize)

	// Elites are transferred unchanged.
	for _, idx := range EliteIndices(fitnessScores, p.Config.EliteSize) {
		newPopulation = append(newPopulation, p.Genomes[idx].Clone())
	}

	for len(newPopulation) < popSize {
		parent1 := p.Genomes[TournamentSelect(normalized, p.Config.TournamentSize, p.rng)]
		parent2 := p.Genomes[TournamentSelect(normalized, p.Config.TournamentSize, p.rng)]

		child1, child2, err := Crossover(parent1, parent2, p.rng)
		if err != nil {
			return nil, p.Generation, fmt.Errorf("crossover failed in generation %d: %w", p.Generation, err)
		}

		newPopulation = append(newPopulation, Mutate(child1, p.Config.MutationRate, p.rng))
		if len(newPopulation) < popSize {
			newPopulation = append(newPopulation, Mutate(child2, p.Config.MutationRate, p.rng))
		}
	}

	p.Genomes = newPopulation
	p.Generation++
	return p.Genomes, p.Generation, nil
}

// trackBest remembers the best genome among the scored generation.
func (p *Population) trackBest(fitnessScores []float64) {
	idx := ArgMax(fitnessScores)
	if idx < 0 {
		return
	}
	if p.BestGenome == nil || fitnessScores[idx] > p.BestFitness {
		p.BestFitness = fitnessScores[idx]
		p.BestGenome = p.Genomes[idx].Clone()
	}
}

// Best returns the best genome evaluated so far and its fitness.
// The genome is nil before the first call to Evolve.
func (p *Population) Best() (Genome, float64) {
	return p.BestGenome.Clone(), p.BestFitness
}

// Stats reports the current state of the population.
func (p *Population) Stats() Stats {
	return Stats{
		Generation:     p.Generation,
		BestFitness:    p.BestFitness,
		PopulationSize: len(p.Genomes),
		MutationRate:   p.Config.MutationRate,
		EliteSize:      p.Config.EliteSize,
	}
}
