package train

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/evo/brain"
	"github.com/baldhumanity/autopark/sim"
)

// Episode is the outcome of one full rollout of a genome.
type Episode struct {
	Fitness    float64
	Steps      int
	Collisions int
	Parked     bool
}

// Evaluator runs rollouts. Every call builds its own World and Brain, so one
// Evaluator may be shared by many goroutines.
type Evaluator struct {
	Obstacles []sim.Rect // added to every fresh world
	Workers   int        // parallel rollouts in EvaluatePopulation, 0 uses GOMAXPROCS
}

// Evaluate scores a genome with a default Evaluator.
func Evaluate(genome evo.Genome) (float64, error) {
	ep, err := (&Evaluator{}).Evaluate(genome)
	return ep.Fitness, err
}

// Evaluate runs one episode: reset, then decide and step until the episode is
// done or MaxEpisodeSteps is reached. Fitness is the sum of step rewards.
func (e *Evaluator) Evaluate(genome evo.Genome) (Episode, error) {
	b, err := brain.New(genome)
	if err != nil {
		return Episode{}, err
	}
	world := e.newWorld()

	total := 0.0
	obs := world.Reset()
	for step := 0; step < sim.MaxEpisodeSteps; step++ {
		res := world.Step(b.Decide(obs.Sensors))
		total += res.Reward
		obs = res.Observation
		if res.Done {
			break
		}
	}

	state := world.State()
	return Episode{
		Fitness:    total,
		Steps:      state.Steps,
		Collisions: state.Collisions,
		Parked:     world.Parked(),
	}, nil
}

func (e *Evaluator) newWorld() *sim.World {
	world := sim.New()
	for _, o := range e.Obstacles {
		world.AddObstacle(o)
	}
	return world
}

// EvaluatePopulation scores all genomes in parallel. The result at index i
// belongs to genomes[i].
func (e *Evaluator) EvaluatePopulation(ctx context.Context, genomes []evo.Genome) ([]Episode, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	episodes := make([]Episode, len(genomes))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, g := range genomes {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ep, err := e.Evaluate(g)
			if err != nil {
				return fmt.Errorf("genome %d: %w", i, err)
			}
			episodes[i] = ep
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return episodes, nil
}

// Fitnesses extracts the fitness of every episode, keeping order.
func Fitnesses(episodes []Episode) []float64 {
	scores := make([]float64, len(episodes))
	for i, ep := range episodes {
		scores[i] = ep.Fitness
	}
	return scores
}
