// Package brain builds the phenotype of a genome: a linear controller that turns
// eight ray sensor readings into discrete engine and steering actions.
package brain

import (
	"fmt"
	"math"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/sim"
)

// GenomeBits is the genome length a Brain is built from: one vector per channel.
const GenomeBits = 2 * VectorBits

// ErrInvalidGenomeLength is returned by New for genomes that are not GenomeBits long.
var ErrInvalidGenomeLength = fmt.Errorf("%w: genome must be %d bits", evo.ErrInvalidLength, GenomeBits)

const (
	maxSensor     = 100.0
	maxSignal     = 100.0
	maxExponent   = 500.0
	lowThreshold  = 0.33
	highThreshold = 0.66
)

// Brain is a single affine layer per output channel.
// Coefficients 0..7 weight the sensors, coefficient 8 is the bias.
type Brain struct {
	genome             evo.Genome
	engineCoefficients []float64
	wheelCoefficients  []float64
}

// New decodes a 180-bit genome into a Brain. The first half drives the engine,
// the second half the wheels.
func New(genome evo.Genome) (*Brain, error) {
	if len(genome) != GenomeBits {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidGenomeLength, len(genome))
	}
	engine, err := DecodeVector(genome[:VectorBits])
	if err != nil {
		return nil, fmt.Errorf("failed to decode engine coefficients: %w", err)
	}
	wheels, err := DecodeVector(genome[VectorBits:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode wheel coefficients: %w", err)
	}
	return &Brain{
		genome:             genome.Clone(),
		engineCoefficients: engine,
		wheelCoefficients:  wheels,
	}, nil
}

// Decide maps sensor readings to an action. It has no side effects.
func (b *Brain) Decide(sensors [sim.SensorCount]float64) sim.Action {
	for i, s := range sensors {
		sensors[i] = evo.Clamp(s, 0, maxSensor)
	}
	engineSignal := evo.Clamp(affine(b.engineCoefficients, sensors), -maxSignal, maxSignal)
	wheelSignal := evo.Clamp(affine(b.wheelCoefficients, sensors), -maxSignal, maxSignal)
	return sim.Action{
		Engine: signalToAction(engineSignal),
		Wheels: signalToAction(wheelSignal),
	}
}

func affine(coefficients []float64, sensors [sim.SensorCount]float64) float64 {
	signal := coefficients[sim.SensorCount]
	for i, s := range sensors {
		signal += coefficients[i] * s
	}
	return signal
}

// signalToAction squashes a signal through the logistic function and buckets it
// into -1, 0 or +1.
func signalToAction(signal float64) int {
	v := Squash(signal)
	switch {
	case v < lowThreshold:
		return -1
	case v > highThreshold:
		return 1
	default:
		return 0
	}
}

// Squash is the logistic function with its input limited to [-500, 500].
// A non-finite result saturates to 1 for positive signals and 0 otherwise.
func Squash(signal float64) float64 {
	s := evo.Clamp(signal, -maxExponent, maxExponent)
	v := 1 / (1 + math.Exp(-s))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if signal > 0 {
			return 1.0
		}
		return 0.0
	}
	return v
}

// Coefficients returns copies of the engine and wheel coefficient vectors.
func (b *Brain) Coefficients() (engine, wheels []float64) {
	return append([]float64(nil), b.engineCoefficients...), append([]float64(nil), b.wheelCoefficients...)
}

// Genome returns a copy of the genome the brain was built from.
func (b *Brain) Genome() evo.Genome {
	return b.genome.Clone()
}
