package brain

import (
	"fmt"
	"math"

	"github.com/baldhumanity/autopark/evo"
)

const (
	GeneBits        = 10 // sign, 4 exponent bits, 5 mantissa bits
	CoefficientsPer = 9  // 8 sensor weights + bias
	VectorBits      = GeneBits * CoefficientsPer
	exponentBias    = 7
	MaxCoefficient  = 100.0
)

// DecodeGene converts 10 bits into a coefficient.
// Layout: bit 0 sign (1 is negative), bits 1-4 exponent (MSB first, biased by 7),
// bits 5-9 fractional mantissa added to an implicit leading 1.
// The result saturates at [-100, 100].
func DecodeGene(bits []byte) (float64, error) {
	if len(bits) != GeneBits {
		return 0, fmt.Errorf("%w: gene needs %d bits, got %d", evo.ErrInvalidLength, GeneBits, len(bits))
	}

	sign := 1.0
	if bits[0] != 0 {
		sign = -1.0
	}

	exponent := 0
	for _, b := range bits[1:5] {
		exponent = exponent<<1 | int(b&1)
	}
	exponent -= exponentBias

	mantissa := 0.0
	for i, b := range bits[5:] {
		if b != 0 {
			mantissa += math.Ldexp(1, -(i + 1))
		}
	}

	value := sign * (1 + mantissa) * math.Ldexp(1, exponent)
	return evo.Clamp(value, -MaxCoefficient, MaxCoefficient), nil
}

// DecodeVector converts 90 bits into 9 coefficients, 10 bits each.
func DecodeVector(bits []byte) ([]float64, error) {
	if len(bits) != VectorBits {
		return nil, fmt.Errorf("%w: coefficient vector needs %d bits, got %d", evo.ErrInvalidLength, VectorBits, len(bits))
	}
	coefficients := make([]float64, 0, CoefficientsPer)
	for i := 0; i < len(bits); i += GeneBits {
		value, err := DecodeGene(bits[i : i+GeneBits])
		if err != nil {
			return nil, err
		}
		coefficients = append(coefficients, value)
	}
	return coefficients, nil
}
