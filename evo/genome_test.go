package evo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenomeStringAndParse(t *testing.T) {
	g := Genome{0, 1, 1, 0, 1}
	assert.Equal(t, "0,1,1,0,1", g.String())

	parsed, err := ParseGenome(" 0,1,1,0,1\n", 5)
	require.NoError(t, err)
	assert.Equal(t, g, parsed)
}

func TestParseGenomeErrors(t *testing.T) {
	_, err := ParseGenome("0,1,1", 4)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseGenome("0,1,2,1", 4)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseGenome("0,1,,1", 4)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseGenome("", 4)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestRandomGenomeIsSeeded(t *testing.T) {
	a := RandomGenome(180, rand.New(rand.NewPCG(1, 2)))
	b := RandomGenome(180, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, a, 180)
	assert.Equal(t, a, b)
	for _, bit := range a {
		assert.LessOrEqual(t, bit, byte(1))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Genome{0, 0, 0}
	c := g.Clone()
	c[0] = 1
	assert.Equal(t, Genome{0, 0, 0}, g)
	assert.Nil(t, Genome(nil).Clone())
}

func TestMathUtil(t *testing.T) {
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 4.0, MaxFloat([]float64{1, 4, 2}))
	assert.Equal(t, 1.0, MinFloat([]float64{3, 1, 2}))
	assert.Equal(t, 1, ArgMax([]float64{1, 4, 4}))
	assert.Equal(t, -1, ArgMax(nil))
	assert.Equal(t, 100.0, Clamp(250, -100, 100))
	assert.Equal(t, -100.0, Clamp(-250, -100, 100))
}
