package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParkedPose(t *testing.T) {
	w := New()
	w.SetPose(633, 222, 0)
	assert.True(t, w.Parked())
	assert.Equal(t, 0.0, w.AverageDistance())

	body := w.Body()
	assert.True(t, IsParked(body, 0))
	assert.True(t, IsParked(body, 10))
	assert.True(t, IsParked(body, 355))
	assert.False(t, IsParked(body, 15))
	assert.False(t, IsParked(body, 180))

	assert.False(t, IsParked(Rect{X: 595, Y: 207, W: 44, H: 30}, 0), "sticks out on the left")
}

func TestParkingEndsEpisodeWithBonus(t *testing.T) {
	w := New()
	baseline := w.AverageDistance()
	w.SetPose(633, 222, 0)

	res := w.Step(idle)
	require.True(t, res.Done)
	assert.InDelta(t, baseline*ApproachFactor+ParkedBonus+TimePenalty, res.Reward, 1e-9)
	assert.Equal(t, res.Reward, w.Fitness())
	assert.Equal(t, 0, w.State().Collisions)
}

func TestApproachRewardOnlyForNewBest(t *testing.T) {
	w := New()
	total := 0.0
	for range 40 {
		total += w.Step(forward).Reward
	}
	assert.Greater(t, total, 0.0, "driving toward the spot pays")
	assert.InDelta(t, total, w.Fitness(), 1e-9)

	// Back at the start the distance is worse than the best so far.
	w.SetPose(100, 300, 0)
	before := w.Fitness()
	res := w.Step(idle)
	assert.Equal(t, TimePenalty, res.Reward)
	assert.Equal(t, before+TimePenalty, w.Fitness())
}

func TestIdleStepCostsTime(t *testing.T) {
	w := New()
	res := w.Step(idle)
	assert.False(t, res.Done)
	assert.Equal(t, TimePenalty, res.Reward)
}
