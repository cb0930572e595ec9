package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	assert.Equal(t, 10, r.Left())
	assert.Equal(t, 40, r.Right())
	assert.Equal(t, 20, r.Top())
	assert.Equal(t, 60, r.Bottom())
	assert.Equal(t, Point{X: 25, Y: 40}, r.Center())
	assert.Equal(t, [4]Point{{10, 20}, {40, 20}, {40, 60}, {10, 60}}, r.Corners())
}

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, a.Intersects(Rect{X: 9, Y: 9, W: 5, H: 5}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}), "shared edge")
	assert.False(t, a.Intersects(Rect{X: 3, Y: 3, W: 0, H: 4}), "empty rect")
	assert.True(t, a.Intersects(Rect{X: 2, Y: 2, W: 2, H: 2}))
}

func TestContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, outer.Contains(outer))
	assert.True(t, outer.Contains(Rect{X: 2, Y: 2, W: 8, H: 8}))
	assert.False(t, outer.Contains(Rect{X: 2, Y: 2, W: 9, H: 8}))

	assert.True(t, outer.ContainsPoint(Point{X: 10, Y: 10}))
	assert.True(t, outer.ContainsPoint(Point{X: 0, Y: 5}))
	assert.False(t, outer.ContainsPoint(Point{X: 10.01, Y: 5}))

	assert.True(t, outer.Hit(0, 0))
	assert.False(t, outer.Hit(10, 5))
}

func TestDistanceTo(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, 0.0, r.DistanceTo(Point{X: 5, Y: 5}))
	assert.Equal(t, 5.0, r.DistanceTo(Point{X: 13, Y: 14}))
	assert.Equal(t, 2.0, r.DistanceTo(Point{X: 5, Y: -2}))
	assert.Equal(t, Point{X: 10, Y: 0}, r.NearestPoint(Point{X: 20, Y: -3}))
}

func TestRotatedSize(t *testing.T) {
	tests := []struct {
		angle float64
		w, h  int
	}{
		{0, 44, 30},
		{90, 30, 44},
		{-90, 30, 44},
		{180, 44, 30},
		{-270, 30, 44},
		{45, 52, 52},
		{-45, 52, 52},
	}
	for _, tt := range tests {
		w, h := RotatedSize(BodyLength, BodyWidth, tt.angle)
		assert.Equal(t, tt.w, w, "width at %v", tt.angle)
		assert.Equal(t, tt.h, h, "height at %v", tt.angle)
	}
}

func TestRectAround(t *testing.T) {
	assert.Equal(t, Rect{X: 78, Y: 285, W: 44, H: 30}, RectAround(100, 300, 44, 30))
	assert.Equal(t, Rect{X: 85, Y: 78, W: 30, H: 44}, ObstacleAround(100, 100))
}
