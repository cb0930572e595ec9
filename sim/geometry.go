package sim

import (
	"math"
)

// Point is a position in arena coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned integer rectangle. Right and Bottom are X+W and Y+H.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.H }

// Center uses integer division, so odd sizes round toward the top-left.
func (r Rect) Center() Point {
	return Point{X: float64(r.X + r.W/2), Y: float64(r.Y + r.H/2)}
}

// Corners lists top-left, top-right, bottom-right, bottom-left.
func (r Rect) Corners() [4]Point {
	l, t := float64(r.Left()), float64(r.Top())
	rt, b := float64(r.Right()), float64(r.Bottom())
	return [4]Point{{l, t}, {rt, t}, {rt, b}, {l, b}}
}

// Intersects reports whether the interiors of r and o overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.Right() && r.Y < o.Bottom() && r.Right() > o.X && r.Bottom() > o.Y
}

// Contains reports whether o lies entirely within r, edges included.
func (r Rect) Contains(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() &&
		o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// ContainsPoint is inclusive on all four edges.
func (r Rect) ContainsPoint(p Point) bool {
	return float64(r.Left()) <= p.X && p.X <= float64(r.Right()) &&
		float64(r.Top()) <= p.Y && p.Y <= float64(r.Bottom())
}

// Hit is the half-open test used for picking rectangles with the mouse.
func (r Rect) Hit(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// NearestPoint returns the point of r closest to p.
func (r Rect) NearestPoint(p Point) Point {
	return Point{
		X: math.Max(float64(r.Left()), math.Min(p.X, float64(r.Right()))),
		Y: math.Max(float64(r.Top()), math.Min(p.Y, float64(r.Bottom()))),
	}
}

// DistanceTo is the distance from p to the nearest point of r; 0 inside r.
func (r Rect) DistanceTo(p Point) float64 {
	n := r.NearestPoint(p)
	return math.Hypot(p.X-n.X, p.Y-n.Y)
}

// RotatedSize returns the integer bounding box of a w x h rectangle rotated by
// angle degrees. Quarter turns are exact; otherwise the extents are truncated.
func RotatedSize(w, h int, angle float64) (int, int) {
	if math.Mod(angle, 90) == 0 {
		turns := int(math.Mod(angle/90, 4))
		if turns%2 != 0 {
			return h, w
		}
		return w, h
	}
	rad := angle * math.Pi / 180
	c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	fw, fh := float64(w), float64(h)
	return int(fw*c + fh*s), int(fw*s + fh*c)
}

// RectAround returns a w x h rectangle centered on (cx, cy).
func RectAround(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
