package fireworks

import "math"

// Point is a position or vector in logical surface units.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point  { return Point{p.X * s, p.Y * s} }
func (p Point) Len() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return q.Sub(p).Len() }

// maxTrail bounds the configurable trail length so Trail stays a value type.
const maxTrail = 32

// Trail keeps the most recent positions of a projectile, oldest first.
// Pushing beyond the limit evicts the oldest point.
type Trail struct {
	points [maxTrail]Point
	n      int
	limit  int
}

// NewTrail returns an empty trail holding at most limit points.
func NewTrail(limit int) Trail {
	if limit < 1 {
		limit = 1
	}
	if limit > maxTrail {
		limit = maxTrail
	}
	return Trail{limit: limit}
}

// Push returns the trail with p appended.
func (t Trail) Push(p Point) Trail {
	if t.limit == 0 {
		t.limit = maxTrail
	}
	if t.n == t.limit {
		copy(t.points[:], t.points[1:t.n])
		t.n--
	}
	t.points[t.n] = p
	t.n++
	return t
}

// Len returns the number of stored points.
func (t Trail) Len() int { return t.n }

// Cap returns the maximum number of stored points.
func (t Trail) Cap() int { return t.limit }

// AppendTo appends the points oldest first to dst.
func (t Trail) AppendTo(dst []Point) []Point {
	return append(dst, t.points[:t.n]...)
}
