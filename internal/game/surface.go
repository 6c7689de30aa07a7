package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

type opKind uint8

const (
	opPolyline opKind = iota
	opDisc
)

// drawOp is one recorded draw call. Polylines index into Surface.points.
type drawOp struct {
	kind     opKind
	from, to int
	center   fireworks.Point
	radius   float64
	color    color.NRGBA
	width    float64
}

// Surface records the draw calls of a frame and replays them onto the
// ebiten screen in Draw. Update and Draw run on different ticks, so the
// display draws into this list rather than into the screen directly.
type Surface struct {
	background color.NRGBA
	width      int
	height     int
	scale      float64

	ops    []drawOp
	points []fireworks.Point
}

func NewSurface(background color.NRGBA) *Surface {
	return &Surface{background: background, scale: 1}
}

func (s *Surface) Resize(width, height int) { s.width, s.height = width, height }
func (s *Surface) SetScale(scale float64)   { s.scale = scale }

func (s *Surface) Clear() {
	s.ops = s.ops[:0]
	s.points = s.points[:0]
}

func (s *Surface) DrawPolyline(points []fireworks.Point, c color.NRGBA, width, opacity float64) {
	if len(points) < 2 {
		return
	}
	from := len(s.points)
	s.points = append(s.points, points...)
	s.ops = append(s.ops, drawOp{
		kind:  opPolyline,
		from:  from,
		to:    len(s.points),
		color: withOpacity(c, opacity),
		width: width,
	})
}

func (s *Surface) DrawDisc(center fireworks.Point, radius float64, c color.NRGBA, opacity float64) {
	if opacity <= 0 || radius <= 0 {
		return
	}
	s.ops = append(s.ops, drawOp{
		kind:   opDisc,
		center: center,
		radius: radius,
		color:  withOpacity(c, opacity),
	})
}

// BufferSize returns the pixel size the screen should have.
func (s *Surface) BufferSize() (width, height int) { return s.width, s.height }

// Len returns the number of recorded draw calls.
func (s *Surface) Len() int { return len(s.ops) }

// Present fills screen with the background and replays the frame.
func (s *Surface) Present(screen *ebiten.Image) {
	screen.Fill(s.background)

	k := float32(s.scale)
	for _, op := range s.ops {
		switch op.kind {
		case opPolyline:
			pts := s.points[op.from:op.to]
			for i := 1; i < len(pts); i++ {
				a, b := pts[i-1], pts[i]
				vector.StrokeLine(screen,
					float32(a.X)*k, float32(a.Y)*k,
					float32(b.X)*k, float32(b.Y)*k,
					float32(op.width)*k, op.color, true)
			}
		case opDisc:
			vector.DrawFilledCircle(screen, float32(op.center.X)*k, float32(op.center.Y)*k, float32(op.radius)*k, op.color, true)
		}
	}
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A)*min(max(opacity, 0), 1) + 0.5)
	return c
}
