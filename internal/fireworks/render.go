package fireworks

import (
	"image/color"
	"math"
)

const (
	trailWidth   = 2
	trailOpacity = 0.9
)

// Surface is the drawing target of a display. Coordinates passed to the
// draw calls are logical units; SetScale maps them to buffer pixels.
type Surface interface {
	// Resize sets the pixel size of the backing buffer.
	Resize(width, height int)
	SetScale(scale float64)
	Clear()
	// points is reused by the caller after DrawPolyline returns.
	DrawPolyline(points []Point, c color.NRGBA, width, opacity float64)
	DrawDisc(center Point, radius float64, c color.NRGBA, opacity float64)
}

// Renderer maps world state onto a Surface.
type Renderer struct {
	surface    Surface
	maxDensity float64

	width   int
	height  int
	density float64

	scratch []Point
}

// NewRenderer returns a renderer drawing to s. Pixel density is capped at
// maxDensity; a non-positive cap means no cap.
func NewRenderer(s Surface, maxDensity float64) *Renderer {
	return &Renderer{surface: s, maxDensity: maxDensity, density: 1}
}

// Resize sets the logical size and pixel density. The backing buffer
// becomes width*density by height*density pixels and one logical unit maps
// to density pixels. Non-positive sizes leave everything unchanged and
// return false.
func (r *Renderer) Resize(width, height int, density float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if density <= 0 || math.IsNaN(density) {
		density = 1
	}
	if r.maxDensity > 0 && density > r.maxDensity {
		density = r.maxDensity
	}

	r.width, r.height, r.density = width, height, density
	r.surface.Resize(int(math.Floor(float64(width)*density)), int(math.Floor(float64(height)*density)))
	r.surface.SetScale(density)
	return true
}

// Size returns the logical size.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Density returns the effective pixel density.
func (r *Renderer) Density() float64 { return r.density }

// Draw composites one full frame: clear, projectiles, then particles, each
// in container order.
func (r *Renderer) Draw(w *World) {
	r.surface.Clear()

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		r.scratch = p.Trail.AppendTo(r.scratch[:0])
		r.scratch = append(r.scratch, p.Pos)
		r.surface.DrawPolyline(r.scratch, p.Color, trailWidth, trailOpacity)
	}

	for i := range w.Particles {
		p := &w.Particles[i]
		r.surface.DrawDisc(p.Pos, p.Size, p.Color, max(p.Alpha, 0))
	}
}
