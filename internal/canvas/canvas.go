// Package canvas is a software fireworks surface backed by gg. It needs no
// window or GPU, so it serves headless capture and pixel tests.
package canvas

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

// Surface draws into an in-memory gg context.
type Surface struct {
	dc         *gg.Context
	background gg.RGBA
	scale      float64
}

// New returns a 1x1 surface cleared to background, a hex colour.
func New(background string) *Surface {
	s := &Surface{
		dc:         gg.NewContext(1, 1),
		background: gg.Hex(background),
		scale:      1,
	}
	s.Clear()
	return s
}

// Resize reallocates the pixel buffer. The scale survives the resize.
func (s *Surface) Resize(width, height int) {
	if err := s.dc.Resize(width, height); err != nil {
		fireworks.Logger().Warn("canvas resize refused", "width", width, "height", height, "err", err)
		return
	}
	s.SetScale(s.scale)
}

// SetScale resets the transform so one logical unit spans scale pixels.
func (s *Surface) SetScale(scale float64) {
	s.scale = scale
	s.dc.Identity()
	s.dc.Scale(scale, scale)
}

func (s *Surface) Clear() {
	s.dc.ClearWithColor(s.background)
}

func (s *Surface) DrawPolyline(points []fireworks.Point, c color.NRGBA, width, opacity float64) {
	if len(points) < 2 {
		return
	}
	s.setColor(c, opacity)
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	_ = s.dc.Stroke()
}

func (s *Surface) DrawDisc(center fireworks.Point, radius float64, c color.NRGBA, opacity float64) {
	if radius <= 0 || opacity <= 0 {
		return
	}
	s.setColor(c, opacity)
	s.dc.DrawCircle(center.X, center.Y, radius)
	_ = s.dc.Fill()
}

func (s *Surface) setColor(c color.NRGBA, opacity float64) {
	s.dc.SetRGBA(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
		float64(c.A)/255*opacity,
	)
}

// Bounds returns the pixel size of the buffer.
func (s *Surface) Bounds() (width, height int) {
	return s.dc.Width(), s.dc.Height()
}

// Pixel returns the colour at buffer pixel (x, y).
func (s *Surface) Pixel(x, y int) gg.RGBA {
	return s.dc.ResizeTarget().GetPixel(x, y)
}

func (s *Surface) Image() image.Image { return s.dc.Image() }

func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Close releases the gg context.
func (s *Surface) Close() error { return s.dc.Close() }
