// Package term renders fireworks into a terminal. Each cell shows two
// vertically stacked pixels using the upper half block, with the top pixel
// as foreground and the bottom pixel as background.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// CellWidth and CellHeight are the logical size of one terminal cell
	CellWidth  = 8
	CellHeight = 16

	// Density maps CellWidth logical units onto one pixel column
	Density = 1.0 / CellWidth

	halfBlock = '▀'
)

// LogicalSize returns the logical viewport of a cols x rows terminal.
func LogicalSize(cols, rows int) (width, height int) {
	return cols * CellWidth, rows * CellHeight
}

// Surface is a pixel buffer of cols x rows*2 flushed to a tcell screen.
type Surface struct {
	screen     tcell.Screen
	background colorful.Color

	width  int
	height int
	scale  float64
	pix    []colorful.Color
}

// New returns a surface drawing to screen, cleared to background.
func New(screen tcell.Screen, background string) (*Surface, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, err
	}
	return &Surface{screen: screen, background: bg, scale: 1}, nil
}

func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.pix = make([]colorful.Color, width*height)
	s.Clear()
}

func (s *Surface) SetScale(scale float64) { s.scale = scale }

func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.background
	}
}

// DrawPolyline plots each segment one pixel wide; stroke width below a
// cell is not representable.
func (s *Surface) DrawPolyline(points []fireworks.Point, c color.NRGBA, _, opacity float64) {
	col := toColorful(c)
	for i := 1; i < len(points); i++ {
		a := points[i-1].Mul(s.scale)
		b := points[i].Mul(s.scale)
		steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
		if steps == 0 {
			s.plot(a, col, opacity)
			continue
		}
		start := 1
		if i == 1 {
			start = 0
		}
		for j := start; j <= steps; j++ {
			t := float64(j) / float64(steps)
			s.plot(a.Add(b.Sub(a).Mul(t)), col, opacity)
		}
	}
}

// DrawDisc lights every pixel whose centre is inside the scaled radius, and
// at least the pixel under the centre.
func (s *Surface) DrawDisc(center fireworks.Point, radius float64, c color.NRGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	col := toColorful(c)
	p := center.Mul(s.scale)
	r := radius * s.scale

	if r < 0.5 {
		s.plot(p, col, opacity)
		return
	}
	for y := int(math.Floor(p.Y - r)); y <= int(math.Ceil(p.Y+r)); y++ {
		for x := int(math.Floor(p.X - r)); x <= int(math.Ceil(p.X+r)); x++ {
			if math.Hypot(float64(x)+0.5-p.X, float64(y)+0.5-p.Y) <= r {
				s.blend(x, y, col, opacity)
			}
		}
	}
}

func (s *Surface) plot(p fireworks.Point, c colorful.Color, opacity float64) {
	s.blend(int(math.Floor(p.X)), int(math.Floor(p.Y)), c, opacity)
}

func (s *Surface) blend(x, y int, c colorful.Color, opacity float64) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := y*s.width + x
	s.pix[i] = s.pix[i].BlendRgb(c, math.Min(opacity, 1))
}

// At returns the pixel at (x, y).
func (s *Surface) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return s.background
	}
	return s.pix[y*s.width+x]
}

// Show copies the buffer to the screen, two pixels per cell.
func (s *Surface) Show() {
	for row := 0; row*2 < s.height; row++ {
		for x := 0; x < s.width; x++ {
			top := s.At(x, row*2)
			bottom := s.At(x, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			s.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	s.screen.Show()
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
