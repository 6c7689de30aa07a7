package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func TestLogicalSize(t *testing.T) {
	w, h := LogicalSize(80, 24)
	if w != 640 || h != 384 {
		t.Errorf("Expected 640x384, got %dx%d", w, h)
	}
}

func TestRendererMapsToHalfBlocks(t *testing.T) {
	screen := newScreen(t, 10, 5)
	s, err := New(screen, "#000000")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := fireworks.NewRenderer(s, 2)
	r.Resize(80, 80, Density)

	if s.width != 10 || s.height != 10 {
		t.Fatalf("Expected 10x10 pixels, got %dx%d", s.width, s.height)
	}

	w := fireworks.NewWorld(config.Normal())
	w.Particles = append(w.Particles, fireworks.Particle{
		Pos:   fireworks.Point{X: 40, Y: 40},
		Size:  2,
		Alpha: 1,
		Color: white,
	})
	r.Draw(w)
	s.Show()

	// Pixel (5,5) is the lower half of cell (5,2)
	mainc, _, style, _ := screen.GetContent(5, 2)
	if mainc != halfBlock {
		t.Errorf("Expected half block, got %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if r, g, b := bg.RGB(); r != 255 || g != 255 || b != 255 {
		t.Errorf("Expected white lower half, got %d,%d,%d", r, g, b)
	}
	if r, g, b := fg.RGB(); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected dark upper half, got %d,%d,%d", r, g, b)
	}
}

func TestOpacityBlends(t *testing.T) {
	s, _ := New(newScreen(t, 4, 2), "#000000")
	s.Resize(4, 4)
	s.SetScale(1)

	s.DrawDisc(fireworks.Point{X: 1, Y: 1}, 0.1, white, 0.5)
	if got := s.At(1, 1); got.R < 0.45 || got.R > 0.55 {
		t.Errorf("Expected half-lit pixel, got %v", got.R)
	}

	s.Clear()
	if got := s.At(1, 1); got.R != 0 {
		t.Errorf("Expected cleared pixel, got %v", got.R)
	}
}

func TestPolylineCoversSegment(t *testing.T) {
	s, _ := New(newScreen(t, 10, 5), config.Background)
	s.Resize(10, 10)
	s.SetScale(1)

	s.DrawPolyline([]fireworks.Point{{X: 1, Y: 3}, {X: 8, Y: 3}}, white, 2, 1)
	for x := 2; x <= 8; x++ {
		if got := s.At(x, 3); got.R < 0.99 {
			t.Errorf("Expected pixel %d lit, got %v", x, got.R)
		}
	}
	if got := s.At(5, 6); got.R > 0.1 {
		t.Errorf("Expected pixel off the line dark, got %v", got.R)
	}
}

func TestResizeIgnoresEmpty(t *testing.T) {
	s, _ := New(newScreen(t, 4, 2), "#000000")
	s.Resize(4, 4)
	s.Resize(0, 4)
	if s.width != 4 || s.height != 4 {
		t.Errorf("Expected 4x4 kept, got %dx%d", s.width, s.height)
	}
}

func TestBadBackground(t *testing.T) {
	if _, err := New(newScreen(t, 1, 1), "nope"); err == nil {
		t.Error("Expected error for invalid background")
	}
}
