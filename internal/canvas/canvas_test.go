package canvas

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func near(a, b gg.RGBA) bool {
	const eps = 2.0 / 255
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestClearUsesBackground(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	s.Resize(40, 30)
	s.Clear()

	if got := s.Pixel(20, 15); !near(got, gg.Hex(config.Background)) {
		t.Errorf("Expected background, got %+v", got)
	}
}

func TestResizeKeepsLogicalCoordinates(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	r := fireworks.NewRenderer(s, 2)

	r.Resize(800, 600, 1)
	r.Resize(1600, 900, 2)

	if w, h := s.Bounds(); w != 3200 || h != 1800 {
		t.Fatalf("Expected 3200x1800 buffer, got %dx%d", w, h)
	}

	w := fireworks.NewWorld(config.Normal())
	w.Particles = append(w.Particles, fireworks.Particle{
		Pos:   fireworks.Point{X: 400, Y: 300},
		Size:  3,
		Alpha: 1,
		Color: white,
	})
	r.Draw(w)

	if got := s.Pixel(800, 600); got.R < 0.9 || got.G < 0.9 || got.B < 0.9 {
		t.Errorf("Expected lit pixel at (800,600), got %+v", got)
	}
	// Radius 3 logical is 6 pixels
	if got := s.Pixel(810, 600); !near(got, gg.Hex(config.Background)) {
		t.Errorf("Expected background outside the disc, got %+v", got)
	}
	if got := s.Pixel(1600, 900); !near(got, gg.Hex(config.Background)) {
		t.Errorf("Expected background at centre of new viewport, got %+v", got)
	}
}

func TestRefusedResizeKeepsBuffer(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	s.Resize(64, 48)
	s.Resize(0, 48)

	if w, h := s.Bounds(); w != 64 || h != 48 {
		t.Errorf("Expected 64x48 kept, got %dx%d", w, h)
	}
}

func TestDrawPolyline(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	s.Resize(100, 100)
	s.SetScale(1)
	s.Clear()

	s.DrawPolyline([]fireworks.Point{{X: 10, Y: 50}, {X: 90, Y: 50}}, white, 2, 1)
	if got := s.Pixel(50, 50); got.R < 0.5 {
		t.Errorf("Expected stroked pixel, got %+v", got)
	}

	// A single point draws nothing
	s.Clear()
	s.DrawPolyline([]fireworks.Point{{X: 50, Y: 50}}, white, 2, 1)
	if got := s.Pixel(50, 50); !near(got, gg.Hex(config.Background)) {
		t.Errorf("Expected nothing drawn, got %+v", got)
	}
}

func TestTransparentDiscSkipped(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	s.Resize(20, 20)
	s.Clear()

	s.DrawDisc(fireworks.Point{X: 10, Y: 10}, 4, white, 0)
	if got := s.Pixel(10, 10); !near(got, gg.Hex(config.Background)) {
		t.Errorf("Expected faded particle invisible, got %+v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	s := New(config.Background)
	defer s.Close()
	s.Resize(8, 8)

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG signature")
	}
}
