package raster

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/renderer"
)

func TestBasicMetrics(t *testing.T) {
	b := NewBasic()
	w, h, err := b.Measure("W")
	if err != nil {
		t.Fatal(err)
	}
	if w != 7 || h != 13 {
		t.Fatalf("Measure(W) = %d, %d, want 7, 13", w, h)
	}
	if w, _, _ := b.Measure("hello world"); w != 77 {
		t.Fatalf("Measure(hello world) = %d, want 77", w)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil face")
	}
	if _, err := NewTrueType([]byte("junk"), 20); err == nil {
		t.Error("expected error for invalid font")
	}
	if _, err := NewTrueType(gomono.TTF, -1); err == nil {
		t.Error("expected error for negative size")
	}
}

func TestTrueTypeMonospace(t *testing.T) {
	b, err := NewTrueType(gomono.TTF, 20)
	if err != nil {
		t.Fatal(err)
	}
	w1, h, _ := b.Measure("i")
	w2, _, _ := b.Measure("W")
	if w1 != w2 || w1 <= 0 || h <= 0 {
		t.Fatalf("monospace widths differ: i=%d W=%d h=%d", w1, w2, h)
	}
}

func rgb(c color.Color) layout.Color {
	r, g, b, _ := c.RGBA()
	return layout.Color{R: int(r >> 8), G: int(g >> 8), B: int(b >> 8)}
}

func TestSurface(t *testing.T) {
	b := NewBasic()
	bg := layout.Color{R: 10, G: 20, B: 30}
	s, err := b.NewSurface(100, 40, bg)
	if err != nil {
		t.Fatal(err)
	}
	if got := rgb(s.Image().At(50, 20)); got != bg {
		t.Fatalf("background = %+v", got)
	}
	if err := s.DrawText(7, 13, "WWWW", layout.White); err != nil {
		t.Fatal(err)
	}
	img := s.Image()
	changed := false
	for y := 13; y < 26 && !changed; y++ {
		for x := 7; x < 35; x++ {
			if rgb(img.At(x, y)) != bg {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Fatal("text did not change any pixel in its line box")
	}
	if got := rgb(img.At(90, 5)); got != bg {
		t.Fatalf("pixel outside text changed: %+v", got)
	}
	if _, err := b.NewSurface(-1, 5, bg); err == nil {
		t.Fatal("expected error for invalid size")
	}
}

func TestConcurrentRenderPages(t *testing.T) {
	b := NewBasic()
	cfg, err := layout.NewConfig(layout.Options{Width: 200, Height: 100, Background: layout.White, Foreground: layout.Black}, b)
	if err != nil {
		t.Fatal(err)
	}
	e, err := renderer.New(cfg, b)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen ", 3)
	doc, err := e.Paginate(text, false)
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount() < 2 {
		t.Fatalf("expected several pages, got %d", doc.PageCount())
	}
	surfaces, err := e.RenderPages(context.Background(), doc, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(surfaces) != doc.PageCount() {
		t.Fatalf("got %d surfaces, want %d", len(surfaces), doc.PageCount())
	}
}
