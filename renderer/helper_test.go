package renderer

import (
	"errors"
	"image"
	"unicode/utf8"

	"github.com/ByLCY/pagecast/layout"
)

type drawCall struct {
	X, Y  int
	Text  string
	Color layout.Color
}

// recordingBackend measures 10px per rune and records every draw call.
type recordingBackend struct {
	drawErr    error
	measureErr error
}

func (b *recordingBackend) Measure(text string) (int, int, error) {
	if b.measureErr != nil {
		return 0, 0, b.measureErr
	}
	return utf8.RuneCountInString(text) * 10, 30, nil
}

func (b *recordingBackend) NewSurface(width, height int, bg layout.Color) (Surface, error) {
	return &recordingSurface{width: width, height: height, background: bg, drawErr: b.drawErr}, nil
}

type recordingSurface struct {
	width, height int
	background    layout.Color
	calls         []drawCall
	drawErr       error
}

func (s *recordingSurface) DrawText(x, y int, text string, c layout.Color) error {
	if s.drawErr != nil {
		return s.drawErr
	}
	s.calls = append(s.calls, drawCall{X: x, Y: y, Text: text, Color: c})
	return nil
}

func (s *recordingSurface) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, s.background.ToRGBA())
		}
	}
	return img
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }

var errBoom = errors.New("boom")

func testConfig(align layout.Align) layout.Config {
	return testConfigSized(720, 720, align)
}

func testConfigSized(width, height int, align layout.Align) layout.Config {
	cfg, err := layout.NewConfigWithGlyph(layout.Options{
		Width:      width,
		Height:     height,
		Align:      align,
		Background: layout.White,
		Foreground: layout.Color{R: 0x4d, G: 0x5d, B: 0x53},
	}, 20, 30)
	if err != nil {
		panic(err)
	}
	return cfg
}

func pageOf(lines ...string) layout.Page {
	p := layout.Page{Lines: []layout.Line{}}
	for _, l := range lines {
		p.Lines = append(p.Lines, layout.Line{Content: l})
	}
	return p
}

func calls(t interface{ Fatalf(string, ...any) }, s Surface) []drawCall {
	rs, ok := s.(*recordingSurface)
	if !ok {
		t.Fatalf("unexpected surface type %T", s)
	}
	return rs.calls
}
