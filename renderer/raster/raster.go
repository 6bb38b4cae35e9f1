// Package raster 提供基于 golang.org/x/image/font 的位图后端，直接绘制到 image.RGBA。
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/renderer"
)

// Backend 用一个 font.Face 测量并绘制文本。
// font.Face 不保证并发安全，所有访问都由 mu 串行化。
type Backend struct {
	mu     sync.Mutex
	face   font.Face
	ascent int
	height int
}

var _ renderer.Backend = (*Backend)(nil)

func New(face font.Face) (*Backend, error) {
	if face == nil {
		return nil, fmt.Errorf("字体为空")
	}
	m := face.Metrics()
	return &Backend{
		face:   face,
		ascent: m.Ascent.Ceil(),
		height: (m.Ascent + m.Descent).Ceil(),
	}, nil
}

// NewBasic 使用内置的 7x13 点阵字体，不需要任何字体文件。
func NewBasic() *Backend {
	b, _ := New(basicfont.Face7x13)
	return b
}

// NewTrueType 解析 TTF 数据，按 72 DPI 创建字体，使 sizePx 与像素一一对应。
func NewTrueType(fontData []byte, sizePx float64) (*Backend, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %g", sizePx)
	}
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("解析 TrueType 字体失败: %w", err)
	}
	return New(truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
}

func (b *Backend) Measure(text string) (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return font.MeasureString(b.face, text).Round(), b.height, nil
}

func (b *Backend) NewSurface(width, height int, background layout.Color) (renderer.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.ToRGBA()), image.Point{}, draw.Src)
	return &surface{backend: b, img: img}, nil
}

type surface struct {
	backend *Backend
	img     *image.RGBA
}

func (s *surface) DrawText(x, y int, text string, c layout.Color) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c.ToRGBA()),
		Face: s.backend.face,
		Dot:  fixed.P(x, y+s.backend.ascent),
	}
	d.DrawString(text)
	return nil
}

func (s *surface) Image() image.Image { return s.img }

func (s *surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}
