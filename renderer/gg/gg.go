// Package ggrenderer 是基于 github.com/fogleman/gg 的后端，适合需要抗锯齿位图输出但不想引入矢量画布的场景。
package ggrenderer

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/renderer"
)

// Backend 在 gg.Context 上测量并绘制文本。字体 face 在所有画布之间共享，访问由 mu 串行化。
type Backend struct {
	mu      sync.Mutex
	face    font.Face
	measure *gg.Context
	ascent  float64
}

var _ renderer.Backend = (*Backend)(nil)

func New(face font.Face) (*Backend, error) {
	if face == nil {
		return nil, fmt.Errorf("字体为空")
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return &Backend{
		face:    face,
		measure: dc,
		ascent:  float64(face.Metrics().Ascent) / 64,
	}, nil
}

// NewTrueType 解析 TTF 数据并以 72 DPI 创建字体，sizePx 即像素字号。
func NewTrueType(fontData []byte, sizePx float64) (*Backend, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %g", sizePx)
	}
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("解析 TrueType 字体失败: %w", err)
	}
	return New(truetype.NewFace(f, &truetype.Options{Size: sizePx, DPI: 72}))
}

// Measure 返回 gg 测得的宽度与字体高度，四舍五入到整数像素。
func (b *Backend) Measure(text string) (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, h := b.measure.MeasureString(text)
	return int(math.Round(w)), int(math.Round(h)), nil
}

func (b *Backend) NewSurface(width, height int, background layout.Color) (renderer.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(background.ToRGBA())
	dc.Clear()
	dc.SetFontFace(b.face)
	return &surface{backend: b, dc: dc}, nil
}

type surface struct {
	backend *Backend
	dc      *gg.Context
}

func (s *surface) DrawText(x, y int, text string, c layout.Color) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.dc.SetColor(c.ToRGBA())
	// gg 以基线定位文本
	s.dc.DrawString(text, float64(x), float64(y)+s.backend.ascent)
	return nil
}

func (s *surface) Image() image.Image { return s.dc.Image() }

func (s *surface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }
