package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/renderer"
)

// Backend 通过 github.com/tdewolff/canvas 测量并绘制文本。
// 画布以 1mm 为 1 像素栅格化（DPMM(1)），因此布局中的像素值可直接作为画布坐标使用。
type Backend struct {
	family *canvas.FontFamily
	sizePt float64

	fontMu sync.Mutex
	faces  map[layout.Color]*canvas.FontFace
}

var _ renderer.Backend = (*Backend)(nil)

// New 从 TTF/OTF 字体数据创建后端，sizePx 为像素字号。
func New(fontData []byte, sizePx float64) (*Backend, error) {
	if len(fontData) == 0 {
		return nil, fmt.Errorf("字体数据为空")
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %g", sizePx)
	}
	family := canvas.NewFontFamily("pagecast")
	if err := family.LoadFont(fontData, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	return &Backend{
		family: family,
		sizePt: toPt(sizePx),
		faces:  map[layout.Color]*canvas.FontFace{},
	}, nil
}

// Measure 返回文本宽度与字体行高（上升部 + 下降部），四舍五入到整数像素。
func (b *Backend) Measure(text string) (int, int, error) {
	b.fontMu.Lock()
	defer b.fontMu.Unlock()
	face := b.faceLocked(layout.Black)
	m := face.Metrics()
	return round(face.TextWidth(text)), round(m.Ascent + m.Descent), nil
}

// NewSurface 创建一张填充背景色的画布，坐标系原点位于左上角。
func (b *Backend) NewSurface(width, height int, background layout.Color) (renderer.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}
	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetFillColor(colorFromLayout(background))
	ctx.DrawPath(0, 0, canvas.Rectangle(float64(width), float64(height)))
	return &surface{backend: b, canvas: c, ctx: ctx, width: width, height: height}, nil
}

func (b *Backend) face(col layout.Color) *canvas.FontFace {
	b.fontMu.Lock()
	defer b.fontMu.Unlock()
	return b.faceLocked(col)
}

func (b *Backend) faceLocked(col layout.Color) *canvas.FontFace {
	if face, ok := b.faces[col]; ok {
		return face
	}
	face := b.family.Face(b.sizePt, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal)
	b.faces[col] = face
	return face
}

type surface struct {
	backend *Backend
	canvas  *canvas.Canvas
	ctx     *canvas.Context
	width   int
	height  int
}

func (s *surface) DrawText(x, y int, text string, c layout.Color) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	face := s.backend.face(c)
	s.backend.fontMu.Lock()
	line := canvas.NewTextLine(face, text, canvas.Left)
	ascent := face.Metrics().Ascent
	s.backend.fontMu.Unlock()

	// 基线位置：行顶部加上字体上升部
	s.ctx.DrawText(float64(x), float64(y)+ascent, line)
	return nil
}

// Image 把矢量画布栅格化为 RGBA 图像。
func (s *surface) Image() image.Image {
	return rasterizer.Draw(s.canvas, canvas.DPMM(1.0), canvas.DefaultColorSpace)
}

func (s *surface) Size() (int, int) { return s.width, s.height }

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将像素字号换算为 pt。DPMM(1) 下 1 像素即 1mm。
func toPt(px float64) float64 { return px * layout.MmToPt }

func round(v float64) int { return int(math.Round(v)) }
