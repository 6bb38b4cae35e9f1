package layout

import (
	"errors"
	"fmt"
)

// ReferenceGlyph drives every budget estimate instead of per-character shaping metrics.
const ReferenceGlyph = "W"

var ErrInvalidConfig = errors.New("layout: invalid config")

// Config 是不可变的排版配置。派生值在构造时计算一次，之后不再变化，
// 因此同一个 Config 可以被多个并发的排版调用共享。
type Config struct {
	width       int
	height      int
	glyphWidth  int
	glyphHeight int
	align       Align
	background  Color
	foreground  Color
	normalize   bool

	maxLineWidth     float64
	lineAdvance      int
	maxContentHeight int
}

// NewConfig 通过 Metrics 测量参考字形 "W" 得到基础字形尺寸并构造 Config。
func NewConfig(opts Options, m Metrics) (Config, error) {
	if m == nil {
		return Config{}, fmt.Errorf("%w: 缺少字形度量 Metrics", ErrInvalidConfig)
	}
	w, h, err := m.Measure(ReferenceGlyph)
	if err != nil {
		return Config{}, fmt.Errorf("测量参考字形失败: %w", err)
	}
	return NewConfigWithGlyph(opts, w, h)
}

// NewConfigWithGlyph 使用给定的基础字形尺寸构造 Config。
func NewConfigWithGlyph(opts Options, glyphWidth, glyphHeight int) (Config, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return Config{}, fmt.Errorf("%w: 画布尺寸 %dx%d 必须为正数", ErrInvalidConfig, opts.Width, opts.Height)
	}
	if glyphWidth <= 0 || glyphHeight <= 0 {
		return Config{}, fmt.Errorf("%w: 字形尺寸 %dx%d 必须为正数", ErrInvalidConfig, glyphWidth, glyphHeight)
	}
	align := opts.Align
	if align == "" {
		align = AlignLeft
	}
	return Config{
		width:            opts.Width,
		height:           opts.Height,
		glyphWidth:       glyphWidth,
		glyphHeight:      glyphHeight,
		align:            ParseAlign(string(align)),
		background:       opts.Background,
		foreground:       opts.Foreground,
		normalize:        opts.Normalize,
		maxLineWidth:     float64(opts.Width) - 2.5*float64(glyphWidth),
		lineAdvance:      glyphHeight + 2,
		maxContentHeight: opts.Height - 2*glyphHeight,
	}, nil
}

func (c Config) Width() int        { return c.width }
func (c Config) Height() int       { return c.height }
func (c Config) GlyphWidth() int   { return c.glyphWidth }
func (c Config) GlyphHeight() int  { return c.glyphHeight }
func (c Config) Align() Align      { return c.align }
func (c Config) Background() Color { return c.background }
func (c Config) Foreground() Color { return c.foreground }
func (c Config) Normalize() bool   { return c.normalize }

// MaxLineWidth 是物理行的宽度预算：width − 2.5 × glyphWidth。
func (c Config) MaxLineWidth() float64 { return c.maxLineWidth }

// LineAdvance 是每条物理行占用的纵向像素：glyphHeight + 2。
func (c Config) LineAdvance() int { return c.lineAdvance }

// MaxContentHeight 是单页纵向计数器允许到达的上限：height − 2 × glyphHeight。
func (c Config) MaxContentHeight() int { return c.maxContentHeight }

// Options 返回构造该 Config 时使用的参数。
func (c Config) Options() Options {
	return Options{
		Width:      c.width,
		Height:     c.height,
		Align:      c.align,
		Background: c.background,
		Foreground: c.foreground,
		Normalize:  c.normalize,
	}
}
