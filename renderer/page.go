package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/pagecast/layout"
)

// RenderPage 把一页物理行绘制到一张新画布上。
// 每次调用都创建自己的游标与画布，返回后不再修改。
func RenderPage(page layout.Page, cfg layout.Config, b Backend) (Surface, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	s, err := b.NewSurface(cfg.Width(), cfg.Height(), cfg.Background())
	if err != nil {
		return nil, fmt.Errorf("创建画布失败: %w", err)
	}
	cur := newCursor(cfg)
	for _, line := range page.Lines {
		if err := drawLine(s, b, cfg, cur.y, line.Content); err != nil {
			return nil, err
		}
		cur.next(line)
	}
	return s, nil
}

// cursor 是单页渲染期间的纵向位置与"新页"标记。
type cursor struct {
	y       int
	fresh   bool
	advance int
}

func newCursor(cfg layout.Config) *cursor {
	return &cursor{y: cfg.GlyphHeight(), fresh: true, advance: cfg.LineAdvance()}
}

// next 在绘制完一行后决定是否推进。页首的空白行不占用纵向空间；
// 一旦发生过推进，之后的空白行照常占一行。
func (c *cursor) next(line layout.Line) {
	if !line.Blank() || !c.fresh {
		c.fresh = false
		c.y += c.advance
	}
}

func drawLine(s Surface, m layout.Metrics, cfg layout.Config, y int, text string) error {
	switch cfg.Align() {
	case layout.AlignJustify:
		return drawJustified(s, m, cfg, y, text)
	case layout.AlignRight:
		w, err := measure(m, text)
		if err != nil {
			return err
		}
		return drawText(s, cfg.Width()-cfg.GlyphWidth()-w, y, text, cfg.Foreground())
	case layout.AlignCenter:
		w, err := measure(m, text)
		if err != nil {
			return err
		}
		return drawText(s, floorDiv(cfg.Width()-w, 2), y, text, cfg.Foreground())
	default:
		return drawText(s, cfg.GlyphWidth(), y, text, cfg.Foreground())
	}
}

// drawJustified 把单词之间的剩余宽度平均分配，使多词行两端对齐到宽度预算。
func drawJustified(s Surface, m layout.Metrics, cfg layout.Config, y int, text string) error {
	words := strings.Fields(text)
	textWidth, err := measure(m, strings.Join(words, ""))
	if err != nil {
		return err
	}
	extra := 0
	if len(words) > 1 {
		extra = int(math.Floor((cfg.MaxLineWidth() - float64(textWidth)) / float64(len(words)-1)))
	}
	x := cfg.GlyphWidth()
	for _, word := range words {
		if err := drawText(s, x, y, word, cfg.Foreground()); err != nil {
			return err
		}
		w, err := measure(m, word)
		if err != nil {
			return err
		}
		x += w + extra
	}
	return nil
}

func drawText(s Surface, x, y int, text string, c layout.Color) error {
	if err := s.DrawText(x, y, text, c); err != nil {
		return fmt.Errorf("绘制文本 %q 失败: %w", text, err)
	}
	return nil
}

func measure(m layout.Metrics, text string) (int, error) {
	w, _, err := m.Measure(text)
	if err != nil {
		return 0, fmt.Errorf("测量文本 %q 失败: %w", text, err)
	}
	return w, nil
}

// floorDiv 与整数向下取整除法一致（负数同样向下取整）。
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
