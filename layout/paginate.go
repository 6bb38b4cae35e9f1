package layout

import (
	"fmt"
	"strings"
)

// Paginate 把文本折行并分页。折行与分页在同一遍扫描中交替完成：
// 每产生一条物理行就推进纵向计数器，并立即检查是否需要换页。
//
// 除强制放入的单个超长单词外，每条物理行的宽度都不超过 cfg.MaxLineWidth()。
// 返回的 Document 至少包含一页（空文本得到一页零行）。
// 文本应已完成（可选的）排版规范化；Metrics 的错误原样向上传递。
func Paginate(text string, cfg Config, m Metrics) (*Document, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少字形度量 Metrics")
	}
	collector := newPageCollector(cfg)
	for _, logical := range splitLines(text) {
		if err := wrapLine(fixSpaces(logical), cfg, m, collector.add); err != nil {
			return nil, err
		}
	}
	return collector.document(), nil
}

// wrapLine 把一条逻辑行转换为若干物理行，并按顺序交给 emit。
func wrapLine(line string, cfg Config, m Metrics, emit func(Line)) error {
	limit := cfg.MaxLineWidth()
	w, err := measureWidth(m, line)
	if err != nil {
		return err
	}
	if float64(w) <= limit {
		emit(Line{Content: line, Width: w})
		return nil
	}

	words := strings.Split(line, " ")
	for i := 0; i < len(words); {
		var b strings.Builder
		for i < len(words) {
			w, err := measureWidth(m, b.String()+words[i])
			if err != nil {
				return err
			}
			if float64(w) > limit {
				break
			}
			b.WriteString(words[i])
			b.WriteString(" ")
			i++
		}
		if b.Len() == 0 {
			// 空行上连一个词都放不下：强制放入该词，允许溢出。
			forced := words[i]
			i++
			w, err := measureWidth(m, forced)
			if err != nil {
				return err
			}
			emit(Line{Content: forced, Width: w, Overflow: float64(w) > limit})
			continue
		}
		content := b.String()
		w, err := measureWidth(m, content)
		if err != nil {
			return err
		}
		emit(Line{Content: content, Width: w})
	}
	return nil
}

func measureWidth(m Metrics, text string) (int, error) {
	w, _, err := m.Measure(text)
	if err != nil {
		return 0, fmt.Errorf("测量文本 %q 失败: %w", text, err)
	}
	return w, nil
}

// pageCollector 是一次 Paginate 调用内部的折叠状态，不在调用之间共享。
type pageCollector struct {
	cfg   Config
	pages []Page
	lines []Line
	textY int
}

func newPageCollector(cfg Config) *pageCollector {
	return &pageCollector{
		cfg:   cfg,
		textY: cfg.GlyphHeight(),
	}
}

// add 追加一条物理行；纵向计数器超过页内容高度时结束当前页。
func (pc *pageCollector) add(line Line) {
	pc.lines = append(pc.lines, line)
	pc.textY += pc.cfg.LineAdvance()
	if pc.textY > pc.cfg.MaxContentHeight() {
		pc.textY = pc.cfg.GlyphHeight()
		pc.pages = append(pc.pages, Page{Lines: pc.lines})
		pc.lines = nil
	}
}

// document 收尾：剩余的行（即使为空）总是组成最后一页。
func (pc *pageCollector) document() *Document {
	lines := pc.lines
	if lines == nil {
		lines = []Line{}
	}
	pages := append(pc.pages, Page{Lines: lines})
	return &Document{Pages: pages}
}
