package layout

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// runeMetrics 是固定步进的测量实现：每个字符 advance 像素，高度固定。
type runeMetrics struct {
	advance int
	height  int
	calls   int
}

func (m *runeMetrics) Measure(text string) (int, int, error) {
	m.calls++
	return utf8.RuneCountInString(text) * m.advance, m.height, nil
}

// wordMetrics 为指定单词返回固定宽度，其余字符按 advance 计算。
type wordMetrics struct {
	runeMetrics
	words map[string]int
}

func (m *wordMetrics) Measure(text string) (int, int, error) {
	if w, ok := m.words[text]; ok {
		return w, m.height, nil
	}
	total := 0
	for i, part := range strings.Split(text, " ") {
		if i > 0 {
			total += m.advance
		}
		if w, ok := m.words[part]; ok {
			total += w
			continue
		}
		total += utf8.RuneCountInString(part) * m.advance
	}
	return total, m.height, nil
}

var errFontMissing = errors.New("font missing")

type failingMetrics struct{}

func (failingMetrics) Measure(string) (int, int, error) { return 0, 0, errFontMissing }

// square720 is the 720x720 canvas with a 20x30 reference glyph.
func square720() Config {
	cfg, err := NewConfigWithGlyph(Options{Width: 720, Height: 720}, 20, 30)
	if err != nil {
		panic(err)
	}
	return cfg
}
