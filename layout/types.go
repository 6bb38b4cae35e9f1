package layout

import (
	"image/color"
	"strings"
)

// 该文件定义分页结果的数据结构，供排版、渲染与调试 JSON 共用。

// Document 是一次排版请求的全部页面，构建完成后不再修改。
type Document struct {
	Pages []Page `json:"pages"`
}

// Page 按自上而下的绘制顺序保存物理行。
type Page struct {
	Lines []Line `json:"lines"`
}

// Line 表示一条物理行。
// Overflow 仅在单个超长单词被强制放入一行时为 true，这是宽度预算唯一允许的例外。
type Line struct {
	Content  string `json:"content"`
	Width    int    `json:"width"`
	Overflow bool   `json:"overflow,omitempty"`
}

// Blank 判断该行是否只包含空白字符。
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Content) == ""
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ToRGBA converts c to an opaque color.RGBA, clamping out-of-range channels.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: clampByte(c.R), G: clampByte(c.G), B: clampByte(c.B), A: 0xff}
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

var (
	Black = Color{R: 0, G: 0, B: 0}
	White = Color{R: 255, G: 255, B: 255}
)

// Align 是物理行在页面上的水平对齐方式。
type Align string

const (
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// ParseAlign 解析对齐方式，无法识别的取值一律回退为 left。
func ParseAlign(v string) Align {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "right", "end":
		return AlignRight
	case "center", "centre":
		return AlignCenter
	case "justify", "justified":
		return AlignJustify
	default:
		return AlignLeft
	}
}
