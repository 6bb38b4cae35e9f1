// Package profile 把 DSL 中的配置档案解析为渲染参数（字体、字号、画布方向、对齐与颜色）。
package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/pagecast/fonts"
	"github.com/ByLCY/pagecast/layout"
)

var ErrUnknownProfile = errors.New("profile: unknown profile")

// Orientation 决定画布尺寸，宽度固定为 720。
type Orientation string

const (
	Square     Orientation = "square"
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
	Stories    Orientation = "stories"
)

const canvasWidth = 720

var orientationHeights = map[Orientation]int{
	Square:     720,
	Vertical:   900,
	Horizontal: 405,
	Stories:    1280,
}

// 命名字号（像素）。
var namedSizes = map[string]float64{
	"XS": 20,
	"S":  30,
	"M":  40,
	"L":  50,
	"XL": 60,
}

// Profile 是一组完整的渲染偏好。
type Profile struct {
	Name        string        `json:"name"`
	Font        string        `json:"font"`
	Size        layout.Length `json:"size"`
	Orientation Orientation   `json:"orientation"`
	Align       layout.Align  `json:"align"`
	Color       layout.Color  `json:"color"`
	Background  layout.Color  `json:"background"`
	Typography  bool          `json:"typography"`
	Language    string        `json:"language,omitempty"`
}

// Default 返回内置的默认档案：goregular 40px，方形画布，左对齐，白底黑字，开启排版规范化。
func Default() Profile {
	return Profile{
		Name:        "default",
		Font:        fonts.Default,
		Size:        layout.Length{Value: namedSizes["M"], Unit: layout.UnitPX},
		Orientation: Square,
		Align:       layout.AlignLeft,
		Color:       layout.Black,
		Background:  layout.White,
		Typography:  true,
	}
}

// SizePx 返回以像素计的字号。
func (p Profile) SizePx() float64 { return p.Size.ToPx() }

// Dimensions 返回画布宽高。
func (p Profile) Dimensions() (int, int) {
	h, ok := orientationHeights[p.Orientation]
	if !ok {
		h = orientationHeights[Square]
	}
	return canvasWidth, h
}

// Options 转换为构造 layout.Config 所需的参数。
func (p Profile) Options() layout.Options {
	w, h := p.Dimensions()
	return layout.Options{
		Width:      w,
		Height:     h,
		Align:      p.Align,
		Background: p.Background,
		Foreground: p.Color,
		Normalize:  p.Typography,
	}
}

// Set 按 key 修改一项设置，DSL 与命令行参数共用这一入口。
func (p *Profile) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "font":
		if value == "" {
			return fmt.Errorf("font 不能为空")
		}
		p.Font = value
	case "size":
		l, err := ParseSize(value)
		if err != nil {
			return err
		}
		p.Size = l
	case "orientation":
		o, err := ParseOrientation(value)
		if err != nil {
			return err
		}
		p.Orientation = o
	case "align":
		p.Align = layout.ParseAlign(value)
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		p.Color = c
	case "background", "bgcolor":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		p.Background = c
	case "typography", "typo":
		b, err := parseSwitch(value)
		if err != nil {
			return err
		}
		p.Typography = b
	case "language":
		p.Language = value
	default:
		return fmt.Errorf("未知设置 %q", key)
	}
	return nil
}

// ParseSize 接受命名字号（XS、S、M、L、XL）或带单位的长度（40、40px、30pt、10mm）。
func ParseSize(value string) (layout.Length, error) {
	if px, ok := namedSizes[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return layout.Length{Value: px, Unit: layout.UnitPX}, nil
	}
	l, err := layout.ParseLength(value)
	if err != nil {
		return layout.Length{}, fmt.Errorf("无法解析字号 %q: %w", value, err)
	}
	if l.ToPx() <= 0 {
		return layout.Length{}, fmt.Errorf("字号必须为正数: %q", value)
	}
	return l, nil
}

func ParseOrientation(value string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := orientationHeights[o]; !ok {
		return "", fmt.Errorf("未知的画布方向 %q（可选 square、vertical、horizontal、stories）", value)
	}
	return o, nil
}

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa，透明度被忽略。
func ParseColor(value string) (layout.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[:6]
	default:
		return layout.Color{}, fmt.Errorf("无法解析颜色 %q", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("无法解析颜色 %q: %w", value, err)
	}
	return layout.Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

// FormatColor 输出 #rrggbb。
func FormatColor(c layout.Color) string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("无法解析开关值 %q（可选 on、off）", value)
}
