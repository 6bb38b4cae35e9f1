package renderer

import (
	"errors"
	"image"

	"github.com/ByLCY/pagecast/layout"
)

var ErrNilBackend = errors.New("renderer: backend is nil")

// Backend 同时提供字形度量与绘制能力，例如 canvas 或 raster 实现。
type Backend interface {
	layout.Metrics
	// NewSurface 创建一张填充了背景色的新画布。
	NewSurface(width, height int, background layout.Color) (Surface, error)
}

// Surface 是一张可绘制文本的画布。(x, y) 为文本行框的左上角。
type Surface interface {
	DrawText(x, y int, text string, c layout.Color) error
	Image() image.Image
	Size() (width, height int)
}
