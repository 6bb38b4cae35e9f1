package layout

// Metrics 负责测量文本在选定字体下的像素宽度与代表性字形高度。
// 对同一字体与字号必须是确定性的。
type Metrics interface {
	Measure(text string) (width, height int, err error)
}

// Normalizer 对原始文本做排版规范化（例如介词后的不换行空格）。
// 只在请求开启规范化时调用，每次请求最多调用一次。
type Normalizer interface {
	Normalize(text string) string
}

// NormalizerFunc 把普通函数适配为 Normalizer。
type NormalizerFunc func(string) string

func (f NormalizerFunc) Normalize(text string) string { return f(text) }

// Options 描述构造 Config 所需的画布与样式参数，字形尺寸由 Metrics 测得。
type Options struct {
	Width      int
	Height     int
	Align      Align
	Background Color
	Foreground Color
	Normalize  bool
}
