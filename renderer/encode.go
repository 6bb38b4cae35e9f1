package renderer

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// EncodePNG 将画布编码为 PNG 写入 w。
func EncodePNG(w io.Writer, s Surface) error {
	if s == nil {
		return fmt.Errorf("renderer: surface is nil")
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return nil
}

// WritePNG 将画布写入 PNG 文件。
func WritePNG(path string, s Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件 %s 失败: %w", path, err)
	}
	if err := EncodePNG(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
