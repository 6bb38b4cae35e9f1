package layout

import (
	"encoding/json"
	"io"
	"os"
)

// WriteJSON 将分页结果以缩进 JSON 写入 w，便于调试或比对。
func WriteJSON(w io.Writer, doc *Document) error {
	if doc == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// WriteDebugJSON 将分页结果输出到 path。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
