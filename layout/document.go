package layout

import (
	"errors"
	"fmt"
)

var ErrPageOutOfRange = errors.New("layout: page index out of range")

// PageCount 返回页数，合法的 Document 至少有一页。
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Page 返回第 i 页（从 0 开始）。越界属于调用方违约，返回 ErrPageOutOfRange 而不是空白页。
func (d *Document) Page(i int) (Page, error) {
	if i < 0 || i >= d.PageCount() {
		return Page{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, i, d.PageCount())
	}
	return d.Pages[i], nil
}

// LineCount 返回所有页面上的物理行总数。
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}
