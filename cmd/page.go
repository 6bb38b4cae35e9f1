package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// pageToPages 解析 1 起始的页码范围，例如 "3"、"1,3-5"、"3-"、"-2"；为空时返回全部页。
func pageToPages(page string, total int) ([]int, error) {
	if page == "" {
		// If no page is specified, return all pages
		pages := make([]int, total)
		for i := 0; i < total; i++ {
			pages[i] = i + 1
		}
		return pages, nil
	}

	var result []int
	for _, part := range strings.Split(page, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, "-") {
			pageNum, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", part)
			}
			if pageNum < 1 || pageNum > total {
				return nil, fmt.Errorf("page number out of range: %d (total pages: %d)", pageNum, total)
			}
			result = append(result, pageNum)
			continue
		}

		start, end, _ := strings.Cut(part, "-")
		startPage, endPage := 1, total
		var err error
		if start != "" {
			if startPage, err = strconv.Atoi(start); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", start)
			}
		}
		if end != "" {
			if endPage, err = strconv.Atoi(end); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", end)
			}
		}
		if startPage < 1 || startPage > total || endPage < 1 || endPage > total || startPage > endPage {
			return nil, fmt.Errorf("invalid page range: %s (total pages: %d)", part, total)
		}
		for i := startPage; i <= endPage; i++ {
			result = append(result, i)
		}
	}
	return result, nil
}

// pagesToIndexes 把 1 起始的页码转为 0 起始的下标。
func pagesToIndexes(pages []int) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = p - 1
	}
	return out
}
