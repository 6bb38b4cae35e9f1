package layout

import (
	"strings"
	"unicode/utf8"
)

const (
	nnbsp = "\u202f"
	nbsp  = "\u00a0"
)

// fixSpaces 把窄不换行空格替换为普通不换行空格，字体里未必有前者的字形。
// 逐逻辑行在测量前调用一次，"整行放得下"与"按词拆分"两条路径共用。
func fixSpaces(line string) string {
	return strings.ReplaceAll(line, nnbsp, nbsp)
}

// splitLines 按显式换行把文本切成逻辑行。
// 认可的行终止符：\n、\r\n、\r、\v、\f、\x1c-\x1e、U+0085、U+2028、U+2029。
// 末尾的终止符不会额外产生空行；空文本没有逻辑行。
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}
