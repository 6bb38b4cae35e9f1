package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolate 将消息文本中的 ${path.to.value} 替换为 data（解码后的 JSON）中的值。
// ${path|fallback} 在路径不存在时使用 fallback；没有 fallback 时保留原占位符。
// 未闭合的 ${ 原样输出。
func Interpolate(text string, data any) string {
	var b strings.Builder
	for {
		open := strings.Index(text, "${")
		if open < 0 {
			break
		}
		end := strings.IndexByte(text[open+2:], '}')
		if end < 0 {
			break
		}
		end += open + 2
		b.WriteString(text[:open])
		b.WriteString(substitute(text[open:end+1], text[open+2:end], data))
		text = text[end+1:]
	}
	b.WriteString(text)
	return b.String()
}

// substitute 求出单个占位符的替换文本，expr 是花括号内的部分。
func substitute(placeholder, expr string, data any) string {
	path, fallback, hasFallback := strings.Cut(expr, "|")
	if v, ok := lookup(data, strings.TrimSpace(path)); ok {
		return format(v)
	}
	if hasFallback {
		return fallback
	}
	return placeholder
}

// step 是路径中的一级：对象键或数组下标。
type step struct {
	key     string
	index   int
	isIndex bool
}

// parsePath 把 a.b[0].c 拆成逐级的 step；格式错误时返回 false。
func parsePath(path string) ([]step, bool) {
	if path == "" {
		return nil, false
	}
	var steps []step
	for path != "" {
		if path[0] == '[' {
			closing := strings.IndexByte(path, ']')
			if closing < 0 {
				return nil, false
			}
			i, err := strconv.Atoi(path[1:closing])
			if err != nil || i < 0 {
				return nil, false
			}
			steps = append(steps, step{index: i, isIndex: true})
			path = path[closing+1:]
		} else {
			n := strings.IndexAny(path, ".[")
			if n < 0 {
				n = len(path)
			}
			if n == 0 {
				return nil, false
			}
			steps = append(steps, step{key: path[:n]})
			path = path[n:]
		}
		if rest, ok := strings.CutPrefix(path, "."); ok {
			if rest == "" {
				return nil, false
			}
			path = rest
		}
	}
	return steps, true
}

func lookup(data any, path string) (any, bool) {
	steps, ok := parsePath(path)
	if !ok {
		return nil, false
	}
	cur := data
	for _, s := range steps {
		switch node := cur.(type) {
		case map[string]any:
			if s.isIndex {
				return nil, false
			}
			v, ok := node[s.key]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !s.isIndex || s.index >= len(node) {
				return nil, false
			}
			cur = node[s.index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// format 以 JSON 的习惯输出标量：整数不带小数点，null 为空串。
func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
