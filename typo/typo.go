// Package typo 实现排版规范化：引号、破折号、省略号、不换行空格与数字分组。
// 规则按逻辑行应用，行终止符原样保留。
package typo

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/pagecast/layout"
)

const (
	nbsp  = "\u00a0"
	nnbsp = "\u202f"
)

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

var (
	reSpaces    = regexp.MustCompile(`(\S)[ \t]{2,}`)
	reDash      = regexp.MustCompile(`[ \t\x{00a0}]+(?:--?|–|—)[ \t]+`)
	reLeadDash  = regexp.MustCompile(`^(?:--?|–|—)[ \t]+`)
	reSigns     = regexp.MustCompile(`(?i)\((c|r|tm)\)`)
	reShortWord = regexp.MustCompile(`(^|[ \t\x{00a0}(«“„])(\p{L}{1,2}) `)
	reNumero    = regexp.MustCompile(`№[ \t]*(\d)`)
	reNumber    = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

var signs = map[string]string{"c": "©", "r": "®", "tm": "™"}

// Normalizer 是某一语言的排版规则集合，可并发使用。
type Normalizer struct {
	lang       language.Tag
	openQuote  string
	closeQuote string
	dash       string // 行内破折号（含两侧空格）
	leadDash   string // 对话行首的破折号
	shortWords bool   // 短词后插入不换行空格
}

var _ layout.Normalizer = (*Normalizer)(nil)

// New 为最接近 tag 的已支持语言（ru、en）创建规则集，无法匹配时使用俄语规则。
func New(tag language.Tag) *Normalizer {
	_, idx, conf := matcher.Match(tag)
	if conf != language.No && supported[idx] == language.English {
		return &Normalizer{
			lang:      language.English,
			openQuote: "“", closeQuote: "”",
			dash:     " — ",
			leadDash: "— ",
		}
	}
	return &Normalizer{
		lang:      language.Russian,
		openQuote: "«", closeQuote: "»",
		dash:       nbsp + "— ",
		leadDash:   "—" + nbsp,
		shortWords: true,
	}
}

// ForLanguage 解析 BCP 47 语言标签，空串使用俄语。
func ForLanguage(lang string) (*Normalizer, error) {
	if strings.TrimSpace(lang) == "" {
		return New(language.Russian), nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("无法解析语言 %q: %w", lang, err)
	}
	return New(tag), nil
}

func (n *Normalizer) Language() language.Tag { return n.lang }

// Normalize 规范化文本。结果不保证幂等，每个请求只应调用一次。
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFC.String(text)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = n.line(line)
	}
	return strings.Join(lines, "\n")
}

func (n *Normalizer) line(s string) string {
	s = reSpaces.ReplaceAllString(s, "$1 ")
	s = strings.ReplaceAll(s, "...", "…")
	s = reLeadDash.ReplaceAllLiteralString(s, n.leadDash)
	s = reDash.ReplaceAllLiteralString(s, n.dash)
	s = n.quotes(s)
	s = reSigns.ReplaceAllStringFunc(s, func(m string) string {
		return signs[strings.ToLower(strings.Trim(m, "()"))]
	})
	s = reNumero.ReplaceAllString(s, "№"+nbsp+"$1")
	if n.shortWords {
		// 相邻短词的匹配会互相重叠，重复替换直到不再变化。
		for {
			next := reShortWord.ReplaceAllString(s, "$1$2"+nbsp)
			if next == s {
				break
			}
			s = next
		}
	}
	return reNumber.ReplaceAllStringFunc(s, groupThousands)
}

// quotes 把直引号替换为成对的弯引号：行首、空白或左括号之后为开引号，其余为闭引号。
func (n *Normalizer) quotes(s string) string {
	if !strings.Contains(s, `"`) {
		return s
	}
	var b strings.Builder
	prev := ' '
	for _, r := range s {
		if r != '"' {
			b.WriteRune(r)
			prev = r
			continue
		}
		if unicode.IsSpace(prev) || strings.ContainsRune("([{«“„", prev) {
			b.WriteString(n.openQuote)
		} else {
			b.WriteString(n.closeQuote)
		}
		prev = r
	}
	return b.String()
}

// groupThousands 在五位及以上的整数部分每三位插入窄不换行空格。
func groupThousands(num string) string {
	intPart, frac := num, ""
	if i := strings.IndexAny(num, ".,"); i >= 0 {
		intPart, frac = num[:i], num[i:]
	}
	if len(intPart) < 5 {
		return num
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(nnbsp)
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
