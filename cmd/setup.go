package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagecast/binding"
	"github.com/ByLCY/pagecast/fonts"
	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/profile"
	"github.com/ByLCY/pagecast/renderer"
	canvasrenderer "github.com/ByLCY/pagecast/renderer/canvas"
	ggrenderer "github.com/ByLCY/pagecast/renderer/gg"
	"github.com/ByLCY/pagecast/renderer/raster"
	"github.com/ByLCY/pagecast/typo"
)

// styleFlags 是 render 与 paginate 共用的档案覆盖参数。
type styleFlags struct {
	align       string
	orientation string
	size        string
	font        string
	color       string
	bgcolor     string
	language    string
	typo        bool
	noTypo      bool
	backend     string
	data        string
}

var style styleFlags

// 命令行参数与档案设置的对应关系。
var profileFlags = []struct{ flag, key string }{
	{"align", "align"},
	{"orientation", "orientation"},
	{"size", "size"},
	{"font", "font"},
	{"color", "color"},
	{"bgcolor", "background"},
	{"language", "language"},
}

func registerStyleFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&style.align, "align", "", "", "text alignment (left, right, center, justify)")
	f.StringVarP(&style.orientation, "orientation", "", "", "canvas orientation (square, vertical, horizontal, stories)")
	f.StringVarP(&style.size, "size", "", "", "font size (XS, S, M, L, XL or a length like 40px)")
	f.StringVarP(&style.font, "font", "", "", "font family name or font file path")
	f.StringVarP(&style.color, "color", "", "", "text color (#rrggbb)")
	f.StringVarP(&style.bgcolor, "bgcolor", "", "", "background color (#rrggbb)")
	f.StringVarP(&style.language, "language", "", "", "typography language (ru, en)")
	f.BoolVarP(&style.typo, "typo", "", false, "enable typographic normalization")
	f.BoolVarP(&style.noTypo, "no-typo", "", false, "disable typographic normalization")
	f.StringVarP(&style.backend, "backend", "", "", "rendering backend (canvas, raster, gg)")
	f.StringVarP(&style.data, "data", "", "", "JSON data for ${path} placeholders (or @file)")
}

// session 是一次命令执行所需的全部已解析状态。
type session struct {
	profile profile.Profile
	engine  *renderer.Engine
	data    any
}

func newSession(cmd *cobra.Command) (_ *session, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	p, err := selectProfile(cmd)
	if err != nil {
		return nil, err
	}

	resolver := fonts.Resolver{Custom: cfg.FontPaths()}
	fontData, err := resolver.Load(p.Font)
	if err != nil {
		return nil, err
	}
	backendName := style.backend
	if backendName == "" {
		backendName = cfg.Backend
	}
	b, err := newBackend(backendName, fontData, p.SizePx())
	if err != nil {
		return nil, err
	}
	lc, err := layout.NewConfig(p.Options(), b)
	if err != nil {
		return nil, err
	}

	lang := p.Language
	if lang == "" {
		lang = cfg.Language
	}
	n, err := typo.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	e, err := renderer.New(lc, b, renderer.WithNormalizer(n), renderer.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	data, err := loadData(style.data)
	if err != nil {
		return nil, err
	}
	logger.Debug("session ready",
		slog.String("profile", p.Name),
		slog.String("font", p.Font),
		slog.Float64("size_px", p.SizePx()),
		slog.String("backend", backendName),
		slog.Int("glyph_width", lc.GlyphWidth()),
		slog.Int("glyph_height", lc.GlyphHeight()),
	)
	return &session{profile: p, engine: e, data: data}, nil
}

// selectProfile 读取档案文件，选出档案并应用命令行覆盖。
func selectProfile(cmd *cobra.Command) (profile.Profile, error) {
	set := profile.NewSet()
	if path := cfg.ProfilesPath(); path != "" {
		s, err := profile.Load(path)
		if err != nil {
			return profile.Profile{}, err
		}
		set = s
	}
	name := profileName
	if name == "" {
		name = cfg.Profile
	}
	p, err := set.Lookup(name)
	if err != nil {
		return profile.Profile{}, err
	}

	flags := cmd.Flags()
	for _, pf := range profileFlags {
		if !flags.Changed(pf.flag) {
			continue
		}
		v, err := flags.GetString(pf.flag)
		if err != nil {
			return profile.Profile{}, err
		}
		if err := p.Set(pf.key, v); err != nil {
			return profile.Profile{}, fmt.Errorf("--%s: %w", pf.flag, err)
		}
	}
	if flags.Changed("typo") {
		p.Typography = style.typo
	}
	if style.noTypo {
		p.Typography = false
	}
	return p, nil
}

func newBackend(name string, fontData []byte, sizePx float64) (renderer.Backend, error) {
	switch strings.ToLower(name) {
	case "", "canvas":
		return canvasrenderer.New(fontData, sizePx)
	case "raster":
		return raster.NewTrueType(fontData, sizePx)
	case "gg":
		return ggrenderer.NewTrueType(fontData, sizePx)
	default:
		return nil, fmt.Errorf("unknown backend %q (canvas, raster or gg)", name)
	}
}

// loadData 解析 --data：直接的 JSON 文本，或以 @ 开头的 JSON 文件路径。
func loadData(v string) (any, error) {
	if v == "" {
		return nil, nil
	}
	raw := []byte(v)
	if path, ok := strings.CutPrefix(v, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
		}
		raw = b
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data JSON: %w", err)
	}
	return data, nil
}

// readText 读取输入文件，没有参数或参数为 "-" 时读取标准输入。
func readText(cmd *cobra.Command, args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

// text 返回插值后的消息文本。
func (s *session) text(raw string) string {
	if s.data == nil {
		return raw
	}
	return binding.Interpolate(raw, s.data)
}

func defaultWorkers() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
