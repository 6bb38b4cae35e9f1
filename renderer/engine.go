package renderer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/pagecast/layout"
)

// Engine 串联规范化、折行分页与页面渲染。
// Engine 本身不持有可变状态，可以被多个 goroutine 同时使用。
type Engine struct {
	cfg        layout.Config
	backend    Backend
	normalizer layout.Normalizer
	logger     *slog.Logger
}

type Option func(*Engine) error

// WithNormalizer 设置排版规范化实现，仅在调用时 normalize 为 true 时使用。
func WithNormalizer(n layout.Normalizer) Option {
	return func(e *Engine) error {
		e.normalizer = n
		return nil
	}
}

// WithLogger 设置日志输出，默认不输出任何日志。
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		e.logger = logger
		return nil
	}
}

func New(cfg layout.Config, b Backend, opts ...Option) (*Engine, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	e := &Engine{
		cfg:     cfg,
		backend: b,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) Config() layout.Config { return e.cfg }

// Paginate 计算整份文档的分页结果而不渲染，用于确定需要渲染多少页。
// normalize 为 true 且配置了 Normalizer 时，先对文本做一次规范化。
func (e *Engine) Paginate(text string, normalize bool) (*layout.Document, error) {
	e.logger.Debug("paginating", slog.Int("bytes", len(text)), slog.Bool("normalize", normalize))
	if normalize {
		if e.normalizer != nil {
			text = e.normalizer.Normalize(text)
		} else {
			e.logger.Debug("normalize requested without normalizer, using raw text")
		}
	}
	doc, err := layout.Paginate(text, e.cfg, e.backend)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("paginated text", slog.Int("pages", doc.PageCount()), slog.Int("lines", doc.LineCount()), slog.Bool("normalize", normalize))
	return doc, nil
}

// Render 每次调用都从头重新分页，只返回第 pageIndex 页的渲染结果。
// 在循环里对所有页面调用 Render 的代价与页数成平方关系；
// 需要全部页面时应先 Paginate 一次，再对每页调用 RenderPage 或使用 RenderPages。
func (e *Engine) Render(text string, normalize bool, pageIndex int) (Surface, error) {
	doc, err := e.Paginate(text, normalize)
	if err != nil {
		return nil, err
	}
	return e.RenderPage(doc, pageIndex)
}

// RenderPage 渲染已分页文档中的一页。
func (e *Engine) RenderPage(doc *layout.Document, pageIndex int) (Surface, error) {
	page, err := doc.Page(pageIndex)
	if err != nil {
		return nil, err
	}
	s, err := RenderPage(page, e.cfg, e.backend)
	if err != nil {
		return nil, fmt.Errorf("渲染第 %d 页失败: %w", pageIndex, err)
	}
	e.logger.Debug("rendered page", slog.Int("index", pageIndex), slog.Int("lines", len(page.Lines)))
	return s, nil
}

// RenderPages 并发渲染 indexes 指定的页面，结果与 indexes 顺序一致。
// indexes 为空时渲染全部页面；workers <= 0 时不限制并发数。
func (e *Engine) RenderPages(ctx context.Context, doc *layout.Document, indexes []int, workers int) ([]Surface, error) {
	if len(indexes) == 0 {
		indexes = make([]int, doc.PageCount())
		for i := range indexes {
			indexes[i] = i
		}
	}
	for _, idx := range indexes {
		if _, err := doc.Page(idx); err != nil {
			return nil, err
		}
	}

	out := make([]Surface, len(indexes))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, idx := range indexes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := e.RenderPage(doc, idx)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
