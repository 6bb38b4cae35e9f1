package cmd

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
)

var progressDot = color.New(color.FgYellow, color.Bold).Sprint(".")

var _ slog.Handler = (*progressHandler)(nil)

// progressHandler 把渲染进度显示为一行点：分页时显示 spinner，每渲染完一页输出一个点。
// 其余日志原样交给被包装的 handler。
type progressHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	w       io.Writer
	mu      *sync.Mutex
}

func newProgressHandler(w io.Writer, h slog.Handler) (_ *progressHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &progressHandler{handler: h, spinner: s, w: w, mu: &sync.Mutex{}}, nil
}

// Enabled 对所有级别返回 true，进度事件是 debug 级别的。
func (h *progressHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *progressHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	switch r.Message {
	case "paginating":
		h.mu.Lock()
		h.spinner.Enable()
		h.mu.Unlock()
	case "paginated text":
		h.stop()
	case "rendered page":
		h.mu.Lock()
		if h.spinner.Enabled() {
			h.spinner.Disable()
		}
		_, err = io.WriteString(h.w, progressDot)
		h.mu.Unlock()
		if err != nil {
			return err
		}
	case "rendered":
		h.mu.Lock()
		h.spinner.Disable()
		_, err = io.WriteString(h.w, "\n")
		h.mu.Unlock()
		if err != nil {
			return err
		}
	}
	if !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

// stop 停止 spinner。分页或渲染出错时由调用方负责调用。
func (h *progressHandler) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spinner.Enabled() {
		h.spinner.Disable()
	}
}

func (h *progressHandler) spinning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.spinner.Enabled()
}

func (h *progressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &progressHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, w: h.w, mu: h.mu}
}

func (h *progressHandler) WithGroup(name string) slog.Handler {
	return &progressHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, w: h.w, mu: h.mu}
}
