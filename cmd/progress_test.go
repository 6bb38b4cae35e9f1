package cmd

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestProgressHandler(t *testing.T) {
	var progress, inner bytes.Buffer
	h, err := newProgressHandler(&progress, slog.NewTextHandler(&inner, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err != nil {
		t.Fatal(err)
	}
	l := slog.New(h).With("cmd", "render")
	l.Debug("paginated text", "pages", 3)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Debug("rendered page", "index", i)
		}()
	}
	wg.Wait()
	l.Info("rendered", "pages", 3)

	if got := strings.Count(progress.String(), "."); got != 3 {
		t.Errorf("progress = %q, want 3 dots", progress.String())
	}
	if !strings.HasSuffix(progress.String(), "\n") {
		t.Errorf("progress should end with a newline: %q", progress.String())
	}
	if strings.Contains(inner.String(), "rendered page") || strings.Contains(inner.String(), "paginated text") {
		t.Errorf("debug records leaked to inner handler: %q", inner.String())
	}
	if !strings.Contains(inner.String(), "msg=rendered") || !strings.Contains(inner.String(), "cmd=render") {
		t.Errorf("inner handler missing info record: %q", inner.String())
	}
}

func TestProgressHandlerSpinsWhilePaginating(t *testing.T) {
	var progress bytes.Buffer
	h, err := newProgressHandler(&progress, slog.DiscardHandler)
	if err != nil {
		t.Fatal(err)
	}
	l := slog.New(h)
	if h.spinning() {
		t.Fatal("spinner should start disabled")
	}
	l.Debug("paginating", "bytes", 42)
	if !h.spinning() {
		t.Fatal("spinner should run between paginating and paginated text")
	}
	l.Debug("paginated text", "pages", 1)
	if h.spinning() {
		t.Fatal("spinner should stop once pagination is done")
	}

	// 分页失败时没有 "paginated text"，由 stop 收尾。
	l.Debug("paginating", "bytes", 42)
	h.stop()
	if h.spinning() {
		t.Fatal("stop should disable the spinner")
	}
}
