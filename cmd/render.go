package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagecast/layout"
	"github.com/ByLCY/pagecast/renderer"
)

var (
	outDir     string
	page       string
	workers    int
	watch      bool
	layoutJSON string
	progress   bool

	stopProgress = func() {}
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE]",
	Short: "render text as PNG pages",
	Long:  `render wraps and paginates the text of FILE (or stdin) and writes every requested page as page-NNN.png.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stopProgress = func() {}
		if progress {
			h, err := newProgressHandler(colorable.NewColorableStderr(), logger.Handler())
			if err != nil {
				return err
			}
			logger = slog.New(h)
			stopProgress = h.stop
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if err := renderOnce(cmd, s, args); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch requires an input file")
		}
		return watchFile(cmd.Context(), args[0], func() error {
			return renderOnce(cmd, s, args)
		})
	},
}

func renderOnce(cmd *cobra.Command, s *session, args []string) (err error) {
	defer func() {
		stopProgress()
		err = errors.WithStack(err)
	}()
	raw, err := readText(cmd, args)
	if err != nil {
		return err
	}
	start := time.Now()
	doc, err := s.engine.Paginate(s.text(raw), s.profile.Typography)
	if err != nil {
		return err
	}
	if layoutJSON != "" {
		if err := layout.WriteDebugJSON(doc, layoutJSON); err != nil {
			return err
		}
	}
	pages, err := pageToPages(page, doc.PageCount())
	if err != nil {
		return err
	}

	dir := outDir
	if dir == "" {
		dir = cfg.Resolve(cfg.Output)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	n := workers
	if !cmd.Flags().Changed("workers") {
		n = defaultWorkers()
	}
	surfaces, err := s.engine.RenderPages(cmd.Context(), doc, pagesToIndexes(pages), n)
	if err != nil {
		return err
	}
	for i, surface := range surfaces {
		path := filepath.Join(dir, fmt.Sprintf("page-%03d.png", pages[i]))
		if err := renderer.WritePNG(path, surface); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	logger.Info("rendered",
		slog.Int("pages", len(surfaces)),
		slog.Int("total_pages", doc.PageCount()),
		slog.String("out", dir),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// watchFile 在文件被写入或替换时调用 fn，直到 ctx 结束。
// 监听的是所在目录，编辑器以重命名方式保存文件时也能收到事件。
func watchFile(ctx context.Context, path string, fn func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Info("watching for changes", slog.String("file", abs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("file changed", slog.String("op", ev.Op.String()))
			if err := fn(); err != nil {
				logger.Error("render failed", slog.String("error", err.Error()))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	registerStyleFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory")
	renderCmd.Flags().StringVarP(&page, "page", "p", "", "pages to render (e.g. 1,3-5)")
	renderCmd.Flags().IntVarP(&workers, "workers", "w", 0, "pages rendered concurrently (0: unlimited)")
	renderCmd.Flags().BoolVarP(&watch, "watch", "", false, "re-render when FILE changes")
	renderCmd.Flags().BoolVarP(&progress, "progress", "", false, "show rendering progress on stderr")
	renderCmd.Flags().StringVarP(&layoutJSON, "layout-json", "", "", "write the page layout as JSON to this file")
}
