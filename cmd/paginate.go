package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagecast/layout"
)

var paginateJSON bool

var paginateCmd = &cobra.Command{
	Use:   "paginate [FILE]",
	Short: "show how text is wrapped and paginated",
	Long:  `paginate prints the physical lines of every page without rendering images.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		raw, err := readText(cmd, args)
		if err != nil {
			return err
		}
		doc, err := s.engine.Paginate(s.text(raw), s.profile.Typography)
		if err != nil {
			return err
		}
		if paginateJSON {
			return layout.WriteJSON(cmd.OutOrStdout(), doc)
		}
		return printDocument(cmd.OutOrStdout(), doc, s.engine.Config())
	},
}

func printDocument(w io.Writer, doc *layout.Document, lc layout.Config) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	if _, err := bold.Fprintf(w, "%d page(s), %d line(s), max line width %.1fpx\n", doc.PageCount(), doc.LineCount(), lc.MaxLineWidth()); err != nil {
		return err
	}
	for i, p := range doc.Pages {
		if _, err := cyan.Fprintf(w, "page %d\n", i+1); err != nil {
			return err
		}
		for j, line := range p.Lines {
			content := strings.TrimRight(line.Content, " ")
			num := faint.Sprintf("%3d", j+1)
			width := faint.Sprintf("%4dpx", line.Width)
			if line.Overflow {
				content = yellow.Sprintf("%s (overflow)", content)
			}
			if _, err := fmt.Fprintf(w, "%s %s  %s\n", num, width, content); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(paginateCmd)
	registerStyleFlags(paginateCmd)
	paginateCmd.Flags().BoolVarP(&paginateJSON, "json", "", false, "print the layout as JSON")
}
