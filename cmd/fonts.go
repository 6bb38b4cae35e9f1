package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagecast/fonts"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "list available font families",
	Long:  `fonts lists the built-in font families and the custom fonts configured in the config file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		custom := cfg.FontPaths()
		r := fonts.Resolver{Custom: custom}
		green := color.New(color.FgGreen)
		w := cmd.OutOrStdout()
		for _, name := range r.Names() {
			if path, ok := custom[name]; ok {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", name, path); err != nil {
					return err
				}
				continue
			}
			label := "builtin"
			if name == fonts.Default {
				label = green.Sprint("builtin (default)")
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\n", name, label); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fontsCmd)
}
