package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"implex/internal/htmlexport"
	"implex/internal/observ"
)

var (
	exportOut   string
	exportTitle string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <docs-root>/implementors.html)")
	exportCmd.Flags().StringVar(&exportTitle, "title", "Implementors", "page title")
}

var exportCmd = &cobra.Command{
	Use:   "export [docs-root]",
	Short: "Write a static HTML implementor index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		tm := observ.NewTimer()

		m, err := s.loadMap(cmd.Context(), tm)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(s.docsDir, "implementors.html")
		}
		err = tm.Track("render", func() (string, error) {
			return out, htmlexport.WriteFile(out, exportTitle, m)
		})
		if err != nil {
			return err
		}
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d modules, %d implementors)\n", out, len(m), m.Count())
		}
		s.printTimings(tm)
		return nil
	},
}
