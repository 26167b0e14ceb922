package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"implex/internal/descriptor"
	"implex/internal/loader"
)

var checkCmd = &cobra.Command{
	Use:   "check [docs-root]",
	Short: "Validate every fragment file under the docs root",
	Long:  `check decodes each implementor fragment on its own and reports structural problems per file, without stopping at the first failure like a normal load does`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}

		okStyle := color.New(color.FgGreen)
		badStyle := color.New(color.FgRed, color.Bold)
		if !s.color {
			okStyle.DisableColor()
			badStyle.DisableColor()
		}

		files, err := loader.ScanDir(s.docsDir, s.cfg.Docs.Pattern)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no fragment files under %s (pattern %q)", s.docsDir, s.cfg.Docs.Pattern)
		}

		out := cmd.OutOrStdout()
		bad := 0
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				bad++
				fmt.Fprintf(out, "%s %s: %v\n", badStyle.Sprint("FAIL"), path, err)
				continue
			}
			m, err := descriptor.DecodeFragment(data)
			if err != nil {
				bad++
				fmt.Fprintf(out, "%s %s: %v\n", badStyle.Sprint("FAIL"), path, err)
				continue
			}
			if !s.quiet {
				fmt.Fprintf(out, "%s %s: %d modules, %d implementors\n",
					okStyle.Sprint("ok"), path, len(m), m.Count())
			}
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d fragment files failed validation", bad, len(files))
		}
		if !s.quiet {
			fmt.Fprintf(out, "%d fragment files ok\n", len(files))
		}
		return nil
	},
}
