package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"implex/internal/descriptor"
	"implex/internal/observ"
	"implex/internal/registry"
	"implex/internal/render"
)

func init() {
	listCmd.Flags().Bool("synthetic", true, "include toolchain-generated implementations")
	listCmd.Flags().Int("width", 0, "truncate fragment lines (0 = terminal width when a TTY, else off)")
}

var listCmd = &cobra.Command{
	Use:   "list [docs-root]",
	Short: "Print every module's implementors to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		tm := observ.NewTimer()

		// The renderer side is ready before the data arrives, so this
		// session exercises the renderer-first hand-off: Register
		// below delivers synchronously into the armed hook.
		reg := registry.New()
		var delivered descriptor.Map
		if err := reg.InstallHook(func(m descriptor.Map) { delivered = m }); err != nil {
			return err
		}

		m, err := s.loadMap(cmd.Context(), tm)
		if err != nil {
			return err
		}
		err = tm.Track("register", func() (string, error) {
			return "", reg.Register(m)
		})
		if err != nil {
			return err
		}

		width, _ := cmd.Flags().GetInt("width")
		if width == 0 && isTerminal(os.Stdout) {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w - 4
			}
		}
		render.List(cmd.OutOrStdout(), delivered, render.Options{
			Color:         s.color,
			ShowSynthetic: s.showSynthetic(cmd),
			Width:         width,
		})
		s.printTimings(tm)
		return nil
	},
}
