package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"implex/internal/browser"
	"implex/internal/observ"
	"implex/internal/registry"
)

func init() {
	browseCmd.Flags().Bool("synthetic", true, "include toolchain-generated implementations")
}

var browseCmd = &cobra.Command{
	Use:   "browse [docs-root]",
	Short: "Browse implementors in an interactive terminal session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		tm := observ.NewTimer()

		reg := registry.New()
		model := browser.New(s.showSynthetic(cmd))
		p := tea.NewProgram(model, tea.WithAltScreen())

		// Data side. It races the Attach below in either direction;
		// the registry guarantees the map reaches the hook exactly
		// once whichever side finishes first.
		go func() {
			m, err := s.loadMap(cmd.Context(), tm)
			if err != nil {
				browser.ReportLoadError(p, err)
				return
			}
			if err := reg.Register(m); err != nil {
				browser.ReportLoadError(p, err)
			}
		}()

		if err := browser.Attach(reg, p); err != nil {
			return err
		}

		final, err := p.Run()
		if err != nil {
			return err
		}
		if m, ok := final.(*browser.Model); ok && m.Err() != nil {
			return m.Err()
		}
		return nil
	},
}
