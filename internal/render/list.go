// Package render prints implementor listings for non-interactive
// sessions and supplies the fragment-flattening shared with the TUI.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"implex/internal/descriptor"
)

// Options controls listing output.
type Options struct {
	// Color enables ANSI styling; callers resolve TTY detection and
	// --color before rendering.
	Color bool
	// ShowSynthetic includes toolchain-generated implementations.
	ShowSynthetic bool
	// Width truncates fragment lines when positive.
	Width int
}

// SortedModules returns module names in locale-stable display order.
// Display order of descriptors inside a module is never touched; only
// the module index itself is sorted.
func SortedModules(m descriptor.Map) []string {
	names := m.Modules()
	collate.New(language.Und).SortStrings(names)
	return names
}

// List writes one section per module with that module's implementors in
// registered order.
func List(w io.Writer, m descriptor.Map, opts Options) {
	moduleStyle := color.New(color.FgCyan, color.Bold)
	codeStyle := color.New(color.FgYellow)
	synthStyle := color.New(color.Faint)
	if !opts.Color {
		for _, s := range []*color.Color{moduleStyle, codeStyle, synthStyle} {
			s.DisableColor()
		}
	}

	first := true
	for _, module := range SortedModules(m) {
		shown := 0
		for _, d := range m[module] {
			if d.Synthetic && !opts.ShowSynthetic {
				continue
			}
			shown++
		}
		if shown == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s (%d)\n", moduleStyle.Sprint(module), shown)
		for _, d := range m[module] {
			if d.Synthetic && !opts.ShowSynthetic {
				continue
			}
			line := styledFragment(d.Fragment, opts.Color, opts.Width, codeStyle)
			if d.Synthetic {
				line += synthStyle.Sprint("  [synthetic]")
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// styledFragment styles span by span so that width accounting sees
// only visible text, never ANSI escapes.
func styledFragment(fragment string, colored bool, width int, codeStyle *color.Color) string {
	var out string
	used := 0
	for _, s := range Flatten(fragment) {
		text := s.Text
		cut := false
		if width > 0 {
			avail := width - used
			if runewidth.StringWidth(text) > avail {
				text = runewidth.Truncate(text, avail, "…")
				cut = true
			}
			used += runewidth.StringWidth(text)
		}
		if s.Code && colored {
			out += codeStyle.Sprint(text)
		} else {
			out += text
		}
		if cut {
			break
		}
	}
	return out
}
