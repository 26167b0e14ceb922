package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"implex/internal/dcache"
	"implex/internal/descriptor"
	"implex/internal/loader"
	"implex/internal/observ"
	"implex/internal/project"
)

// session carries everything one invocation resolved from flags and
// the implex.toml manifest.
type session struct {
	root    string // tree root holding the manifest
	docsDir string // where the fragment files live
	cfg     project.Config

	jobs    int
	quiet   bool
	timings bool
	noCache bool
	color   bool
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	cfg, err := project.Load(root)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	jobs, _ := flags.GetInt("jobs")
	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	noCache, _ := flags.GetBool("no-cache")

	colorFlag, _ := flags.GetString("color")
	colorValue := cfg.Browser.Color
	if flags.Changed("color") {
		colorValue = colorFlag
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return nil, err
	}

	return &session{
		root:    root,
		docsDir: filepath.Join(root, cfg.Docs.Root),
		cfg:     cfg,
		jobs:    jobs,
		quiet:   quiet,
		timings: timings,
		noCache: noCache,
		color:   shouldColor(mode),
	}, nil
}

// showSynthetic resolves the config default against an optional
// --synthetic override.
func (s *session) showSynthetic(cmd *cobra.Command) bool {
	flags := cmd.Flags()
	if flags.Changed("synthetic") {
		v, _ := flags.GetBool("synthetic")
		return v
	}
	return s.cfg.Browser.ShowSynthetic
}

// loadMap runs the data pipeline: scan, cache probe, decode, merge.
// Every phase lands in tm for --timings.
func (s *session) loadMap(ctx context.Context, tm *observ.Timer) (descriptor.Map, error) {
	var files []string
	err := tm.Track("scan", func() (string, error) {
		var err error
		files, err = loader.ScanDir(s.docsDir, s.cfg.Docs.Pattern)
		return fmt.Sprintf("%d files", len(files)), err
	})
	if err != nil {
		return nil, err
	}

	var cache *dcache.Cache
	var key dcache.Digest
	if !s.noCache {
		if cache, err = dcache.Open("implex"); err != nil {
			// A broken cache dir only costs speed.
			cache = nil
		}
	}
	if cache != nil {
		var cached descriptor.Map
		hit := false
		err = tm.Track("cache", func() (string, error) {
			key, err = dcache.KeyFor(files)
			if err != nil {
				return "", err
			}
			cached, hit, err = cache.Get(key)
			if hit {
				return "hit", err
			}
			return "miss", err
		})
		if err != nil {
			return nil, err
		}
		if hit {
			return cached, nil
		}
	}

	var m descriptor.Map
	err = tm.Track("decode", func() (string, error) {
		var err error
		m, err = loader.LoadFiles(ctx, files, s.jobs)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d implementors", m.Count()), nil
	})
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(key, files, m); err != nil && !s.quiet {
			fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
		}
	}
	return m, nil
}

func (s *session) printTimings(tm *observ.Timer) {
	if s.timings {
		fmt.Fprint(os.Stderr, tm.Summary())
	}
}
