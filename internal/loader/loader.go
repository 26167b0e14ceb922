// Package loader is the data-publishing side of the hand-off: it finds
// the descriptor fragments the analysis pipeline left under the docs
// root, decodes them, and merges them into the single map a session
// registers exactly once.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"implex/internal/descriptor"
)

// DefaultPattern matches the fragment files emitted per analysis unit.
const DefaultPattern = "*.implementors.json"

// Options tunes a directory load.
type Options struct {
	// Pattern is the glob matched against file base names; empty means
	// DefaultPattern.
	Pattern string
	// Jobs bounds decode parallelism; <=0 means GOMAXPROCS.
	Jobs int
}

// ScanDir returns the fragment files under root, sorted by path so
// that merge order is deterministic across runs and platforms.
func ScanDir(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return fmt.Errorf("pattern %q: %w", pattern, matchErr)
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// WalkDir visits in lexical order already; keep the guarantee
	// explicit in the contract rather than re-sorting.
	return files, nil
}

// LoadFiles decodes the given fragment files in parallel and merges
// them in slice order. Any decode failure aborts the whole load; a
// session never registers a partially loaded map.
func LoadFiles(ctx context.Context, files []string, jobs int) (descriptor.Map, error) {
	if len(files) == 0 {
		return descriptor.Map{}, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slots are per-file, so goroutines never share an index.
	fragments := make([]descriptor.Map, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			m, err := descriptor.DecodeFragment(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fragments[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(fragments), nil
}

// LoadDir scans root and loads everything it finds. It returns the
// merged map together with the file list that produced it, so callers
// can key caches or report sources.
func LoadDir(ctx context.Context, root string, opts Options) (descriptor.Map, []string, error) {
	files, err := ScanDir(root, opts.Pattern)
	if err != nil {
		return nil, nil, err
	}
	m, err := LoadFiles(ctx, files, opts.Jobs)
	if err != nil {
		return nil, nil, err
	}
	return m, files, nil
}

// Merge combines fragment maps by appending descriptors per module in
// fragment order. Appending (rather than overwriting) is deliberate:
// each analysis unit contributes its own implementors for a shared
// module, and their relative order across units follows the sorted
// file order. Within one unit the declaration order is untouched.
func Merge(fragments []descriptor.Map) descriptor.Map {
	out := descriptor.Map{}
	for _, frag := range fragments {
		for module, descs := range frag {
			out[module] = append(out[module], descs...)
		}
	}
	return out
}
