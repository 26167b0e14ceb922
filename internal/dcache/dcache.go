// Package dcache keeps decoded fragment data between sessions so a
// browser start on an unchanged docs tree skips the JSON decode pass.
// It is strictly an optimization: any miss or decode failure means a
// full reload, never an error surfaced to the user.
package dcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"implex/internal/descriptor"
)

// Digest is a SHA-256 value.
type Digest [sha256.Size]byte

// Bump when Payload changes shape; old entries become misses.
const payloadSchema uint16 = 1

// Payload is the cached form of a fully merged implementor map.
type Payload struct {
	Schema  uint16
	Files   []string
	Count   uint32
	Modules descriptor.Map
}

// Cache is a content-addressed store under the user cache directory.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at $XDG_CACHE_HOME/<app> (falling back to
// ~/.cache/<app>).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenAt initializes the cache at an explicit directory. Used by tests
// and by the --cache-dir override.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// KeyFor derives the cache key for a set of fragment files: a SHA-256
// over each path and its content, in slice order. Any changed, added,
// removed, or reordered file changes the key.
func KeyFor(files []string) (Digest, error) {
	h := sha256.New()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return Digest{}, err
		}
		sum := sha256.Sum256(data)
		h.Write([]byte(path))
		h.Write([]byte{0})
		h.Write(sum[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "maps", hex.EncodeToString(key[:])+".mp")
}

// Put atomically writes the merged map for key.
func (c *Cache) Put(key Digest, files []string, m descriptor.Map) error {
	if c == nil {
		return nil
	}
	count, err := safecast.Conv[uint32](m.Count())
	if err != nil {
		return fmt.Errorf("descriptor count overflow: %w", err)
	}
	payload := &Payload{
		Schema:  payloadSchema,
		Files:   files,
		Count:   count,
		Modules: m,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the cached map for key, or ok=false on a miss. A stale
// schema or an unreadable entry is a miss, not an error.
func (c *Cache) Get(key Digest) (descriptor.Map, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil
	}
	if payload.Schema != payloadSchema {
		return nil, false, nil
	}
	return payload.Modules, true, nil
}

// DropAll wipes every cached entry, useful after a format change.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "maps")); err != nil {
		return err
	}
	return nil
}
