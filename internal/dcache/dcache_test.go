package dcache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"implex/internal/descriptor"
)

func sampleMap() descriptor.Map {
	return descriptor.Map{
		"collections": {
			{Fragment: "impl `Iterator` for `Deque`", TypePath: []string{"collections", "Deque"}},
			{Fragment: "impl `Clone` for `Deque`", Synthetic: true, TypePath: []string{"collections", "Deque"}},
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	key := Digest{1, 2, 3}
	m := sampleMap()

	if err := c.Put(key, []string{"a.implementors.json"}, m); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get missed a key that was just stored")
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip changed the map:\ngot:  %#v\nwant: %#v", got, m)
	}
}

func TestGetMiss(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	_, ok, err := c.Get(Digest{9})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported a hit in an empty cache")
	}
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	key := Digest{7}
	if err := c.Put(key, nil, sampleMap()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(c.pathFor(key), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}
	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestKeyForTracksContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.implementors.json")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	k1, err := KeyFor([]string{path})
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	k2, err := KeyFor([]string{path})
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if k1 == k2 {
		t.Fatal("key unchanged after file content changed")
	}
}

func TestDropAll(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	key := Digest{5}
	if err := c.Put(key, nil, sampleMap()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry survived DropAll")
	}
}
