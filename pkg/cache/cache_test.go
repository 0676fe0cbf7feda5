package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "graph"); err != nil || hit {
		t.Fatalf("empty cache Get = hit %v err %v", hit, err)
	}

	if err := c.Set(ctx, "graph", []byte(`{"nodes":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "graph")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v err %v", hit, err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("data = %s", data)
	}

	if err := c.Delete(ctx, "graph"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "graph"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "graph"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL entry should not expire")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir missing after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.HTTPKey("csv", "https://example.org/a.csv"); got != "http:csv:https://example.org/a.csv" {
		t.Errorf("HTTPKey unexpected: %s", got)
	}

	dk1 := k.DatasetKey("abc", DatasetKeyOpts{Delimiter: ","})
	dk2 := k.DatasetKey("abc", DatasetKeyOpts{Delimiter: ";"})
	if dk1 == dk2 {
		t.Error("Different delimiters should produce different dataset keys")
	}
	if !strings.HasPrefix(dk1, KeyTypeDataset+":") {
		t.Errorf("DatasetKey prefix: %s", dk1)
	}

	lk1 := k.LayoutKey("g", LayoutKeyOpts{Width: 800, Iterations: 600})
	lk2 := k.LayoutKey("g", LayoutKeyOpts{Width: 800, Iterations: 100})
	if lk1 == lk2 {
		t.Error("Different iteration counts should produce different layout keys")
	}

	ak1 := k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg", Selection: "node_click:A"})
	if ak1 == ak2 {
		t.Error("Different selections should produce different artifact keys")
	}
	if ak1 != k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestNamespacedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewNamespacedKeyer(inner, "tenant")

	if got, want := k.HTTPKey("csv", "x"), "tenant:"+inner.HTTPKey("csv", "x"); got != want {
		t.Errorf("HTTPKey = %s, want %s", got, want)
	}
	if got, want := k.LayoutKey("h", LayoutKeyOpts{}), "tenant:"+inner.LayoutKey("h", LayoutKeyOpts{}); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
	if !strings.HasPrefix(NewNamespacedKeyer(nil, "p").DatasetKey("h", DatasetKeyOpts{}), "p:dataset:") {
		t.Error("nil inner keyer should default to DefaultKeyer")
	}
}

func TestConfigKeyer(t *testing.T) {
	plain := Config{}.Keyer()
	if _, ok := plain.(DefaultKeyer); !ok {
		t.Errorf("Keyer() without namespace = %T, want DefaultKeyer", plain)
	}
	scoped := Config{Namespace: "staging"}.Keyer()
	if got, want := scoped.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}), "staging:"+plain.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("empty backend should open a FileCache, got %T", c)
	}

	c, err = Open(ctx, Config{Backend: BackendNone})
	if err != nil {
		t.Fatalf("Open none: %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("none backend should open a NullCache, got %T", c)
	}

	if _, err := Open(ctx, Config{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend err = %v", err)
	}
}
