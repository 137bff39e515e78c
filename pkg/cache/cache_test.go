package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() hit on a null cache")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestKey(t *testing.T) {
	k1 := Key("layout", 5, map[string]float64{"spacing": 48})
	k2 := Key("layout", 5, map[string]float64{"spacing": 48})
	k3 := Key("layout", 6, map[string]float64{"spacing": 48})
	if k1 != k2 {
		t.Error("Key() is not deterministic")
	}
	if k1 == k3 {
		t.Error("Key() ignored a part")
	}
	if want := len("layout:") + 64; len(k1) != want {
		t.Errorf("len(Key()) = %d, want %d", len(k1), want)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Hash() collided on different inputs")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	clock := time.Unix(0, 0)
	c.now = func() time.Time { return clock }

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), time.Minute)
	if got, ok, _ := c.Get(ctx, "a"); !ok || string(got) != "1" {
		t.Fatalf("Get(a) = %q, %v", got, ok)
	}

	// "b" is now least recent and is evicted by "c".
	c.Set(ctx, "c", []byte("3"), 0)
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Error("Get(b) hit after eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Set(ctx, "d", []byte("4"), time.Second)
	clock = clock.Add(2 * time.Second)
	if _, ok, _ := c.Get(ctx, "d"); ok {
		t.Error("Get(d) hit after expiry")
	}

	// Returned slices are copies.
	got, _, _ := c.Get(ctx, "c")
	got[0] = 'x'
	if again, _, _ := c.Get(ctx, "c"); string(again) != "3" {
		t.Errorf("stored value mutated to %q", again)
	}

	c.Delete(ctx, "c")
	c.Close()
	if c.Len() != 0 {
		t.Errorf("Len() after Close() = %d, want 0", c.Len())
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "layout:1", []byte(`{"n":1}`), 0); err != nil {
		t.Fatal(err)
	}
	if got, ok, err := c.Get(ctx, "layout:1"); err != nil || !ok || string(got) != `{"n":1}` {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	c.Set(ctx, "stale", []byte("x"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, ok, _ := c.Get(ctx, "stale"); ok {
		t.Error("Get() hit an expired entry")
	}

	// A corrupt file is a miss and is removed.
	path := c.path("broken")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{"), 0o644)
	if _, ok, _ := c.Get(ctx, "broken"); ok {
		t.Error("Get() hit a corrupt entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}

	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "layout:1"); ok {
		t.Error("Get() hit after Clear()")
	}
}
