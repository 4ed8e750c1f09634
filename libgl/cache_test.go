package libgl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBinaryCachePutGet(t *testing.T) {
	cache := NewBinaryCache(filepath.Join(t.TempDir(), "nested", "cache"), "vendor\nrenderer\n4.5")
	key := cache.Key("vertex source", "fragment source")

	if _, _, ok := cache.Get(key); ok {
		t.Fatal("hit on empty cache")
	}

	binary := bytes.Repeat([]byte("program binary "), 100)
	if err := cache.Put(key, 0x8e21, binary); err != nil {
		t.Fatal(err)
	}

	format, data, ok := cache.Get(key)
	if !ok {
		t.Fatal("miss after put")
	}
	if format != 0x8e21 {
		t.Errorf("format = %#x, want 0x8e21", format)
	}
	if !bytes.Equal(data, binary) {
		t.Errorf("binary changed in cache: got %d bytes, want %d", len(data), len(binary))
	}

	info, err := os.Stat(cache.path(key))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= int64(len(binary)) {
		t.Errorf("entry of %d bytes is not compressed (%d raw)", info.Size(), len(binary))
	}
}

func TestBinaryCacheKey(t *testing.T) {
	a := NewBinaryCache("", "driver a")
	b := NewBinaryCache("", "driver b")

	if a.Key("x", "y") != a.Key("x", "y") {
		t.Error("key is not deterministic")
	}
	if a.Key("x", "y") == b.Key("x", "y") {
		t.Error("key does not depend on the driver")
	}
	if a.Key("xy") == a.Key("x", "y") {
		t.Error("source boundaries do not affect the key")
	}
	if a.Key("x", "y") == a.Key("y", "x") {
		t.Error("source order does not affect the key")
	}
}

func TestBinaryCacheExpiry(t *testing.T) {
	cache := NewBinaryCache(t.TempDir(), "driver")
	key := cache.Key("source")
	if err := cache.Put(key, 1, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	cache.now = func() time.Time { return time.Now().Add(CacheMaxAge + time.Hour) }
	if _, _, ok := cache.Get(key); ok {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(cache.path(key)); !os.IsNotExist(err) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestBinaryCacheCorruptEntry(t *testing.T) {
	cache := NewBinaryCache(t.TempDir(), "driver")
	key := cache.Key("source")
	if err := os.WriteFile(cache.path(key), []byte{1, 0, 0, 0, 'n', 'o', 't', ' ', 'l', 'z', '4'}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := cache.Get(key); ok {
		t.Error("corrupt entry returned")
	}
	if _, err := os.Stat(cache.path(key)); !os.IsNotExist(err) {
		t.Errorf("corrupt entry not removed: %v", err)
	}
}
