package libgl

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestShaderWatcher(t *testing.T) {
	dir := t.TempDir()
	sw, err := NewShaderWatcher(dir, 20*time.Millisecond)
	if err != nil {
		t.Skipf("file watching unavailable: %v", err)
	}
	defer sw.Close()

	path := filepath.Join(dir, "triangle.frag")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("#version 450 core\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case name := <-sw.Changes():
		if name != "triangle.frag" {
			t.Errorf("change = %q, want triangle.frag", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case name := <-sw.Changes():
		t.Errorf("repeated writes were not merged, got second change %q", name)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShaderWatcherClose(t *testing.T) {
	sw, err := NewShaderWatcher(t.TempDir(), 0)
	if err != nil {
		t.Skipf("file watching unavailable: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-sw.Changes(); ok {
		t.Error("changes channel still open after Close")
	}
	if err := sw.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestShaderWatcherMissingDir(t *testing.T) {
	if _, err := NewShaderWatcher(filepath.Join(t.TempDir(), "missing"), time.Second); err == nil {
		t.Error("expected error for missing directory")
	}
}
