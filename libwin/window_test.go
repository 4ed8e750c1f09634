package libwin

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEscapeCloses(t *testing.T) {
	src := newFakeSource()
	captured := false
	w := &Window{
		Input:            NewInput(src, 0),
		KeyboardCaptured: func() bool { return captured },
	}

	src.keys[glfw.KeyEscape] = true
	w.Input.Update(src, 0.1)
	captured = true
	if w.escapePressed() {
		t.Error("escape closes the window while the keyboard is captured")
	}
	captured = false
	if !w.escapePressed() {
		t.Error("escape does not close the window")
	}

	w.KeyboardCaptured = nil
	w.Input.Update(src, 0.2)
	if w.escapePressed() {
		t.Error("held escape counted as a second press")
	}
}
