package libwin

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeSource struct {
	keys    map[glfw.Key]bool
	buttons map[glfw.MouseButton]bool
	x, y    float64
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: map[glfw.Key]bool{}, buttons: map[glfw.MouseButton]bool{}}
}

func (f *fakeSource) GetKey(key glfw.Key) glfw.Action {
	if f.keys[key] {
		return glfw.Press
	}
	return glfw.Release
}

func (f *fakeSource) GetMouseButton(button glfw.MouseButton) glfw.Action {
	if f.buttons[button] {
		return glfw.Press
	}
	return glfw.Release
}

func (f *fakeSource) GetCursorPos() (float64, float64) {
	return f.x, f.y
}

func TestInputKeys(t *testing.T) {
	src := newFakeSource()
	in := NewInput(src, 1)
	if in.IsKeyDown(glfw.KeySpace) || in.IsKeyTap(glfw.KeySpace) {
		t.Fatal("space reported before press")
	}

	src.keys[glfw.KeySpace] = true
	in.Update(src, 1.5)
	if !in.IsKeyDown(glfw.KeySpace) || !in.IsKeyTap(glfw.KeySpace) {
		t.Error("press not reported as tap")
	}

	in.Update(src, 2)
	if !in.IsKeyDown(glfw.KeySpace) {
		t.Error("held key not down")
	}
	if in.IsKeyTap(glfw.KeySpace) {
		t.Error("held key reported as tap")
	}

	src.keys[glfw.KeySpace] = false
	in.Update(src, 2.5)
	if in.IsKeyDown(glfw.KeySpace) {
		t.Error("released key still down")
	}

	if in.IsKeyDown(glfw.KeyUnknown) || in.IsKeyDown(glfw.KeyLast+1) {
		t.Error("out of range key reported down")
	}
}

func TestInputMouse(t *testing.T) {
	src := newFakeSource()
	in := NewInput(src, 0)

	src.buttons[glfw.MouseButtonLeft] = true
	in.Update(src, 0.1)
	if !in.IsMouseTap(glfw.MouseButtonLeft) {
		t.Error("click not reported as tap")
	}
	in.Update(src, 0.2)
	if !in.IsMouseDown(glfw.MouseButtonLeft) || in.IsMouseTap(glfw.MouseButtonLeft) {
		t.Error("held button reported wrong")
	}
}

func TestInputTimeAndCursor(t *testing.T) {
	src := newFakeSource()
	src.x, src.y = 10, 20
	in := NewInput(src, 3)
	if in.TimeDelta() <= 0 {
		t.Errorf("initial TimeDelta() = %v, want > 0", in.TimeDelta())
	}
	if d := in.CursorDelta(); d != (mgl32.Vec2{}) {
		t.Errorf("initial CursorDelta() = %v, want zero", d)
	}

	src.x, src.y = 15, 18
	in.Update(src, 3.5)
	if got := in.TimeDelta(); got != 0.5 {
		t.Errorf("TimeDelta() = %v, want 0.5", got)
	}
	if got := in.Time(); got != 3.5 {
		t.Errorf("Time() = %v, want 3.5", got)
	}
	if got := in.CursorDelta(); got != (mgl32.Vec2{5, -2}) {
		t.Errorf("CursorDelta() = %v, want [5 -2]", got)
	}
	if got := in.CursorPos(); got != (mgl32.Vec2{15, 18}) {
		t.Errorf("CursorPos() = %v, want [15 18]", got)
	}
}
