package libwin

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// KeySource is the part of *glfw.Window the input state is sampled from.
type KeySource interface {
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
	GetCursorPos() (x, y float64)
}

// Input keeps the key and mouse state of the current and previous frame.
type Input struct {
	curr inputState
	prev inputState
}

type inputState struct {
	time         float32
	cursorPos    mgl32.Vec2
	keys         []bool
	mousebuttons []bool
}

func newInputState() inputState {
	return inputState{
		keys:         make([]bool, glfw.KeyLast+1),
		mousebuttons: make([]bool, glfw.MouseButtonLast+1),
	}
}

func NewInput(src KeySource, time float64) *Input {
	i := &Input{curr: newInputState(), prev: newInputState()}

	i.Update(src, time)
	i.prev.cursorPos = i.curr.cursorPos
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	copy(i.prev.mousebuttons, i.curr.mousebuttons)

	return i
}

func (i *Input) CursorDelta() mgl32.Vec2 {
	return i.curr.cursorPos.Sub(i.prev.cursorPos)
}

func (i *Input) CursorPos() mgl32.Vec2 {
	return i.curr.cursorPos
}

// TimeDelta is the time between the last two updates in seconds.
func (i *Input) TimeDelta() float32 {
	return i.curr.time - i.prev.time
}

// Time is the time of the last update in seconds since GLFW was initialized.
func (i *Input) Time() float32 {
	return i.curr.time
}

func (i *Input) IsKeyDown(key glfw.Key) bool {
	return key >= 0 && int(key) < len(i.curr.keys) && i.curr.keys[key]
}

// IsKeyTap reports a key that went down since the previous update.
func (i *Input) IsKeyTap(key glfw.Key) bool {
	return i.IsKeyDown(key) && !i.prev.keys[key]
}

func (i *Input) IsMouseDown(button glfw.MouseButton) bool {
	return button >= 0 && int(button) < len(i.curr.mousebuttons) && i.curr.mousebuttons[button]
}

func (i *Input) IsMouseTap(button glfw.MouseButton) bool {
	return i.IsMouseDown(button) && !i.prev.mousebuttons[button]
}

func (i *Input) Update(src KeySource, time float64) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := src.GetCursorPos()

	// GLFW key codes start at space, lower values are unused
	for key := int(glfw.KeySpace); key <= int(glfw.KeyLast); key++ {
		keys[key] = src.GetKey(glfw.Key(key)) != glfw.Release
	}

	for button := 0; button <= int(glfw.MouseButtonLast); button++ {
		mousebuttons[button] = src.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
	}

	i.curr = inputState{
		time:         float32(time),
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		keys:         keys,
		mousebuttons: mousebuttons,
	}
}
