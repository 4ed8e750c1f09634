package libwin

import (
	"fmt"
	"strings"
	"unsafe"

	"hello-gl/internal/config"
	"hello-gl/internal/logger"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/exp/slices"
)

const invalidAddress uintptr = 0xffff_ffff_ffff_ffff

var vendorSuffixes = []string{"3DFX", "PGI", "SGIX", "SGIS", "SGI", "IBM", "HP", "NV", "NVX", "INGR", "ARB", "EXT", "AMD", "ATI", "MESA", "KHR", "INTEL", "GREMEDY", "APPLE", "OES", "SUN", "SUNX"}

// Window is a GLFW window with a current GL context. Methods dispatch to the
// main thread themselves and may be called from the application goroutine.
type Window struct {
	*glfw.Window
	Input *Input
	// KeyboardCaptured, when set, reports that another consumer such as a
	// GUI owns the keyboard. Escape does not close the window meanwhile.
	KeyboardCaptured func() bool
	log              *logger.Logger
	viewportWidth    int
	viewportHeight   int
}

// NewWindow initializes GLFW, opens a window as described by cfg, makes
// its context current and loads the GL functions.
func NewWindow(cfg config.Window, log *logger.Logger) (*Window, error) {
	w := &Window{log: log.Extend("window")}
	err := DoErr(func() error {
		if err := glfw.Init(); err != nil {
			return fmt.Errorf("initialize glfw: %w", err)
		}

		setHints(cfg)
		win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
		if err != nil {
			glfw.Terminate()
			return fmt.Errorf("create window: %w", err)
		}
		win.MakeContextCurrent()
		if cfg.VSync {
			glfw.SwapInterval(1)
		} else {
			glfw.SwapInterval(0)
		}

		if err := gl.InitWithProcAddrFunc(w.procAddress); err != nil {
			win.Destroy()
			glfw.Terminate()
			return fmt.Errorf("load gl functions: %w", err)
		}

		w.Window = win
		w.viewportWidth, w.viewportHeight = win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w.viewportWidth), int32(w.viewportHeight))
		win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
			w.viewportWidth, w.viewportHeight = width, height
			gl.Viewport(0, 0, int32(width), int32(height))
			w.log.Debug().Int("width", width).Int("height", height).Msg("Resized")
		})
		w.Input = NewInput(win, glfw.GetTime())

		w.log.Info().
			Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
			Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
			Msg("Context created")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func setHints(cfg config.Window) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Minor)
	if cfg.Compat {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
}

func (w *Window) procAddress(name string) unsafe.Pointer {
	addr := glfw.GetProcAddress(name)
	if addr == nil {
		vendorSuffix := slices.ContainsFunc(vendorSuffixes, func(suffix string) bool {
			return strings.HasSuffix(name, suffix)
		})
		if !vendorSuffix {
			w.log.Debug().Msgf("Proc missing: %v", name)
		}
		return unsafe.Pointer(invalidAddress)
	}
	return addr
}

// ViewportSize is the framebuffer size the viewport was last set to. Like
// all GL state it is only valid on the main thread, inside Do or a draw
// callback.
func (w *Window) ViewportSize() (width, height int) {
	return w.viewportWidth, w.viewportHeight
}

func (w *Window) ShouldClose() bool {
	var closing bool
	Do(func() { closing = w.Window.ShouldClose() })
	return closing
}

func (w *Window) Close() {
	Do(func() { w.Window.SetShouldClose(true) })
}

// Update processes pending events, samples input, runs draw and presents
// the frame, all on the main thread. Escape requests the window to close.
func (w *Window) Update(draw func()) {
	Do(func() {
		glfw.PollEvents()
		w.Input.Update(w.Window, glfw.GetTime())
		if w.escapePressed() {
			w.Window.SetShouldClose(true)
		}
		draw()
		w.Window.SwapBuffers()
	})
}

func (w *Window) escapePressed() bool {
	if w.KeyboardCaptured != nil && w.KeyboardCaptured() {
		return false
	}
	return w.Input.IsKeyTap(glfw.KeyEscape)
}

// Loop calls Update until the window is asked to close.
func (w *Window) Loop(draw func()) {
	for !w.ShouldClose() {
		w.Update(draw)
	}
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	Do(func() {
		w.Window.Destroy()
		glfw.Terminate()
	})
}
