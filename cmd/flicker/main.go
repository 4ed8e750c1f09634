// Command flicker cycles the clear color through all hues. Space pauses.
package main

import (
	"errors"
	"fmt"
	"os"

	"hello-gl/internal/config"
	"hello-gl/internal/logger"
	"hello-gl/libgl"
	"hello-gl/libutil"
	"hello-gl/libwin"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Parse("Hello world!", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New("flicker", cfg.Log.Level, cfg.Log.NoColor)
	libgl.SetLogger(log)
	libwin.Run(func() { run(cfg, log) })
}

func run(cfg config.Config, log *logger.Logger) {
	base, err := libutil.ParseColor(cfg.Render.ClearColor)
	log.Check(err, "Invalid clear color")
	flicker := libutil.NewFlicker(base, cfg.Render.FlickerSpeed)

	win, err := libwin.NewWindow(cfg.Window, log)
	log.Check(err, "Could not open window")
	defer win.Destroy()

	if cfg.Window.Debug {
		libwin.Do(func() { libgl.EnableDebugOutput(cfg.Window.DebugAbort) })
	}

	win.Loop(func() {
		if win.Input.IsKeyTap(glfw.KeySpace) {
			flicker.Toggle()
			log.Debug().Bool("paused", flicker.Paused).Float32("hue", flicker.Hue()).Msg("Flicker toggled")
		}
		flicker.Advance(win.Input.TimeDelta())

		c := flicker.Color()
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}
