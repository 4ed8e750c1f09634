// Command window opens a GL context and clears it to a single color.
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

	log := logger.New("window", cfg.Log.Level, cfg.Log.NoColor)
	libgl.SetLogger(log)
	libwin.Run(func() { run(cfg, log) })
}

func run(cfg config.Config, log *logger.Logger) {
	clearColor, err := libutil.ParseColor(cfg.Render.ClearColor)
	log.Check(err, "Invalid clear color")

	win, err := libwin.NewWindow(cfg.Window, log)
	log.Check(err, "Could not open window")
	defer win.Destroy()

	if cfg.Window.Debug {
		libwin.Do(func() { libgl.EnableDebugOutput(cfg.Window.DebugAbort) })
	}

	win.Loop(func() {
		gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}
