// Command colortriangle draws a triangle with a color per vertex, blended
// across its face.
//
// With --gui a settings overlay edits the clear color, wireframe and
// grayscale modes. With --shaders.dir and --shaders.watch the shaders are
// reloaded whenever their files change.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"hello-gl/internal/config"
	"hello-gl/internal/logger"
	"hello-gl/libgl"
	"hello-gl/libwin"

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
	if cfg.Shaders.Watch && cfg.Shaders.Dir == "" {
		fmt.Fprintln(os.Stderr, "--shaders.watch requires --shaders.dir")
		os.Exit(2)
	}

	log := logger.New("colortriangle", cfg.Log.Level, cfg.Log.NoColor)
	libgl.SetLogger(log)
	libwin.Run(func() { run(cfg, log) })
}

func run(cfg config.Config, log *logger.Logger) {
	start := time.Now()
	win, err := libwin.NewWindow(cfg.Window, log)
	log.Check(err, "Could not open window")
	defer win.Destroy()

	var scene *Scene
	libwin.Do(func() {
		if cfg.Window.Debug {
			libgl.EnableDebugOutput(cfg.Window.DebugAbort)
		}
		scene, err = NewScene(cfg, log, win)
	})
	log.Check(err, "Could not set up scene")
	defer libwin.Do(scene.Delete)
	log.Elapsed(start, "Startup")

	var changes <-chan string
	if cfg.Shaders.Watch {
		watcher, err := libgl.NewShaderWatcher(cfg.Shaders.Dir, 100*time.Millisecond)
		log.Check(err, "Could not watch shader directory")
		defer watcher.Close()
		changes = watcher.Changes()
		log.Info().Str("dir", cfg.Shaders.Dir).Msg("Watching shaders")
	}

	win.Loop(func() {
		scene.Reload(pendingChanges(changes))
		scene.Draw()
	})
}

// pendingChanges drains the file names queued since the last frame.
func pendingChanges(changes <-chan string) []string {
	var names []string
	for {
		select {
		case name, ok := <-changes:
			if !ok {
				return names
			}
			names = append(names, name)
		default:
			return names
		}
	}
}
