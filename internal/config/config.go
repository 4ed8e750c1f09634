// Package config holds the settings shared by all exercises.
//
// Values are layered: built-in defaults, then an optional hello-gl.yaml
// file, then HELLOGL_* environment variables, then command line flags.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "HELLOGL"
	FileName  = "hello-gl.yaml"
)

type Config struct {
	Window  Window
	Render  Render
	Shaders Shaders
	Log     Log
}

type Window struct {
	Title   string
	Width   int
	Height  int
	VSync   bool `fig:"vsync"`
	Samples int
	// GL context version requested from the driver.
	Major  int
	Minor  int
	Compat bool
	Debug  bool
	// DebugAbort panics on high severity driver messages instead of only
	// logging them.
	DebugAbort bool `fig:"debug_abort"`
	// Hidden windows are used by tests that only need a context.
	Hidden bool
}

type Render struct {
	// ClearColor is a color name (see x/image/colornames), #rrggbb[aa] or
	// an "r,g,b[,a]" float list.
	ClearColor    string `fig:"clear_color"`
	TriangleColor string `fig:"triangle_color"`
	// FlickerSpeed is in hue turns per second.
	FlickerSpeed float32 `fig:"flicker_speed"`
	Wireframe    bool
	Gui          bool
}

type Shaders struct {
	// Dir overrides the embedded shader sources when set.
	Dir          string
	Watch        bool
	CacheDir     string `fig:"cache_dir"`
	DisableCache bool   `fig:"disable_cache"`
}

type Log struct {
	Level   string
	NoColor bool `fig:"no_color"`
}

// Default returns the configuration every exercise starts from.
func Default(title string) Config {
	return Config{
		Window: Window{
			Title:      title,
			Width:      720,
			Height:     720,
			VSync:      true,
			Samples:    8,
			Major:      4,
			Minor:      5,
			Debug:      true,
			DebugAbort: true,
		},
		Render: Render{
			ClearColor:    "0.5,0.5,0.5,1",
			TriangleColor: "orange",
			FlickerSpeed:  0.25,
		},
		Shaders: Shaders{
			CacheDir: ".shadercache",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the config file from path, or searches the usual directories
// when path is empty, and applies environment overrides. A missing file is
// not an error.
func Load(cfg *Config, path string) error {
	var opts []fig.Option
	if path != "" {
		opts = append(opts, fig.File(filepath.Base(path)), fig.Dirs(filepath.Dir(path)))
	} else {
		dirs := []string{".", "configs"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".config", "hello-gl"))
		}
		opts = append(opts, fig.File(FileName), fig.Dirs(dirs...))
	}
	opts = append(opts, fig.UseEnv(EnvPrefix))

	err := fig.Load(cfg, opts...)
	if errors.Is(err, fig.ErrFileNotFound) {
		if path != "" {
			return err
		}
		return fig.Load(cfg, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	return err
}

// AddFlags registers the command line overrides. Flag defaults are the
// values already in c, so parsing after Load keeps file and env settings.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.StringVar(&c.Window.Title, "window.title", c.Window.Title, "Window title")
	fs.IntVar(&c.Window.Width, "window.width", c.Window.Width, "Window width")
	fs.IntVar(&c.Window.Height, "window.height", c.Window.Height, "Window height")
	fs.BoolVar(&c.Window.VSync, "window.vsync", c.Window.VSync, "Wait for vertical sync on swap")
	fs.IntVar(&c.Window.Samples, "window.samples", c.Window.Samples, "MSAA samples, 0 disables multisampling")
	fs.IntVar(&c.Window.Major, "gl.major", c.Window.Major, "Requested OpenGL major version")
	fs.IntVar(&c.Window.Minor, "gl.minor", c.Window.Minor, "Requested OpenGL minor version")
	fs.BoolVar(&c.Window.Compat, "enable-compatibility-profile", c.Window.Compat, "Request a compatibility profile context")
	fs.BoolVar(&c.Window.Debug, "gl.debug", c.Window.Debug, "Request a debug context and log driver messages")
	fs.BoolVar(&c.Window.DebugAbort, "gl.debug-abort", c.Window.DebugAbort, "Abort on high severity driver messages")

	fs.StringVar(&c.Render.ClearColor, "clear-color", c.Render.ClearColor, "Background color")
	fs.StringVar(&c.Render.TriangleColor, "triangle-color", c.Render.TriangleColor, "Triangle color (single color exercise)")
	fs.Float32Var(&c.Render.FlickerSpeed, "flicker-speed", c.Render.FlickerSpeed, "Hue turns per second")
	fs.BoolVar(&c.Render.Wireframe, "wireframe", c.Render.Wireframe, "Draw polygons as lines")
	fs.BoolVar(&c.Render.Gui, "gui", c.Render.Gui, "Show the settings overlay")

	fs.StringVar(&c.Shaders.Dir, "shaders.dir", c.Shaders.Dir, "Load shaders from this directory instead of the embedded ones")
	fs.BoolVar(&c.Shaders.Watch, "shaders.watch", c.Shaders.Watch, "Reload shaders when files in shaders.dir change")
	fs.StringVar(&c.Shaders.CacheDir, "shaders.cache-dir", c.Shaders.CacheDir, "Program binary cache directory")
	fs.BoolVar(&c.Shaders.DisableCache, "disable-shader-cache", c.Shaders.DisableCache, "Always compile shaders from source")

	fs.StringVar(&c.Log.Level, "log.level", c.Log.Level, "trace, debug, info, warn or error")
	fs.BoolVar(&c.Log.NoColor, "log.no-color", c.Log.NoColor, "Disable colored log output")
	return c
}

// Parse is the usual entry point of an exercise: defaults, file, env and
// finally args.
func Parse(title string, args []string) (Config, error) {
	cfg := Default(title)

	pre := pflag.NewFlagSet(title, pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.SetOutput(io.Discard)
	path := pre.String("config", "", "")
	_ = pre.Parse(args)

	if err := Load(&cfg, *path); err != nil {
		return cfg, err
	}

	fs := pflag.NewFlagSet(title, pflag.ContinueOnError)
	fs.String("config", "", "Path to the config file")
	cfg.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}
