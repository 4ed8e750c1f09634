package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
window:
  width: 1024
  vsync: false
render:
  clear_color: navy
shaders:
  cache_dir: /tmp/hello-gl-cache
`)

	cfg := Default("test")
	if err := Load(&cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Width != 1024 {
		t.Errorf("width = %d, want 1024", cfg.Window.Width)
	}
	if cfg.Window.VSync {
		t.Error("vsync not disabled by file")
	}
	if cfg.Render.ClearColor != "navy" {
		t.Errorf("clear color = %q, want navy", cfg.Render.ClearColor)
	}
	if cfg.Shaders.CacheDir != "/tmp/hello-gl-cache" {
		t.Errorf("cache dir = %q", cfg.Shaders.CacheDir)
	}
	// untouched keys keep their defaults
	if cfg.Window.Height != 720 {
		t.Errorf("height = %d, want default 720", cfg.Window.Height)
	}
	if cfg.Window.Title != "test" {
		t.Errorf("title = %q, want test", cfg.Window.Title)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HELLOGL_WINDOW_HEIGHT", "300")
	t.Setenv("HELLOGL_LOG_LEVEL", "debug")

	cfg := Default("test")
	path := writeConfig(t, t.TempDir(), "window:\n  height: 500\n")
	if err := Load(&cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Height != 300 {
		t.Errorf("height = %d, env should win over file", cfg.Window.Height)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	cfg := Default("test")
	if err := Load(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "render:\n  clear_color: red\n  flicker_speed: 2\n")

	tests := []struct {
		name  string
		args  []string
		color string
		speed float32
		width int
	}{
		{name: "file only", args: []string{"--config", path}, color: "red", speed: 2, width: 720},
		{name: "flag wins", args: []string{"--config", path, "--clear-color", "#102030"}, color: "#102030", speed: 2, width: 720},
		{name: "flags before config", args: []string{"--window.width=640", "--config=" + path}, color: "red", speed: 2, width: 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("parse", tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Render.ClearColor != tt.color {
				t.Errorf("clear color = %q, want %q", cfg.Render.ClearColor, tt.color)
			}
			if cfg.Render.FlickerSpeed != tt.speed {
				t.Errorf("flicker speed = %v, want %v", cfg.Render.FlickerSpeed, tt.speed)
			}
			if cfg.Window.Width != tt.width {
				t.Errorf("width = %d, want %d", cfg.Window.Width, tt.width)
			}
		})
	}
}

func TestDebugAbort(t *testing.T) {
	cfg, err := Parse("parse", []string{"--config", writeConfig(t, t.TempDir(), "window:\n  debug: true\n")})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Window.DebugAbort {
		t.Error("debug abort is not on by default")
	}

	cfg, err = Parse("parse", []string{"--config", writeConfig(t, t.TempDir(), "window:\n  debug_abort: false\n")})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.DebugAbort {
		t.Error("debug_abort: false in file ignored")
	}

	cfg, err = Parse("parse", []string{"--config", writeConfig(t, t.TempDir(), "log:\n  level: info\n"), "--gl.debug-abort=false"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.DebugAbort {
		t.Error("--gl.debug-abort=false ignored")
	}
}

func TestParseUnknownFlag(t *testing.T) {
	if _, err := Parse("parse", []string{"--config", writeConfig(t, t.TempDir(), "log:\n  no_color: true\n"), "--no-such-flag"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
