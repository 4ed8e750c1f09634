// Command triangle draws one triangle in a single color.
package main

import (
	"errors"
	"fmt"
	"os"

	"hello-gl/assets"
	"hello-gl/internal/config"
	"hello-gl/internal/logger"
	"hello-gl/libgl"
	"hello-gl/libutil"
	"hello-gl/libwin"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/spf13/pflag"
)

var triangleVertices = []float32{
	0.5, -0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

func main() {
	cfg, err := config.Parse("Hello triangle!", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New("triangle", cfg.Log.Level, cfg.Log.NoColor)
	libgl.SetLogger(log)
	libwin.Run(func() { run(cfg, log) })
}

func run(cfg config.Config, log *logger.Logger) {
	clearColor, err := libutil.ParseColor(cfg.Render.ClearColor)
	log.Check(err, "Invalid clear color")
	color, err := libutil.ParseColor(cfg.Render.TriangleColor)
	log.Check(err, "Invalid triangle color")
	vert, frag, err := assets.NewShaders(cfg.Shaders.Dir).Pair("solid")
	log.Check(err, "Could not read shaders")

	win, err := libwin.NewWindow(cfg.Window, log)
	log.Check(err, "Could not open window")
	defer win.Destroy()

	var (
		program *libgl.Program
		mesh    *libgl.Mesh
	)
	libwin.Do(func() {
		if cfg.Window.Debug {
			libgl.EnableDebugOutput(cfg.Window.DebugAbort)
		}

		vs, err := libgl.VertexShader(vert)
		log.Check(err, "Vertex shader")
		defer vs.Delete()
		fs, err := libgl.FragmentShader(frag)
		log.Check(err, "Fragment shader")
		defer fs.Delete()

		program, err = libgl.NewProgram(vs, fs)
		log.Check(err, "Shader program")
		program.SetUniform("u_color", color)

		mesh, err = libgl.UploadMesh(libgl.Position3, triangleVertices)
		log.Check(err, "Triangle mesh")
	})
	defer libwin.Do(func() {
		mesh.Delete()
		program.Delete()
	})

	win.Loop(func() {
		gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if cfg.Render.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		program.Use()
		mesh.Draw(gl.TRIANGLES)
	})
}
