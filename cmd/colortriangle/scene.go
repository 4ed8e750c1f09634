package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"hello-gl/assets"
	"hello-gl/internal/config"
	"hello-gl/internal/logger"
	"hello-gl/libgl"
	"hello-gl/libutil"
	"hello-gl/libwin"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/exp/slices"
)

var triangleVertices = []float32{
	// position       color
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
}

// Scene holds the GL objects of the exercise. All methods must run on the
// main thread.
type Scene struct {
	log        *logger.Logger
	win        *libwin.Window
	shaders    *assets.Shaders
	cache      *libgl.BinaryCache
	program    *libgl.Program
	mesh       *libgl.Mesh
	gui        *libgl.ImGui
	guiProg    *libgl.Program
	clearColor mgl32.Vec4
	wireframe  bool
	grayscale  bool
}

func NewScene(cfg config.Config, log *logger.Logger, win *libwin.Window) (*Scene, error) {
	clearColor, err := libutil.ParseColor(cfg.Render.ClearColor)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		log:        log.Extend("scene"),
		win:        win,
		shaders:    assets.NewShaders(cfg.Shaders.Dir),
		clearColor: clearColor,
		wireframe:  cfg.Render.Wireframe,
	}
	if !cfg.Shaders.DisableCache {
		env := libgl.GetEnv()
		s.cache = libgl.NewBinaryCache(cfg.Shaders.CacheDir, env.DriverId())
		s.log.Debug().Str("vendor", env.Vendor).Str("dir", cfg.Shaders.CacheDir).Msg("Program binary cache enabled")
	}

	s.program, err = s.linkTriangle()
	if err != nil {
		return nil, err
	}

	s.mesh, err = libgl.UploadMesh(libgl.Position3Color3, triangleVertices)
	if err != nil {
		s.program.Delete()
		return nil, err
	}

	if cfg.Render.Gui {
		s.guiProg, err = s.link("imgui", nil)
		if err != nil {
			s.Delete()
			return nil, err
		}
		s.gui = libgl.NewImGui(win.Window, s.guiProg)
		win.KeyboardCaptured = s.gui.WantsKeyboard
	}
	return s, nil
}

func (s *Scene) linkTriangle() (*libgl.Program, error) {
	return s.link("triangle", map[string]string{
		"GRAYSCALE": strconv.FormatBool(s.grayscale),
	})
}

// link builds the program from the <name>.vert and <name>.frag pair. The
// defines are applied to the fragment shader.
func (s *Scene) link(name string, defines map[string]string) (*libgl.Program, error) {
	vert, frag, err := s.shaders.Pair(name)
	if err != nil {
		return nil, err
	}
	frag, err = libgl.Preprocess(frag, defines)
	if err != nil {
		return nil, err
	}
	return libgl.LinkProgram(s.cache,
		libgl.StageSource{Stage: libgl.VertexStage, Source: vert},
		libgl.StageSource{Stage: libgl.FragmentStage, Source: frag},
	)
}

// Reload rebuilds the triangle program if any of the changed files belong
// to it. On failure the previous program stays in use.
func (s *Scene) Reload(changed []string) {
	if len(changed) == 0 {
		return
	}
	relevant := slices.ContainsFunc(changed, func(name string) bool {
		return strings.TrimSuffix(name, filepath.Ext(name)) == "triangle"
	})
	if !relevant {
		return
	}
	s.relink()
}

func (s *Scene) relink() bool {
	program, err := s.linkTriangle()
	if err != nil {
		s.log.Error().Err(err).Msg("Shader reload failed, keeping the previous program")
		return false
	}
	s.program.Delete()
	s.program = program
	s.log.Info().Str("program", program.Name()).Bool("grayscale", s.grayscale).Msg("Shaders reloaded")
	return true
}

func (s *Scene) Draw() {
	gl.ClearColor(s.clearColor[0], s.clearColor[1], s.clearColor[2], s.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if s.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	s.program.Use()
	s.mesh.Draw(gl.TRIANGLES)

	if s.gui != nil {
		s.drawGui()
	}
}

func (s *Scene) drawGui() {
	s.gui.NewFrame()
	imgui.Begin("Settings")
	edited := [4]float32(s.clearColor)
	if imgui.ColorEdit4("Clear color", &edited) {
		s.clearColor = mgl32.Vec4(edited)
	}
	imgui.Checkbox("Wireframe", &s.wireframe)
	if imgui.Checkbox("Grayscale", &s.grayscale) && !s.relink() {
		s.grayscale = !s.grayscale
	}
	imgui.Text("Program: " + s.program.Name())
	width, height := s.win.ViewportSize()
	imgui.Text(fmt.Sprintf("Viewport: %dx%d", width, height))
	imgui.End()
	s.gui.Draw()
}

func (s *Scene) Delete() {
	if s.gui != nil {
		s.gui.Delete()
	}
	if s.guiProg != nil {
		s.guiProg.Delete()
	}
	if s.mesh != nil {
		s.mesh.Delete()
	}
	s.program.Delete()
}
