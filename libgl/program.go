package libgl

import (
	"fmt"
	"strings"

	"hello-gl/internal/logger"

	"github.com/go-gl/gl/v4.5-core/gl"
)

var log = logger.Nop()

// SetLogger routes the package's diagnostics to l.
func SetLogger(l *logger.Logger) {
	log = l.Extend("gl")
}

// Program is a linked shader program. A zero id means deleted.
type Program struct {
	glId             uint32
	name             string
	uniformLocations map[string]int32
}

// NewProgram links the shaders into a program. The shaders are attached for
// the duration of the link only; deleting them stays the caller's job.
func NewProgram(shaders ...*Shader) (*Program, error) {
	return linkShaders(shaders, false)
}

func linkShaders(shaders []*Shader, retrievable bool) (*Program, error) {
	if len(shaders) == 0 {
		return nil, fmt.Errorf("no shaders to link")
	}
	names := make([]string, 0, len(shaders))
	for _, shader := range shaders {
		if shader == nil || shader.Id() == 0 {
			return nil, fmt.Errorf("cannot link a deleted shader")
		}
		names = append(names, shader.Name())
	}
	name := programName(names)

	id := gl.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("could not create program object")
	}
	if retrievable {
		gl.ProgramParameteri(id, gl.PROGRAM_BINARY_RETRIEVABLE_HINT, gl.TRUE)
	}

	for _, shader := range shaders {
		gl.AttachShader(id, shader.Id())
	}
	gl.LinkProgram(id)
	for _, shader := range shaders {
		gl.DetachShader(id, shader.Id())
	}

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		err := &LinkError{Name: name, Log: readProgramInfoLog(id)}
		gl.DeleteProgram(id)
		return nil, err
	}

	return newProgram(id, name), nil
}

func newProgram(id uint32, name string) *Program {
	return &Program{
		glId:             id,
		name:             name,
		uniformLocations: map[string]int32{},
	}
}

func programName(names []string) string {
	distinct := names[:0:0]
	for _, n := range names {
		if n != "untitled" && (len(distinct) == 0 || distinct[len(distinct)-1] != n) {
			distinct = append(distinct, n)
		}
	}
	if len(distinct) == 0 {
		return "untitled"
	}
	return strings.Join(distinct, "+")
}

type StageSource struct {
	Stage  ShaderStage
	Source string
}

// LinkProgram compiles and links the sources. Intermediate shader objects
// are always deleted. With a non-nil cache a stored program binary is tried
// first and a successful link is written back.
func LinkProgram(cache *BinaryCache, sources ...StageSource) (*Program, error) {
	var key string
	if cache != nil {
		texts := make([]string, len(sources))
		for i, src := range sources {
			texts[i] = src.Stage.String() + "\x00" + src.Source
		}
		key = cache.Key(texts...)
		if prog, ok := loadCachedProgram(cache, key, sources); ok {
			return prog, nil
		}
	}

	shaders := make([]*Shader, 0, len(sources))
	defer func() {
		for _, shader := range shaders {
			shader.Delete()
		}
	}()
	for _, src := range sources {
		shader, err := NewShader(src.Source, src.Stage)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, shader)
	}

	prog, err := linkShaders(shaders, cache != nil)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		storeProgramBinary(cache, key, prog)
	}
	return prog, nil
}

func loadCachedProgram(cache *BinaryCache, key string, sources []StageSource) (*Program, bool) {
	format, data, ok := cache.Get(key)
	if !ok {
		return nil, false
	}

	id := gl.CreateProgram()
	gl.ProgramBinary(id, format, Pointer(data), int32(len(data)))
	var linked int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &linked)
	if linked == gl.FALSE {
		// the driver rejects binaries of other versions, recompile
		log.Debug().Str("key", key).Msg("Cached program binary rejected")
		gl.DeleteProgram(id)
		return nil, false
	}

	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = SourceName(src.Source, "untitled")
	}
	return newProgram(id, programName(names)), true
}

func storeProgramBinary(cache *BinaryCache, key string, prog *Program) {
	var length int32
	gl.GetProgramiv(prog.glId, gl.PROGRAM_BINARY_LENGTH, &length)
	if length <= 0 {
		return
	}
	buf := make([]byte, length)
	var format uint32
	gl.GetProgramBinary(prog.glId, length, &length, &format, Pointer(buf))
	if err := cache.Put(key, format, buf[:length]); err != nil {
		log.Warn().Err(err).Msg("Could not write shader cache")
	}
}

func (prog *Program) Id() uint32 {
	return prog.glId
}

func (prog *Program) Name() string {
	return prog.name
}

// Use makes the program current for subsequent draw calls.
func (prog *Program) Use() {
	gl.UseProgram(prog.glId)
}

func (prog *Program) Delete() {
	if prog.glId == 0 {
		return
	}
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func (prog *Program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Warn().Str("program", prog.name).Msgf("Could not get location of %q", name)
	}

	return location
}

func (prog *Program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}
