package libgl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type ShaderStage uint32

const (
	VertexStage   ShaderStage = gl.VERTEX_SHADER
	FragmentStage ShaderStage = gl.FRAGMENT_SHADER
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%X)", uint32(s))
}

// CompileError carries the driver's info log of a failed compilation.
type CompileError struct {
	Name  string
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %v %v shader, log: %v", e.Name, e.Stage, e.Log)
}

// LinkError carries the driver's info log of a failed link.
type LinkError struct {
	Name string
	Log  string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link %v program, log: %v", e.Name, e.Log)
}

// Shader is a compiled shader object. A zero id means deleted.
type Shader struct {
	glId  uint32
	name  string
	stage ShaderStage
}

func NewShader(source string, stage ShaderStage) (*Shader, error) {
	name := SourceName(source, "untitled")

	id := gl.CreateShader(uint32(stage))
	if id == 0 {
		return nil, fmt.Errorf("could not create %v shader object", stage)
	}

	cStrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, cStrs, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		err := &CompileError{Name: name, Stage: stage, Log: readShaderInfoLog(id)}
		gl.DeleteShader(id)
		return nil, err
	}

	return &Shader{glId: id, name: name, stage: stage}, nil
}

func VertexShader(source string) (*Shader, error) {
	return NewShader(source, VertexStage)
}

func FragmentShader(source string) (*Shader, error) {
	return NewShader(source, FragmentStage)
}

func (s *Shader) Id() uint32 {
	return s.glId
}

func (s *Shader) Name() string {
	return s.name
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

func (s *Shader) Delete() {
	if s.glId == 0 {
		return
	}
	gl.DeleteShader(s.glId)
	s.glId = 0
}

func readShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	infoLog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(infoLog))
	return trimInfoLog(infoLog)
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	infoLog := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
	return trimInfoLog(infoLog)
}

// trimInfoLog cuts the log at the terminating NUL and drops trailing
// whitespace; drivers disagree on whether the log ends in a newline.
func trimInfoLog(log string) string {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return strings.TrimRight(log, " \t\r\n")
}
