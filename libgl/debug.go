package libgl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/rs/zerolog"
)

// Driver message ids that only report buffer placement hints.
var noisyMessages = map[uint32][]uint32{
	gl.DEBUG_TYPE_OTHER:              {131185},
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR: {131222},
}

// EnableDebugOutput routes driver debug messages into the package logger.
// High severity messages panic when abortOnError is set.
func EnableDebugOutput(abortOnError bool) {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			if gltype == gl.DEBUG_TYPE_PUSH_GROUP {
				groupStack = append(groupStack, message)
				return
			} else if gltype == gl.DEBUG_TYPE_POP_GROUP {
				if len(groupStack) > 1 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}
			msg := FormatDebugMessage(source, gltype, id, severity, message)
			if severity == gl.DEBUG_SEVERITY_HIGH && abortOnError {
				stack := strings.Join(groupStack, " > ")
				log.Error().Str("stack", stack).Msg(msg)
				panic(fmt.Errorf("%v\ndebug stack: %v", msg, stack))
			}
			log.WithLevel(DebugSeverityLevel(severity)).Msg(msg)
		}, nil)

	for gltype, ids := range noisyMessages {
		gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gltype, gl.DONT_CARE, int32(len(ids)), &ids[0], false)
	}
}

func FormatDebugMessage(source, gltype, id, severity uint32, message string) string {
	return fmt.Sprintf("[%v] %v #%v from %v: %v",
		DebugSeverityString(severity), DebugTypeString(gltype), id, DebugSourceString(source),
		strings.TrimRight(message, "\x00\r\n"))
}

func DebugSeverityLevel(severity uint32) zerolog.Level {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return zerolog.ErrorLevel
	case gl.DEBUG_SEVERITY_MEDIUM:
		return zerolog.WarnLevel
	case gl.DEBUG_SEVERITY_LOW:
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

func DebugSeverityString(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "CRITICAL_ERROR"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "ERROR"
	case gl.DEBUG_SEVERITY_LOW:
		return "WARNING"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "INFO"
	}
	return "UNKNOWN"
}

func DebugTypeString(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "PERFORMANCE"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "PORTABILITY"
	case gl.DEBUG_TYPE_OTHER:
		return "OTHER"
	case gl.DEBUG_TYPE_MARKER:
		return "MARKER"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "PUSH_GROUP"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "POP_GROUP"
	}
	return "UNKNOWN"
}

func DebugSourceString(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GRAPHICS_LIBRARY"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "SHADER_COMPILER"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "APPLICATION"
	case gl.DEBUG_SOURCE_OTHER:
		return "OTHER"
	}
	return "UNKNOWN"
}

// PushGroup labels the following GL calls in debug output and captures.
func PushGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopGroup() {
	gl.PopDebugGroup()
}
