package libgl

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Buffer is a named buffer object created through direct state access.
type Buffer struct {
	glId      uint32
	size      int
	immutable bool
}

func NewBuffer() *Buffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &Buffer{glId: id}
}

func (vbo *Buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *Buffer) Size() int {
	return vbo.size
}

// Allocate creates immutable storage holding data. flags are the
// glBufferStorage flags, 0 for data that never changes.
func (vbo *Buffer) Allocate(data any, flags int) error {
	if vbo.immutable {
		return fmt.Errorf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size <= 0 {
		return fmt.Errorf("%T does not have a fixed, non-zero size", data)
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.immutable = true
	return nil
}

func (vbo *Buffer) Write(offset int, data any) error {
	size := binary.Size(data)
	if size == -1 {
		return fmt.Errorf("%T does not have a fixed size", data)
	}
	if offset+size > vbo.size {
		return fmt.Errorf("write of %d bytes at %d overflows buffer of %d bytes", size, offset, vbo.size)
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
	return nil
}

func (vbo *Buffer) Delete() {
	if vbo.glId == 0 {
		return
	}
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

type VertexArray struct {
	glId uint32
}

func NewVertexArray() *VertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &VertexArray{glId: id}
}

func (vao *VertexArray) Id() uint32 {
	return vao.glId
}

func (vao *VertexArray) Bind() {
	gl.BindVertexArray(vao.glId)
}

func (vao *VertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(attributeIndex))
	gl.VertexArrayAttribFormat(vao.glId, uint32(attributeIndex), int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(attributeIndex), uint32(bufferIndex))
}

func (vao *VertexArray) BindBuffer(bufferIndex int, vbo *Buffer, offset int, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *VertexArray) Delete() {
	if vao.glId == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
