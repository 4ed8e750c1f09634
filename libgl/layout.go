package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
	"golang.org/x/exp/slices"
)

const floatSize = 4

// Attribute is one float vector attribute of an interleaved vertex.
type Attribute struct {
	// Location matches "layout (location = N)" in the vertex shader.
	Location   int
	Components int
}

// VertexLayout describes interleaved float32 vertex data, attributes in
// memory order.
type VertexLayout []Attribute

// Position3Color3 is three position floats followed by three color floats.
var Position3Color3 = VertexLayout{{Location: 0, Components: 3}, {Location: 1, Components: 3}}

// Position3 is a plain xyz position.
var Position3 = VertexLayout{{Location: 0, Components: 3}}

func (l VertexLayout) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("vertex layout has no attributes")
	}
	seen := make([]int, 0, len(l))
	for _, attr := range l {
		if attr.Components < 1 || attr.Components > 4 {
			return fmt.Errorf("attribute %d has %d components, want 1 to 4", attr.Location, attr.Components)
		}
		if attr.Location < 0 {
			return fmt.Errorf("attribute location %d is negative", attr.Location)
		}
		if slices.Contains(seen, attr.Location) {
			return fmt.Errorf("attribute location %d used twice", attr.Location)
		}
		seen = append(seen, attr.Location)
	}
	return nil
}

// Floats is the number of float32 values per vertex.
func (l VertexLayout) Floats() int {
	n := 0
	for _, attr := range l {
		n += attr.Components
	}
	return n
}

// Stride is the size of one vertex in bytes.
func (l VertexLayout) Stride() int {
	return l.Floats() * floatSize
}

// Offset is the byte offset of attribute i within a vertex.
func (l VertexLayout) Offset(i int) int {
	n := 0
	for _, attr := range l[:i] {
		n += attr.Components
	}
	return n * floatSize
}

// VertexCount returns how many whole vertices data holds.
func (l VertexLayout) VertexCount(data []float32) (int, error) {
	per := l.Floats()
	if per == 0 || len(data)%per != 0 {
		return 0, fmt.Errorf("%d floats is not a multiple of the %d float vertex size", len(data), per)
	}
	return len(data) / per, nil
}

// Apply enables the attributes on vao and binds vbo to bindingIndex.
func (l VertexLayout) Apply(vao *VertexArray, bindingIndex int, vbo *Buffer) {
	for i, attr := range l {
		vao.Layout(bindingIndex, attr.Location, attr.Components, gl.FLOAT, false, l.Offset(i))
	}
	vao.BindBuffer(bindingIndex, vbo, 0, l.Stride())
}

// Mesh is an uploaded, non-indexed vertex list.
type Mesh struct {
	VertexArray *VertexArray
	Buffer      *Buffer
	Count       int
}

// UploadMesh copies vertices into an immutable buffer and sets up a vertex
// array for them according to layout.
func UploadMesh(layout VertexLayout, vertices []float32) (*Mesh, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	count, err := layout.VertexCount(vertices)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}

	vbo := NewBuffer()
	if err := vbo.Allocate(vertices, 0); err != nil {
		vbo.Delete()
		return nil, err
	}
	vao := NewVertexArray()
	layout.Apply(vao, 0, vbo)

	return &Mesh{VertexArray: vao, Buffer: vbo, Count: count}, nil
}

func (m *Mesh) Draw(mode uint32) {
	m.VertexArray.Bind()
	gl.DrawArrays(mode, 0, int32(m.Count))
}

func (m *Mesh) Delete() {
	m.VertexArray.Delete()
	m.Buffer.Delete()
}
