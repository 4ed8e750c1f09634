// Package assets holds the GLSL sources of the exercises.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed shaders
var embedded embed.FS

// Shaders reads shader sources from a directory on disk or, without one,
// from the copies built into the binary.
type Shaders struct {
	fsys fs.FS
	dir  string
}

func NewShaders(dir string) *Shaders {
	if dir == "" {
		sub, _ := fs.Sub(embedded, "shaders")
		return &Shaders{fsys: sub}
	}
	return &Shaders{fsys: os.DirFS(dir), dir: dir}
}

// Dir is the directory shaders are read from, empty for embedded sources.
func (s *Shaders) Dir() string {
	return s.dir
}

func (s *Shaders) Read(name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(name))
	if err != nil {
		return "", fmt.Errorf("read shader %v: %w", name, err)
	}
	return string(data), nil
}

// Pair reads "<name>.vert" and "<name>.frag".
func (s *Shaders) Pair(name string) (vert, frag string, err error) {
	if vert, err = s.Read(name + ".vert"); err != nil {
		return "", "", err
	}
	if frag, err = s.Read(name + ".frag"); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}
