package libgl

import (
	"strings"
	"testing"
)

func TestSourceName(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		fallback string
		want     string
	}{
		{name: "meta", source: "#version 450\n//meta:name triangle\n", fallback: "x", want: "triangle"},
		{name: "case insensitive key", source: "//meta:Name  solid  \n", fallback: "x", want: "solid"},
		{name: "other meta", source: "//meta:author someone\n", fallback: "untitled", want: "untitled"},
		{name: "none", source: "#version 450\nvoid main() {}\n", fallback: "untitled", want: "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceName(tt.source, tt.fallback); got != tt.want {
				t.Errorf("SourceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

const preprocessSource = `#version 450 core
// #define GRAYSCALE
#define GAMMA 2.2
  #define SAMPLES 4
void main() {}
`

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name    string
		defines map[string]string
		want    []string
		notWant []string
	}{
		{
			name: "no defines",
			want: []string{"// #define GRAYSCALE", "#define GAMMA 2.2"},
		},
		{
			name:    "enable boolean",
			defines: map[string]string{"GRAYSCALE": "true"},
			want:    []string{"\n#define GRAYSCALE\n"},
			notWant: []string{"// #define GRAYSCALE"},
		},
		{
			name:    "disable boolean stays commented",
			defines: map[string]string{"grayscale": "false"},
			want:    []string{"// #define GRAYSCALE"},
		},
		{
			name:    "override value",
			defines: map[string]string{"GAMMA": "1.0", "samples": "8"},
			want:    []string{"#define GAMMA 1.0", "#define SAMPLES 8"},
			notWant: []string{"2.2", "SAMPLES 4"},
		},
		{
			name:    "insert after version",
			defines: map[string]string{"B_NEW": "2", "A_NEW": "1"},
			want:    []string{"#version 450 core\n#define A_NEW 1\n#define B_NEW 2\n// #define GRAYSCALE"},
		},
		{
			name:    "insert disabled boolean",
			defines: map[string]string{"WIREFRAME": "false"},
			want:    []string{"#version 450 core\n// #define WIREFRAME\n"},
			notWant: []string{"#define WIREFRAME false"},
		},
		{
			name:    "insert enabled boolean",
			defines: map[string]string{"WIREFRAME": "true"},
			want:    []string{"#version 450 core\n#define WIREFRAME\n"},
			notWant: []string{"WIREFRAME true"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preprocess(preprocessSource, tt.defines)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("result missing %q:\n%v", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("result still contains %q:\n%v", w, got)
				}
			}
			if !strings.HasPrefix(got, "#version 450 core\n") {
				t.Errorf("#version is no longer the first line:\n%v", got)
			}
		})
	}
}

func TestPreprocessDisabledWithoutPlaceholder(t *testing.T) {
	got, err := Preprocess("#version 450 core\nvoid main() {}\n", map[string]string{"GRAYSCALE": "false"})
	if err != nil {
		t.Fatal(err)
	}
	want := "#version 450 core\n// #define GRAYSCALE\nvoid main() {}\n"
	if got != want {
		t.Errorf("Preprocess() = %q, want %q", got, want)
	}
}

func TestPreprocessWithoutVersion(t *testing.T) {
	if _, err := Preprocess("void main() {}", nil); err == nil {
		t.Error("expected error for source without #version")
	}
}

func TestTrimInfoLog(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "0:3(1): error: syntax error\n\x00\x00", want: "0:3(1): error: syntax error"},
		{in: "ERROR: 0:1: 'x' : undeclared identifier \r\n", want: "ERROR: 0:1: 'x' : undeclared identifier"},
		{in: "\x00garbage", want: ""},
	}
	for _, tt := range tests {
		if got := trimInfoLog(tt.in); got != tt.want {
			t.Errorf("trimInfoLog(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgramName(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{names: []string{"triangle", "triangle"}, want: "triangle"},
		{names: []string{"untitled", "untitled"}, want: "untitled"},
		{names: []string{"solid", "untitled"}, want: "solid"},
		{names: []string{"blit", "tonemap"}, want: "blit+tonemap"},
	}
	for _, tt := range tests {
		if got := programName(tt.names); got != tt.want {
			t.Errorf("programName(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestShaderErrors(t *testing.T) {
	compile := &CompileError{Name: "triangle", Stage: FragmentStage, Log: "0:1: error"}
	if got := compile.Error(); got != "failed to compile triangle fragment shader, log: 0:1: error" {
		t.Errorf("CompileError = %q", got)
	}
	link := &LinkError{Name: "triangle", Log: "missing main"}
	if got := link.Error(); got != "failed to link triangle program, log: missing main" {
		t.Errorf("LinkError = %q", got)
	}
	if got := ShaderStage(0x1234).String(); got != "stage(0x1234)" {
		t.Errorf("unknown stage = %q", got)
	}
}
