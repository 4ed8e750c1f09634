package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "amd"
	VendorMesa    = "mesa"
	VendorUnknown = "unknown"
)

// Env describes the driver behind the current context.
type Env struct {
	Vendor      string
	VendorName  string
	Renderer    string
	Version     string
	GLSLVersion string
}

func GetEnv() *Env {
	vendorName := gl.GoStr(gl.GetString(gl.VENDOR))
	return &Env{
		Vendor:      ClassifyVendor(vendorName),
		VendorName:  vendorName,
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

func ClassifyVendor(vendor string) string {
	vendor = strings.ToLower(strings.TrimSuffix(vendor, "\x00"))
	switch {
	case strings.Contains(vendor, "intel"):
		return VendorIntel
	case strings.Contains(vendor, "nvidia"):
		return VendorNvidia
	case strings.Contains(vendor, "ati ") || strings.Contains(vendor, "amd"):
		return VendorAmd
	case strings.Contains(vendor, "mesa") || strings.Contains(vendor, "x.org"):
		return VendorMesa
	}
	return VendorUnknown
}

// DriverId identifies the driver build for program binary caching.
func (env *Env) DriverId() string {
	return env.VendorName + "\n" + env.Renderer + "\n" + env.Version
}
