package libutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

func Hsl2rgb(hsl mgl32.Vec3) mgl32.Vec3 {
	var q, p, r, g, b float32

	h, s, l := hsl[0], hsl[1], hsl[2]

	if s == 0 {
		r, g, b = l, l, l // achromatic
	} else {
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p = 2*l - q
		r = hue2rgb(p, q, h+1./3.)
		g = hue2rgb(p, q, h)
		b = hue2rgb(p, q, h-1./3.)
	}
	return mgl32.Vec3{r, g, b}
}

func hue2rgb(p, q, h float32) float32 {
	if h < 0 {
		h += 1
	} else if h > 1 {
		h -= 1
	}

	if 6*h < 1 {
		return p + ((q - p) * 6 * h)
	}
	if 2*h < 1 {
		return q
	}
	if 3*h < 2 {
		return p + ((q - p) * 6 * ((2. / 3.) - h))
	}

	return p
}

// ParseColor accepts an SVG color name ("cornflowerblue"), a hex string
// ("#rgb", "#rrggbb", "#rrggbbaa") or a comma separated float list
// ("0.5,0.5,0.5" or "0.5,0.5,0.5,1"). Alpha defaults to 1.
func ParseColor(s string) (mgl32.Vec4, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return mgl32.Vec4{}, fmt.Errorf("empty color")
	}

	if c, ok := colornames.Map[s]; ok {
		return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return mgl32.Vec4{}, fmt.Errorf("unknown color %q", s)
	}
	col := mgl32.Vec4{0, 0, 0, 1}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("color %q component %d: %w", s, i, err)
		}
		if v < 0 || v > 1 {
			return mgl32.Vec4{}, fmt.Errorf("color %q component %d out of range [0, 1]", s, i)
		}
		col[i] = float32(v)
	}
	return col, nil
}

func parseHex(hex string) (mgl32.Vec4, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("invalid hex color #%s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("invalid hex color #%s: %w", hex, err)
	}
	return mgl32.Vec4{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// Flicker cycles a color through the hue wheel while keeping the
// saturation and lightness of its base color.
type Flicker struct {
	// Speed in hue turns per second. Negative values run backwards.
	Speed  float32
	Paused bool
	hue    float32
	sat    float32
	light  float32
	alpha  float32
}

func NewFlicker(base mgl32.Vec4, speed float32) *Flicker {
	h, s, l := rgb2hsl(base.Vec3())
	if s == 0 {
		// a gray base would never change color
		s = 0.75
		if l <= 0 || l >= 1 {
			l = 0.5
		}
	}
	return &Flicker{
		Speed: speed,
		hue:   h,
		sat:   s,
		light: l,
		alpha: base.W(),
	}
}

// Advance moves the hue by dt seconds worth of Speed.
func (f *Flicker) Advance(dt float32) {
	if f.Paused || dt <= 0 {
		return
	}
	f.hue = math32.Mod(f.hue+f.Speed*dt, 1)
	if f.hue < 0 {
		f.hue += 1
	}
}

func (f *Flicker) Toggle() {
	f.Paused = !f.Paused
}

func (f *Flicker) Hue() float32 {
	return f.hue
}

func (f *Flicker) Color() mgl32.Vec4 {
	return Hsl2rgb(mgl32.Vec3{f.hue, f.sat, f.light}).Vec4(f.alpha)
}

func rgb2hsl(rgb mgl32.Vec3) (h, s, l float32) {
	r, g, b := rgb[0], rgb[1], rgb[2]
	hi := math32.Max(r, math32.Max(g, b))
	lo := math32.Min(r, math32.Min(g, b))
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}
	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}
