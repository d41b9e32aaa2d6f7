package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Lighting
const (
	Ambient          = 0.08
	RingBrightness   = 0.85
	DefaultRingAlpha = 0.6
)

// Fallback surface colors when a command carries no texture
var (
	untexturedBody   = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	untexturedAnchor = color.NRGBA{R: 255, G: 210, B: 90, A: 255}
	untexturedRing   = color.NRGBA{R: 200, G: 180, B: 140, A: 255}
	orbitGuide       = RGB{70, 80, 100}
)

// lambert returns the diffuse term for surface normal n at hit, lit from light
func lambert(n, hit, light mgl64.Vec3) float64 {
	l := light.Sub(hit)
	if l.Len() == 0 {
		return 1
	}
	return math.Max(0, n.Dot(l.Normalize()))
}

// shade scales c by ambient plus diffuse intensity in linear light
func shade(c color.NRGBA, intensity float64) RGB {
	k := Ambient + (1-Ambient)*mgl64.Clamp(intensity, 0, 1)
	r, g, b := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.LinearRgb()

	out := colorful.LinearRgb(r*k, g*k, b*k).Clamped()
	r8, g8, b8 := out.RGB255()
	return RGB{R: r8, G: g8, B: b8}
}

// sphereUV maps a unit model-space normal to equirectangular coordinates
// v=0 is the north pole (+Y)
func sphereUV(n mgl64.Vec3) (u, v float64) {
	u = 0.5 - math.Atan2(n.Z(), n.X())/(2*math.Pi)
	v = math.Acos(mgl64.Clamp(n.Y(), -1, 1)) / math.Pi
	return u, v
}

// hitSphere returns the nearest ray distance beyond the near plane
func hitSphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	s := math.Sqrt(disc)
	if t := -b - s; t > NearPlane {
		return t, true
	}
	if t := -b + s; t > NearPlane {
		return t, true
	}
	return 0, false
}
