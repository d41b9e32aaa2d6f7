package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection constants
const (
	FieldOfView = 45.0 // vertical, degrees
	NearPlane   = 0.1
	FarPlane    = 1000.0

	// CellAspect is terminal cell height over width
	CellAspect = 2.0
)

// Viewport maps world space onto a grid of terminal cells for one frame
type Viewport struct {
	Width  int
	Height int

	eye   mgl64.Vec3
	view  mgl64.Mat4
	pv    mgl64.Mat4
	inv   mgl64.Mat4
	focal float64
}

// NewViewport builds the projection for a width×height cell area seen from eye
func NewViewport(width, height int, eye mgl64.Vec3, view mgl64.Mat4) Viewport {
	aspect := float64(width) / (float64(height) * CellAspect)
	fov := mgl64.DegToRad(FieldOfView)
	pv := mgl64.Perspective(fov, aspect, NearPlane, FarPlane).Mul4(view)

	return Viewport{
		Width:  width,
		Height: height,
		eye:    eye,
		view:   view,
		pv:     pv,
		inv:    pv.Inv(),
		focal:  1 / math.Tan(fov/2),
	}
}

// Eye returns the ray origin
func (v *Viewport) Eye() mgl64.Vec3 {
	return v.eye
}

// Project returns fractional cell coordinates and view depth of p
// ok is false when p lies behind the near plane
func (v *Viewport) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := v.pv.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= NearPlane {
		return 0, 0, w, false
	}
	x = (clip.X()/w + 1) / 2 * float64(v.Width)
	y = (1 - clip.Y()/w) / 2 * float64(v.Height)
	return x, y, w, true
}

// Ray returns the unit direction from the eye through cell coordinates (cx, cy)
func (v *Viewport) Ray(cx, cy float64) mgl64.Vec3 {
	nx := cx/float64(v.Width)*2 - 1
	ny := 1 - cy/float64(v.Height)*2
	far := v.inv.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
	p := far.Vec3().Mul(1 / far.W())
	return p.Sub(v.eye).Normalize()
}

// Footprint returns a conservative cell rectangle covering a sphere of radius at center
// ok is false when the sphere is entirely behind the eye or off screen
func (v *Viewport) Footprint(center mgl64.Vec3, radius float64) (x0, y0, x1, y1 int, ok bool) {
	depth := -v.view.Mul4x1(center.Vec4(1)).Z()
	if depth+radius <= NearPlane {
		return 0, 0, 0, 0, false
	}

	// Eye inside or grazing the sphere
	if depth-radius <= NearPlane {
		return 0, 0, v.Width - 1, v.Height - 1, true
	}

	cx, cy, _, _ := v.Project(center)
	// Off-axis spheres project as ellipses; pad the on-axis estimate
	rows := 1.5*v.focal*radius/(depth-radius)*float64(v.Height)/2 + 1
	cols := rows * CellAspect

	x0 = max(0, int(math.Floor(cx-cols)))
	x1 = min(v.Width-1, int(math.Ceil(cx+cols)))
	y0 = max(0, int(math.Floor(cy-rows)))
	y1 = min(v.Height-1, int(math.Ceil(cy+rows)))
	if x0 > x1 || y0 > y1 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}
