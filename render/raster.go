package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
)

// Rasterizer ray-casts frame commands into a RenderBuffer
// Opaque spheres write the depth grid; rings and guides only test it
type Rasterizer struct {
	lib   *asset.Library
	depth []float64
	width int
}

// NewRasterizer samples textures from lib; nil draws flat fallback colors
func NewRasterizer(lib *asset.Library) *Rasterizer {
	return &Rasterizer{lib: lib}
}

func (r *Rasterizer) texture(h asset.Handle) *asset.Texture {
	if r.lib == nil {
		return nil
	}
	return r.lib.Get(h)
}

func (r *Rasterizer) reset(vp *Viewport) {
	size := vp.Width * vp.Height
	if cap(r.depth) < size {
		r.depth = make([]float64, size)
	}
	r.depth = r.depth[:size]
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
	r.width = vp.Width
}

// Draw renders all commands in list order into the top vp.Height rows of buf
func (r *Rasterizer) Draw(buf *RenderBuffer, f *scene.Frame, vp *Viewport) {
	r.reset(vp)
	for i := range f.Commands {
		cmd := &f.Commands[i]
		switch cmd.Kind {
		case scene.MeshOrbitGuide:
			r.orbit(buf, vp, cmd)
		case scene.MeshSphere:
			r.sphere(buf, vp, cmd, f.Light)
		case scene.MeshAnnulus:
			r.ring(buf, vp, cmd)
		}
	}
}

func (r *Rasterizer) sphere(buf *RenderBuffer, vp *Viewport, cmd *scene.Command, light mgl64.Vec3) {
	x0, y0, x1, y1, ok := vp.Footprint(cmd.Position, cmd.Radius)
	if !ok {
		return
	}

	tex := r.texture(cmd.Texture)
	fallback := untexturedBody
	if cmd.Emissive {
		fallback = untexturedAnchor
	}
	// Model rotation is orthonormal; its transpose maps world normals back to the surface frame
	toLocal := cmd.Model.Mat3().Transpose()
	eye := vp.Eye()

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dir := vp.Ray(float64(x)+0.5, float64(y)+0.5)
			t, hit := hitSphere(eye, dir, cmd.Position, cmd.Radius)
			idx := y*r.width + x
			if !hit || t >= r.depth[idx] {
				continue
			}

			p := eye.Add(dir.Mul(t))
			n := p.Sub(cmd.Position).Mul(1 / cmd.Radius)

			texel := fallback
			if tex != nil {
				texel = tex.Sample(sphereUV(toLocal.Mul3x1(n)))
			}

			c := fromNRGBA(texel)
			if !cmd.Emissive {
				c = shade(texel, lambert(n, p, light))
			}

			r.depth[idx] = t
			buf.Set(x, y, ' ', c, c, BlendReplace, 1)
		}
	}
}

func (r *Rasterizer) ring(buf *RenderBuffer, vp *Viewport, cmd *scene.Command) {
	if cmd.Outer <= cmd.Inner {
		return
	}
	x0, y0, x1, y1, ok := vp.Footprint(cmd.Position, cmd.Outer)
	if !ok {
		return
	}

	tex := r.texture(cmd.Texture)
	toLocal := cmd.Model.Mat3().Transpose()
	origin := toLocal.Mul3x1(vp.Eye().Sub(cmd.Position))
	width := cmd.Outer - cmd.Inner

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := toLocal.Mul3x1(vp.Ray(float64(x)+0.5, float64(y)+0.5))
			if math.Abs(d.Y()) < 1e-9 {
				continue
			}
			t := -origin.Y() / d.Y()
			idx := y*r.width + x
			if t <= NearPlane || t >= r.depth[idx] {
				continue
			}

			p := origin.Add(d.Mul(t))
			radial := math.Hypot(p.X(), p.Z())
			if radial < cmd.Inner || radial > cmd.Outer {
				continue
			}

			texel := untexturedRing
			alpha := DefaultRingAlpha
			if tex != nil {
				u := 0.5 + math.Atan2(p.Z(), p.X())/(2*math.Pi)
				// Outer edge at the top row
				texel = tex.Sample(u, 1-(radial-cmd.Inner)/width)
				alpha = float64(texel.A) / 255
			}

			c := Scale(fromNRGBA(texel), RingBrightness)
			buf.Set(x, y, ' ', c, c, BlendAlpha, alpha)
		}
	}
}

func (r *Rasterizer) orbit(buf *RenderBuffer, vp *Viewport, cmd *scene.Command) {
	if cmd.Segments <= 0 || cmd.Radius <= 0 {
		return
	}
	eye := vp.Eye()
	for s := 0; s < cmd.Segments; s += 2 {
		a := 2 * math.Pi * float64(s) / float64(cmd.Segments)
		world := cmd.Model.Mul4x1(mgl64.Vec4{math.Cos(a) * cmd.Radius, 0, math.Sin(a) * cmd.Radius, 1}).Vec3()

		fx, fy, _, ok := vp.Project(world)
		if !ok {
			continue
		}
		x, y := int(math.Floor(fx)), int(math.Floor(fy))
		if x < 0 || x >= vp.Width || y < 0 || y >= vp.Height {
			continue
		}
		if world.Sub(eye).Len() >= r.depth[y*r.width+x] {
			continue
		}
		buf.SetFg(x, y, '·', orbitGuide)
	}
}
