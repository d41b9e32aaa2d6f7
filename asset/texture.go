package asset

import (
	"image"
	"image/color"
	"math"
)

// MaxTextureWidth bounds the sampled grid; terminal cells never resolve more detail
const MaxTextureWidth = 256

// Texture is a decoded, downsampled equirectangular image
// U wraps horizontally, V clamps vertically; V=0 is the top row
type Texture struct {
	Width   int
	Height  int
	Pixels  []color.NRGBA
	Average color.NRGBA
}

// newTexture box-filters img down to at most MaxTextureWidth columns
func newTexture(img image.Image) *Texture {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	w, h := srcW, srcH
	if w > MaxTextureWidth {
		w = MaxTextureWidth
		h = max(1, srcH*MaxTextureWidth/srcW)
	}

	tex := &Texture{
		Width:  w,
		Height: h,
		Pixels: make([]color.NRGBA, w*h),
	}

	var sumR, sumG, sumB, sumA float64
	for y := 0; y < h; y++ {
		y0 := b.Min.Y + y*srcH/h
		y1 := max(y0+1, b.Min.Y+(y+1)*srcH/h)
		for x := 0; x < w; x++ {
			x0 := b.Min.X + x*srcW/w
			x1 := max(x0+1, b.Min.X+(x+1)*srcW/w)

			var r, g, bl, a, n float64
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
					r += float64(c.R)
					g += float64(c.G)
					bl += float64(c.B)
					a += float64(c.A)
					n++
				}
			}
			px := color.NRGBA{
				R: uint8(r/n + 0.5),
				G: uint8(g/n + 0.5),
				B: uint8(bl/n + 0.5),
				A: uint8(a/n + 0.5),
			}
			tex.Pixels[y*w+x] = px
			sumR += float64(px.R)
			sumG += float64(px.G)
			sumB += float64(px.B)
			sumA += float64(px.A)
		}
	}

	n := float64(w * h)
	tex.Average = color.NRGBA{
		R: uint8(sumR/n + 0.5),
		G: uint8(sumG/n + 0.5),
		B: uint8(sumB/n + 0.5),
		A: uint8(sumA/n + 0.5),
	}
	return tex
}

// Sample returns the nearest texel at (u, v) in [0,1] texture space
func (t *Texture) Sample(u, v float64) color.NRGBA {
	u -= math.Floor(u)
	v = math.Max(0, math.Min(1, v))

	x := int(u * float64(t.Width))
	if x >= t.Width {
		x = t.Width - 1
	}
	y := int(v * float64(t.Height))
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}
