package render

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
)

// ErrNilFrame is returned when Render is called without a frame
var ErrNilFrame = errors.New("nil frame")

// Terminal draws frames onto a tcell screen
// Size is re-read every frame so resizes need no notification
type Terminal struct {
	screen tcell.Screen
	buf    *RenderBuffer
	raster *Rasterizer
}

// NewTerminal wraps an initialized screen; textures are looked up in lib
func NewTerminal(screen tcell.Screen, lib *asset.Library) *Terminal {
	w, h := screen.Size()
	return &Terminal{
		screen: screen,
		buf:    NewRenderBuffer(w, h),
		raster: NewRasterizer(lib),
	}
}

// Render implements scene.Renderer
func (t *Terminal) Render(f *scene.Frame) error {
	if f == nil {
		return ErrNilFrame
	}

	w, h := t.screen.Size()
	if bw, bh := t.buf.Size(); bw != w || bh != h {
		t.buf.Resize(w, h)
	} else {
		t.buf.Clear()
	}

	// Too small for a scene; still show what fits of the status line
	if viewH := h - HUDRows; w > 0 && viewH > 0 {
		vp := NewViewport(w, viewH, f.Eye, f.View)
		t.raster.Draw(t.buf, f, &vp)
	}
	if h > 0 {
		drawHUD(t.buf, f.HUD, h-1)
	}

	t.buf.Flush(t.screen)
	t.screen.Show()
	return nil
}

// Buffer exposes the last composed frame
func (t *Terminal) Buffer() *RenderBuffer {
	return t.buf
}
