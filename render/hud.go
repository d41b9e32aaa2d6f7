package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/scene"
)

// HUDRows is the number of bottom rows reserved for the status line
const HUDRows = 1

// Status line palette
var (
	hudBg      = RGB{18, 18, 28}
	hudText    = RGB{170, 170, 185}
	hudDim     = RGB{100, 100, 110}
	hudAccent  = RGB{255, 190, 80}
	hudPaused  = RGB{255, 90, 90}
	speedSlow  = colorful.Hcl(230, 0.45, 0.7)
	speedFast  = colorful.Hcl(30, 0.8, 0.65)
	maxSpeedLg = 7.0 // log10 of the fastest time scale
)

// speedColor runs from cool to hot as time scale grows by orders of magnitude
func speedColor(scale float64) RGB {
	t := 0.0
	if scale > 1 {
		t = math.Min(1, math.Log10(scale)/maxSpeedLg)
	}
	r, g, b := speedSlow.BlendHcl(speedFast, t).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// drawHUD fills row y with the frame's status values
func drawHUD(buf *RenderBuffer, h scene.HUD, y int) {
	w, _ := buf.Size()
	for x := 0; x < w; x++ {
		buf.Set(x, y, ' ', hudText, hudBg, BlendReplace, 1)
	}

	sep := func(x int) int {
		return buf.Text(x, y, " │ ", hudDim, hudBg)
	}

	x := buf.Text(1, y, h.SimTime.UTC().Format("2006-01-02 15:04 UTC"), hudText, hudBg)
	x = sep(x)
	x = buf.Text(x, y, fmt.Sprintf("JD %.3f", h.JulianDay), hudText, hudBg)
	x = sep(x)
	if h.Paused {
		x = buf.Text(x, y, "PAUSED", hudPaused, hudBg)
	} else {
		x = buf.Text(x, y, fmt.Sprintf("×%g", h.TimeScale), speedColor(h.TimeScale), hudBg)
	}
	x = sep(x)

	mode := hudText
	if h.Mode == camera.ModeFocusing {
		mode = hudAccent
	}
	x = buf.Text(x, y, h.Mode.String(), mode, hudBg)
	if h.Focus != "" {
		x = buf.Text(x, y, " "+h.Focus, hudAccent, hudBg)
	}
	if h.Orbits {
		x = sep(x)
		x = buf.Text(x, y, "orbits", hudDim, hudBg)
	}
	x = sep(x)
	buf.Text(x, y, fmt.Sprintf("%.0f fps", h.FPS), hudDim, hudBg)
}
