package render

import (
	"github.com/gdamore/tcell/v2"
)

// BlendMode selects how Set composites into a cell
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // Dst = Src
	BlendAlpha                    // Dst = Src*α + Dst*(1-α)
	BlendScreen                   // Dst = 1 - (1-Dst)*(1-Src), mixed by α
)

// Cell is one terminal character with explicit colors
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

var emptyCell = Cell{Rune: ' ', Fg: RGBWhite, Bg: RGBBlack}

// RenderBuffer is a cell compositor flushed to a tcell screen once per frame
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a cleared buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := max(0, width*height)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the buffer dimensions
func (b *RenderBuffer) Size() (width, height int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at (x, y), empty when out of bounds
func (b *RenderBuffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Set composites bg into the cell; a non-zero rune replaces rune and fg
func (b *RenderBuffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]

	if r != 0 {
		dst.Rune = r
		dst.Fg = fg
	}

	switch mode {
	case BlendReplace:
		dst.Bg = bg
	case BlendAlpha:
		dst.Bg = Blend(dst.Bg, bg, alpha)
	case BlendScreen:
		dst.Bg = Screen(dst.Bg, bg, alpha)
	}
}

// SetFg writes rune and foreground while preserving existing background
func (b *RenderBuffer) SetFg(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// Text writes s starting at (x, y) and returns the column after the last rune
func (b *RenderBuffer) Text(x, y int, s string, fg, bg RGB) int {
	for _, r := range s {
		if x >= b.width {
			break
		}
		if b.inBounds(x, y) {
			b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
		}
		x++
	}
	return x
}

// Flush writes every cell to screen; caller invokes Show
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(c.Fg.tcell()).Background(c.Bg.tcell())
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
