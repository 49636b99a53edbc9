package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// Glyphs used by the terminal renderer
const (
	GlyphRocket   = 'A'
	GlyphFlame    = '*'
	GlyphIFO      = 'o'
	GlyphCrashed  = 'x'
	GlyphGround   = '='
	GlyphSky      = ' '
	clearSequence = "\033[H\033[2J"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// The bottom row is the ground line and the horizontal center is x = 0.
type TerminalRenderer struct {
	width       int
	height      int
	buffer      [][]rune
	scale       float64
	viewport    entity.Viewport
	out         io.Writer
	status      string
	clearScreen bool
	frame       string
}

// NewTerminalRenderer creates a renderer of width x height cells that
// emulates a window of the given viewport and writes frames to out.
func NewTerminalRenderer(width, height int, vp entity.Viewport, out io.Writer) *TerminalRenderer {
	width = max(width, 1)
	height = max(height, 2)

	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:    width,
		height:   height,
		buffer:   buffer,
		scale:    1,
		viewport: vp,
		out:      out,
	}
}

// SetClearScreen enables the ANSI clear sequence before every frame
func (r *TerminalRenderer) SetClearScreen(enabled bool) {
	r.clearScreen = enabled
}

// SetStatus sets the line printed under the frame
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// Frame returns the last presented frame
func (r *TerminalRenderer) Frame() string {
	return r.frame
}

// Viewport implements entity.Renderer
func (r *TerminalRenderer) Viewport() entity.Viewport {
	return r.viewport
}

// worldToScreen converts world coordinates to a cell. Vehicles on the surface
// land on the row just above the ground line.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	px := r.viewport.Width/2 + pos.X*entity.PixelsPerMeter*r.scale
	py := pos.Y * entity.PixelsPerMeter * r.scale

	col := int(math.Floor(px / r.viewport.Width * float64(r.width)))
	row := r.height - 2 - int(math.Floor(py/r.viewport.Height*float64(r.height-1)))
	return col, row
}

func (r *TerminalRenderer) plot(col, row int, glyph rune) {
	if col >= 0 && col < r.width && row >= 0 && row < r.height {
		r.buffer[row][col] = glyph
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear(scale float64) {
	r.scale = scale
	for y := range r.buffer {
		fill := GlyphSky
		if y == r.height-1 {
			fill = GlyphGround
		}
		for x := range r.buffer[y] {
			r.buffer[y][x] = fill
		}
	}
}

// RenderRocket implements entity.Renderer
func (r *TerminalRenderer) RenderRocket(rocket *entity.Rocket) {
	col, row := r.worldToScreen(rocket.Position)
	if rocket.Grounded() {
		r.plot(col, r.height-1, GlyphCrashed)
		return
	}
	r.plot(col, row, GlyphRocket)
	if rocket.IsThrusting() && row+1 < r.height-1 {
		r.plot(col, row+1, GlyphFlame)
	}
}

// RenderIFO implements entity.Renderer
func (r *TerminalRenderer) RenderIFO(ifo *entity.IFO) {
	col, row := r.worldToScreen(ifo.Position)
	if ifo.Grounded() {
		r.plot(col, r.height-1, GlyphCrashed)
		return
	}
	r.plot(col, row, GlyphIFO)
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("-", r.width) + "+\n")
	for y := range r.buffer {
		b.WriteString("|")
		b.WriteString(string(r.buffer[y]))
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", r.width) + "+\n")
	fmt.Fprintf(&b, "scale %.3f", r.scale)
	if r.status != "" {
		b.WriteString("  " + r.status)
	}
	b.WriteString("\n")

	r.frame = b.String()
	if r.out == nil {
		return
	}
	if r.clearScreen {
		io.WriteString(r.out, clearSequence)
	}
	io.WriteString(r.out, r.frame)
}
