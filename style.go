package qrcode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Style selects how dark modules are drawn.
type Style string

const (
	StyleClassic  Style = "classic"
	StyleRounded  Style = "rounded"
	StyleDotted   Style = "dotted"
	StyleGradient Style = "gradient"
)

var Styles = []Style{StyleClassic, StyleRounded, StyleDotted, StyleGradient}

func ParseStyle(s string) (Style, error) {
	for _, style := range Styles {
		if string(style) == s {
			return style, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// PitchMode decides how the canvas is split into cells.
type PitchMode string

const (
	// PitchAligned uses the module layout reported by the encoder and falls
	// back to PitchFixed when the grid has none.
	PitchAligned PitchMode = "aligned"

	// PitchFixed uses FixedPitch-pixel cells from the top-left corner,
	// regardless of the symbol's real module size.
	PitchFixed PitchMode = "fixed"
)

func ParsePitchMode(s string) (PitchMode, error) {
	switch PitchMode(s) {
	case PitchAligned, PitchFixed:
		return PitchMode(s), nil
	default:
		return "", fmt.Errorf("unknown pitch mode %q", s)
	}
}

const (
	// FixedPitch is the cell edge used by PitchFixed.
	FixedPitch = 12

	// A sampled pixel whose red channel is below this value is dark.
	darkThreshold = 128

	// Cells smaller than this are filled completely whatever the style.
	MinStyledPitch = 5
)

// Gradient stops used by StyleGradient, from the top-left corner to the bottom-right.
var (
	GradientStart = color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	GradientEnd   = color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}
)

// Cell is one square region of the canvas. Cells on the right and bottom
// edges may be truncated by the canvas bounds.
type Cell struct {
	X, Y  int
	W, H  int
	Pitch int

	// Finder is set for modules of a position detection pattern. Those are
	// always drawn as full squares so readers can lock onto the symbol.
	Finder bool
}

// Mask records which cells were classified dark.
type Mask struct {
	Cells []Cell
	Dark  []bool
}

// DarkCount returns the number of dark cells.
func (m *Mask) DarkCount() int {
	n := 0

	for _, d := range m.Dark {
		if d {
			n++
		}
	}

	return n
}

// Cells partitions the grid according to mode.
func Cells(g *Grid, mode PitchMode) []Cell {
	size := g.Size()

	if mode == PitchAligned && g.Layout != nil && g.Layout.Pitch > 0 {
		l := g.Layout
		cells := make([]Cell, 0, l.Modules*l.Modules)

		for j := 0; j < l.Modules; j++ {
			for i := 0; i < l.Modules; i++ {
				cells = append(cells, Cell{
					X:     l.Origin.X + i*l.Pitch,
					Y:     l.Origin.Y + j*l.Pitch,
					W:      l.Pitch,
					H:      l.Pitch,
					Pitch:  l.Pitch,
					Finder: l.finder(i, j),
				})
			}
		}

		return cells
	}

	var cells []Cell

	for y := 0; y < size; y += FixedPitch {
		for x := 0; x < size; x += FixedPitch {
			cells = append(cells, Cell{
				X:     x,
				Y:     y,
				W:     min(FixedPitch, size-x),
				H:     min(FixedPitch, size-y),
				Pitch: FixedPitch,
			})
		}
	}

	return cells
}

// Classify samples the top-left pixel of every cell.
func Classify(g *Grid, mode PitchMode) *Mask {
	cells := Cells(g, mode)
	dark := make([]bool, len(cells))
	origin := g.Image.Bounds().Min

	for i, c := range cells {
		r, _, _, _ := g.Image.At(origin.X+c.X, origin.Y+c.Y).RGBA()
		dark[i] = r>>8 < darkThreshold
	}

	return &Mask{Cells: cells, Dark: dark}
}

// RenderOptions carries the colors and strategy for Render.
type RenderOptions struct {
	Style      Style
	Pitch      PitchMode
	Foreground color.Color
	Background color.Color
}

// Render redraws the grid in the requested style. The returned image has the
// same size as the grid; classic returns the grid image itself. Finder pattern
// modules and cells under MinStyledPitch are filled as plain squares.
func Render(g *Grid, opts RenderOptions) (image.Image, error) {
	if opts.Style == StyleClassic {
		return g.Image, nil
	}

	switch opts.Style {
	case StyleRounded, StyleDotted, StyleGradient:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, opts.Style)
	}

	fg, bg := opts.Foreground, opts.Background
	if fg == nil {
		fg = color.Black
	}

	if bg == nil {
		bg = color.White
	}

	mask := Classify(g, opts.Pitch)
	size := g.Size()

	dc := gg.NewContext(size, size)
	dc.SetColor(bg)
	dc.Clear()

	switch opts.Style {
	case StyleGradient:
		grad := gg.NewLinearGradient(0, 0, float64(size), float64(size))
		grad.AddColorStop(0, GradientStart)
		grad.AddColorStop(1, GradientEnd)
		dc.SetFillStyle(grad)
	default:
		dc.SetColor(fg)
	}

	for i, c := range mask.Cells {
		if !mask.Dark[i] {
			continue
		}

		drawCell(dc, opts.Style, c)
	}

	return dc.Image(), nil
}

func drawCell(dc *gg.Context, style Style, c Cell) {
	x, y := float64(c.X), float64(c.Y)
	w, h := float64(c.W), float64(c.H)
	m := float64(c.Pitch)

	if c.Finder || c.Pitch < MinStyledPitch || c.W <= 2 || c.H <= 2 {
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()

		return
	}

	switch style {
	case StyleRounded:
		r := m / 4
		if limit := min(w-2, h-2) / 2; r > limit {
			r = limit
		}

		dc.DrawRoundedRectangle(x+1, y+1, w-2, h-2, r)
	case StyleDotted:
		dc.DrawCircle(x+m/2, y+m/2, m/3)
	case StyleGradient:
		dc.DrawRectangle(x+1, y+1, w-2, h-2)
	}

	dc.Fill()
}
