package qrcode

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// Number of light modules surrounding the symbol on each side.
const quietZone = 4

// Request is everything an Encoder needs to produce a Grid.
type Request struct {
	Payload    string
	Size       int
	Level      RecoveryLevel
	Foreground color.Color
	Background color.Color
}

// Layout locates the symbol's modules inside a Grid image. Modules counts the
// quiet zone; cell (i, j) spans Pitch pixels starting at Origin + (i, j)*Pitch.
type Layout struct {
	Origin  image.Point
	Pitch   int
	Modules int

	// Quiet is the width of the light border, in modules, on each side.
	Quiet int
}

// finder reports whether module (i, j), counted from the grid's top-left
// cell, lies inside one of the three position detection patterns.
func (l *Layout) finder(i, j int) bool {
	n := l.Modules - 2*l.Quiet
	x, y := i-l.Quiet, j-l.Quiet

	if x < 0 || y < 0 || x >= n || y >= n {
		return false
	}

	near := func(v int) bool { return v < 7 }
	far := func(v int) bool { return v >= n-7 }

	return (near(x) && near(y)) || (far(x) && near(y)) || (near(x) && far(y))
}

// Grid is the square bitmap produced by an Encoder.
type Grid struct {
	Image image.Image

	// Layout is nil when the encoder cannot report module positions.
	Layout *Layout
}

// Size returns the side length of the grid in pixels.
func (g *Grid) Size() int {
	return g.Image.Bounds().Dx()
}

// Encoder turns a payload into a square module bitmap.
type Encoder interface {
	Name() string
	Encode(req Request) (*Grid, error)
}

// bitmapEncoder adapts libraries that expose the symbol as a module matrix.
// The returned matrix must include the quiet zone.
type bitmapEncoder struct {
	name   string
	matrix func(payload string, level RecoveryLevel) ([][]bool, error)
}

func (e *bitmapEncoder) Name() string {
	return e.name
}

func (e *bitmapEncoder) Encode(req Request) (*Grid, error) {
	if req.Size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrEncoding, req.Size)
	}

	if req.Level < Low || req.Level > Highest {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLevel, req.Level)
	}

	bitmap, err := e.matrix(req.Payload, req.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncoding, e.name, err)
	}

	return rasterize(bitmap, req.Size, req.Foreground, req.Background), nil
}

// rasterize draws bitmap onto a size x size paletted image with whole-pixel
// modules centered in the canvas.
func rasterize(bitmap [][]bool, size int, fg, bg color.Color) *Grid {
	if fg == nil {
		fg = color.Black
	}

	if bg == nil {
		bg = color.White
	}

	// Minimum pixels (both width and height) required.
	realSize := len(bitmap)

	// Automatically increase the image size if it's not large enough.
	if size < realSize {
		size = realSize
	}

	pitch := size / realSize
	offset := (size - pitch*realSize) / 2

	rect := image.Rectangle{Min: image.Point{}, Max: image.Point{X: size, Y: size}}

	// Saves a few bytes to have them in this order.
	p := color.Palette([]color.Color{bg, fg})
	img := image.NewPaletted(rect, p)

	for y, row := range bitmap {
		for x, v := range row {
			if !v {
				continue
			}

			for py := 0; py < pitch; py++ {
				for px := 0; px < pitch; px++ {
					img.SetColorIndex(offset+x*pitch+px, offset+y*pitch+py, 1)
				}
			}
		}
	}

	return &Grid{
		Image: img,
		Layout: &Layout{
			Origin:  image.Point{X: offset, Y: offset},
			Pitch:   pitch,
			Modules: realSize,
			Quiet:   quietZone,
		},
	}
}

// withQuietZone pads an n x n module matrix with the standard light border.
func withQuietZone(n int, dark func(x, y int) bool) [][]bool {
	side := n + 2*quietZone
	bitmap := make([][]bool, side)

	for y := range bitmap {
		bitmap[y] = make([]bool, side)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			bitmap[y+quietZone][x+quietZone] = dark(x, y)
		}
	}

	return bitmap
}

var encoders = map[string]func() Encoder{}

func registerEncoder(name string, factory func() Encoder) {
	encoders[name] = factory
}

// DefaultEncoder is the backend used when none is configured.
const DefaultEncoder = "skip2"

// NewEncoder returns the named encoder backend.
func NewEncoder(name string) (Encoder, error) {
	if name == "" {
		name = DefaultEncoder
	}

	factory, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoder, name)
	}

	return factory(), nil
}

// EncoderNames lists the registered backends in lexical order.
func EncoderNames() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
