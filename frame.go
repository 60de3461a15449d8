package qrcode

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Frame names a decorative border drawn around the rendered code.
type Frame string

const (
	FrameNone    Frame = "none"
	FrameSimple  Frame = "simple"
	FrameDouble  Frame = "double"
	FrameRounded Frame = "rounded"
)

var Frames = []Frame{FrameNone, FrameSimple, FrameDouble, FrameRounded}

func ParseFrame(s string) (Frame, error) {
	for _, frame := range Frames {
		if string(frame) == s {
			return frame, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFrame, s)
}

// Framed is a rendered code plus the frame it is displayed in. The inner
// image is never modified.
type Framed struct {
	Inner image.Image
	Frame Frame
	Color color.Color
}

// Compose wraps img in frame. Border strokes use c, or black when c is nil.
func Compose(img image.Image, frame Frame, c color.Color) *Framed {
	if c == nil {
		c = color.Black
	}

	return &Framed{Inner: img, Frame: frame, Color: c}
}

// Class returns the wrapper class list used by HTML hosts.
func (f *Framed) Class() string {
	if f.Frame == FrameNone || f.Frame == "" {
		return "qr-wrapper"
	}

	return "qr-wrapper frame-" + string(f.Frame)
}

// Padding is the border width added on every side by Image.
func (f *Framed) Padding() int {
	if f.Frame == FrameNone || f.Frame == "" {
		return 0
	}

	return max(f.Inner.Bounds().Dx()/16, 4)
}

// Image draws the border and places the inner image, unchanged, at (Padding, Padding).
func (f *Framed) Image() image.Image {
	pad := f.Padding()
	if pad == 0 {
		return f.Inner
	}

	b := f.Inner.Bounds()
	w, h := b.Dx()+2*pad, b.Dy()+2*pad

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(f.Color)

	p := float64(pad)
	line := p / 4

	switch f.Frame {
	case FrameSimple:
		dc.SetLineWidth(line)
		dc.DrawRectangle(line/2, line/2, float64(w)-line, float64(h)-line)
		dc.Stroke()
	case FrameDouble:
		thin := line / 2
		dc.SetLineWidth(thin)
		dc.DrawRectangle(thin/2, thin/2, float64(w)-thin, float64(h)-thin)
		dc.Stroke()
		dc.DrawRectangle(p/2, p/2, float64(w)-p, float64(h)-p)
		dc.Stroke()
	case FrameRounded:
		dc.SetLineWidth(line)
		dc.DrawRoundedRectangle(line/2, line/2, float64(w)-line, float64(h)-line, p)
		dc.Stroke()
	}

	dst, ok := dc.Image().(*image.RGBA)
	if !ok {
		return dc.Image()
	}

	draw.Draw(dst, image.Rect(pad, pad, pad+b.Dx(), pad+b.Dy()), f.Inner, b.Min, draw.Src)

	return dst
}
