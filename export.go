package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	svgo "github.com/ajstarks/svgo"
	"github.com/signintech/gopdf"
	"golang.org/x/image/bmp"
)

// Format is an export file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
)

var Formats = []Format{FormatPNG, FormatJPEG, FormatBMP, FormatPDF, FormatSVG}

var mimeTypes = map[Format]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatBMP:  "image/bmp",
	FormatPDF:  "application/pdf",
	FormatSVG:  "image/svg+xml",
}

func ParseFormat(s string) (Format, error) {
	if s == "jpg" {
		return FormatJPEG, nil
	}

	if _, ok := mimeTypes[Format(s)]; ok {
		return Format(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MIME returns the media type of f.
func (f Format) MIME() string {
	return mimeTypes[f]
}

// FileName builds the download name "qrcode-<kind>-<unix millis>.<ext>".
func FileName(kind Kind, f Format, t time.Time) string {
	return fmt.Sprintf("qrcode-%s-%d.%s", kind, t.UnixMilli(), f)
}

// Result is one successful generation: the displayed image together with
// the payload and request that produced it.
type Result struct {
	Kind    Kind
	Payload string
	Request Request
	Style   Style

	// Image is the styled bitmap without its frame.
	Image  image.Image
	Framed *Framed

	// Base64 output.
	Base64 bool

	CreatedAt time.Time
}

// Artifact is an exported file.
type Artifact struct {
	Name   string
	Format Format
	Data   []byte
}

// Export serializes the result in format f. SVG re-invokes enc with the
// original request.
func (r *Result) Export(f Format, enc Encoder, now time.Time) (*Artifact, error) {
	var (
		data []byte
		err  error
	)

	switch f {
	case FormatPNG:
		data, err = r.PNG()
	case FormatJPEG:
		data, err = r.JPEG()
	case FormatBMP:
		data, err = r.BMP()
	case FormatPDF:
		data, err = r.PDF()
	case FormatSVG:
		data, err = r.SVG(enc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if err != nil {
		return nil, err
	}

	return &Artifact{Name: FileName(r.Kind, f, now), Format: f, Data: data}, nil
}

func (r *Result) PNG() ([]byte, error) {
	bts, err := encodePNG(r.Image)
	if err != nil {
		return nil, err
	}

	return r.wrap(FormatPNG, bts), nil
}

func (r *Result) JPEG() ([]byte, error) {
	var b bytes.Buffer

	if err := jpeg.Encode(&b, r.Image, &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		return nil, err
	}

	return r.wrap(FormatJPEG, b.Bytes()), nil
}

func (r *Result) BMP() ([]byte, error) {
	var b bytes.Buffer

	if err := bmp.Encode(&b, r.Image); err != nil {
		return nil, err
	}

	return r.wrap(FormatBMP, b.Bytes()), nil
}

// PDF places the framed image on a single page of the same size.
func (r *Result) PDF() ([]byte, error) {
	img := r.Image
	if r.Framed != nil {
		img = r.Framed.Image()
	}

	var b bytes.Buffer

	pdf := gopdf.GoPdf{}

	size := img.Bounds().Size()
	rect := gopdf.Rect{W: float64(size.X), H: float64(size.Y)}

	pdf.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: rect})
	pdf.AddPage()

	if err := pdf.ImageFrom(img, 0, 0, &rect); err != nil {
		return nil, err
	}

	if err := pdf.Write(&b); err != nil {
		return nil, err
	}

	return r.wrap(FormatPDF, b.Bytes()), nil
}

// SVG re-encodes the original payload and embeds the clean raster in a
// minimal SVG document sized to the requested dimensions. Styling is not
// carried over.
func (r *Result) SVG(enc Encoder) ([]byte, error) {
	grid, err := enc.Encode(r.Request)
	if err != nil {
		return nil, err
	}

	raster, err := encodePNG(grid.Image)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	size := r.Request.Size

	svg := svgo.New(&b)
	svg.Startview(size, size, 0, 0, size, size)
	svg.Image(0, 0, size, size, dataURI(FormatPNG, raster))
	svg.End()

	return r.wrap(FormatSVG, b.Bytes()), nil
}

func (r *Result) wrap(f Format, bts []byte) []byte {
	if !r.Base64 {
		return bts
	}

	return []byte(dataURI(f, bts))
}

func encodePNG(img image.Image) ([]byte, error) {
	encoder := png.Encoder{CompressionLevel: png.BestCompression}

	var b bytes.Buffer

	if err := encoder.Encode(&b, img); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func dataURI(f Format, bts []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", f.MIME(), base64.StdEncoding.EncodeToString(bts))
}
