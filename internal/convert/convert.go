package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"

	"kagane-unscrambler/internal/imageformat"
)

// Output formats understood by Encode. Raw means the decoded page bytes
// are written unchanged and never reach this package.
const (
	FormatRaw  = "raw"
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// ValidFormat reports whether name is a known output format.
func ValidFormat(name string) bool {
	switch strings.ToLower(name) {
	case FormatRaw, FormatWebP, FormatTGA:
		return true
	}
	return false
}

// Ext returns the output file extension for format.
func Ext(format string) string {
	return "." + strings.ToLower(format)
}

// Decode parses a JPEG or WEBP page into NRGBA. The decoder is picked
// from the page signature; the image registry is not consulted because
// tga registers itself with an empty magic and would claim every input.
func Decode(data []byte) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	switch f := imageformat.Detect(data); f {
	case imageformat.JPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case imageformat.WEBP:
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("convert: decode: unsupported page format %s", f)
	}
	if err != nil {
		return nil, fmt.Errorf("convert: decode: %w", err)
	}
	return toNRGBA(img), nil
}

// Encode writes img in the given output format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("convert: webp encode: %w", err)
		}
	case FormatTGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("convert: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("convert: cannot encode to %q", format)
	}
	return nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
