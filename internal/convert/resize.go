package convert

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img so that its longer side is at most maxSize,
// keeping the aspect ratio. Images already within bounds, or a
// non-positive maxSize, are returned unchanged.
func Downsample(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	dw, dh := maxSize, maxSize
	if w >= h {
		dh = max(1, h*maxSize/w)
	} else {
		dw = max(1, w*maxSize/h)
	}

	// Pages are opaque, so no premultiply pass is needed before filtering.
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
