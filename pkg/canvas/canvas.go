// Package canvas allocates the pixel buffers mondrian paints into.
//
// A canvas is an *image.RGBA pre-filled with an opaque background so that the
// unpainted leaf borders show up as grid lines once the image is encoded.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Background is the color left on every pixel no leaf paints.
var Background = color.RGBA{A: 255}

// New returns a width×height buffer filled with [Background].
// It panics on non-positive dimensions; call [Validate] first for user input.
func New(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		panic(errors.New(errors.ErrCodeInvalidDimensions, "canvas %dx%d", width, height))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return img
}

// Validate checks user-supplied dimensions against the optional caps.
func Validate(width, height, maxWidth, maxHeight int) error {
	return errors.ValidateDimensions(width, height, maxWidth, maxHeight)
}

// Clone copies src into a fresh *image.RGBA with the same bounds.
func Clone(src image.Image) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// Equal reports whether a and b have the same bounds and identical pixels.
func Equal(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	ra, rb := Clone(a), Clone(b)
	if len(ra.Pix) != len(rb.Pix) {
		return false
	}
	for i := range ra.Pix {
		if ra.Pix[i] != rb.Pix[i] {
			return false
		}
	}
	return true
}

// Histogram counts the pixels of img per color.
func Histogram(img image.Image) map[color.RGBA]int {
	h := make(map[color.RGBA]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			h[color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)]++
		}
	}
	return h
}
