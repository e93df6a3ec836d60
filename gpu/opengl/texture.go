// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"image"

	"golang.org/x/image/draw"
)

// rgbaPixels returns the premultiplied RGBA8 pixels of img, tightly
// packed, and the size of img. *image.RGBA images with tightly packed
// rows are used without copying.
func rgbaPixels(img image.Image) ([]byte, image.Point) {
	bounds := img.Bounds()
	size := bounds.Size()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*size.X {
		start := rgba.PixOffset(bounds.Min.X, bounds.Min.Y)
		return rgba.Pix[start : start+4*size.X*size.Y], size
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Copy(dst, image.Point{}, img, bounds, draw.Src, nil)
	return dst.Pix, size
}
