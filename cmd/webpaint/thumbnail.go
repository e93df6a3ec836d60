// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// thumbnail scales img down to at most width pixels wide, keeping its
// aspect ratio. Smaller images are returned unchanged.
func thumbnail(img *image.RGBA, width int) *image.RGBA {
	sz := img.Bounds().Size()
	if sz.X <= width || sz.X == 0 {
		return img
	}
	h := sz.Y * width / sz.X
	if h == 0 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// pngDataURL encodes img as a data URL suitable for an <img> element.
func pngDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
