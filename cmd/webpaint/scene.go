// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/webpaint/f32"
	"gioui.org/webpaint/prim"
)

const (
	whiteTexture prim.TextureID = iota
	checkerTexture
)

var (
	background = prim.Rgba{0.1, 0.1, 0.12, 1}
	panelColor = color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}
	quadColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// sceneTextures returns the textures the scene needs.
func sceneTextures() prim.TexturesDelta {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return prim.TexturesDelta{
		Set: []prim.TextureSet{
			{ID: whiteTexture, Delta: prim.ImageDelta{Image: white}},
			{ID: checkerTexture, Delta: prim.ImageDelta{
				Image: checkerboard(64, 8),
				Options: prim.TextureOptions{
					Magnification: prim.FilterNearest,
					Minification:  prim.FilterLinear,
					Wrap:          prim.WrapRepeat,
				},
			}},
		},
	}
}

// checkerboard returns a size×size image of cell×cell squares.
func checkerboard(size, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0xf0, G: 0xa0, B: 0x30, A: 0xff}
	dark := color.NRGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0xc0}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// scene returns the primitives of the frame at time t seconds, for a
// screen of the given size in points.
func scene(t float64, screen f32.Point) []prim.ClippedPrimitive {
	full := f32.Rect(0, 0, screen.X, screen.Y)
	const margin = 24
	if screen.X <= 2*margin || screen.Y <= 2*margin {
		return nil
	}
	panel := f32.Rect(margin, margin, screen.X-margin, screen.Y-margin)
	center := f32.Pt((panel.Min.X+panel.Max.X)/2, (panel.Min.Y+panel.Max.Y)/2)
	// Larger than the panel so that clipping shows.
	half := 0.4 * float32(math.Max(float64(panel.Dx()), float64(panel.Dy())))
	return []prim.ClippedPrimitive{
		{
			ClipRect:  full,
			Primitive: rectMesh(whiteTexture, panel, f32.Rect(0, 0, 1, 1), panelColor),
		},
		{
			ClipRect:  panel,
			Primitive: rotatedQuad(checkerTexture, center, half, t*0.5, quadColor),
		},
	}
}

func rectMesh(tex prim.TextureID, r, uv f32.Rectangle, c color.RGBA) prim.Mesh {
	return prim.Mesh{
		Texture: tex,
		Indices: []uint32{0, 1, 2, 2, 1, 3},
		Vertices: []prim.Vertex{
			{Pos: r.Min, UV: uv.Min, Color: c},
			{Pos: f32.Pt(r.Max.X, r.Min.Y), UV: f32.Pt(uv.Max.X, uv.Min.Y), Color: c},
			{Pos: f32.Pt(r.Min.X, r.Max.Y), UV: f32.Pt(uv.Min.X, uv.Max.Y), Color: c},
			{Pos: r.Max, UV: uv.Max, Color: c},
		},
	}
}

// rotatedQuad returns a square of half side half around center,
// rotated by angle radians. The texture repeats 4 times per side.
func rotatedQuad(tex prim.TextureID, center f32.Point, half float32, angle float64, c color.RGBA) prim.Mesh {
	sin, cos := math.Sincos(angle)
	s, co := float32(sin), float32(cos)
	corner := func(dx, dy float32) f32.Point {
		return f32.Pt(center.X+(dx*co-dy*s)*half, center.Y+(dx*s+dy*co)*half)
	}
	return prim.Mesh{
		Texture: tex,
		Indices: []uint32{0, 1, 2, 2, 1, 3},
		Vertices: []prim.Vertex{
			{Pos: corner(-1, -1), UV: f32.Pt(0, 0), Color: c},
			{Pos: corner(1, -1), UV: f32.Pt(4, 0), Color: c},
			{Pos: corner(-1, 1), UV: f32.Pt(0, 4), Color: c},
			{Pos: corner(1, 1), UV: f32.Pt(4, 4), Color: c},
		},
	}
}

// captureTitle describes the capture token of a screenshot. Positive
// tokens count clicks, negative tokens are frame numbers.
func captureTitle(data prim.UserData) string {
	n, ok := data.(int)
	switch {
	case !ok:
		return "capture"
	case n < 0:
		return "frame " + strconv.Itoa(-n)
	default:
		return "click " + strconv.Itoa(n)
	}
}
