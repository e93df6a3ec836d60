// SPDX-License-Identifier: Unlicense OR MIT

/*
Package prim defines the per-frame input of a painter: clipped,
pre-tessellated primitives and the texture changes they depend on.

Values in this package are produced by a tessellator and consumed
read-only by the painter and its executor. None of them are retained
across frames.
*/
package prim

import (
	"image"
	"image/color"

	"gioui.org/webpaint/f32"
)

// Rgba is a linear color with components in [0, 1].
type Rgba [4]float32

// TextureID identifies a texture for the lifetime of the context it
// was uploaded to.
type TextureID uint64

// UserData is an opaque token attached to a screenshot request and
// echoed back with the captured image.
type UserData any

// Filter is a texture sampling filter.
type Filter uint8

// WrapMode is a texture coordinate wrapping mode.
type WrapMode uint8

const (
	FilterLinear Filter = iota
	FilterNearest
)

const (
	WrapClampToEdge WrapMode = iota
	WrapRepeat
	WrapMirroredRepeat
)

// TextureOptions control how a texture is sampled.
type TextureOptions struct {
	Magnification Filter
	Minification  Filter
	Wrap          WrapMode
}

// ImageDelta is a change to a single texture.
type ImageDelta struct {
	// Image holds the new pixels. Images other than tightly packed
	// *image.RGBA are converted to premultiplied RGBA before upload.
	Image image.Image
	// Pos is the destination of a partial update. A nil Pos replaces
	// the whole texture with Image.
	Pos     *image.Point
	Options TextureOptions
}

// IsWhole reports whether d replaces the whole texture.
func (d ImageDelta) IsWhole() bool {
	return d.Pos == nil
}

// TextureSet is an insertion or update of one texture.
type TextureSet struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta is the set of texture changes for one frame. Set is
// applied before drawing and Free after, both in slice order.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

// IsEmpty reports whether d contains no changes.
func (d TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

// Append moves the changes of d2 after those of d.
func (d *TexturesDelta) Append(d2 TexturesDelta) {
	d.Set = append(d.Set, d2.Set...)
	d.Free = append(d.Free, d2.Free...)
}

// Vertex is a mesh vertex. Pos is in logical points, UV in normalized
// texture coordinates and Color is premultiplied sRGB.
type Vertex struct {
	Pos   f32.Point
	UV    f32.Point
	Color color.RGBA
}

// Primitive is either a Mesh or a Callback.
type Primitive interface {
	implementsPrimitive()
}

// Mesh is an indexed triangle list textured by a single texture.
type Mesh struct {
	Indices  []uint32
	Vertices []Vertex
	Texture  TextureID
}

// Callback is a primitive painted by user code directly on the
// graphics context.
type Callback struct {
	// Rect is the area the callback covers, in points.
	Rect f32.Rectangle
	// Paint is called with the viewport and scissor already set
	// for Rect and the clip rectangle of the primitive.
	Paint func(info CallbackInfo)
}

// CallbackInfo describes where a Callback is painted.
type CallbackInfo struct {
	// Viewport is the callback area in framebuffer pixels, origin
	// at the top left.
	Viewport image.Rectangle
	// Clip is the scissor rectangle in framebuffer pixels, origin
	// at the top left.
	Clip           image.Rectangle
	PixelsPerPoint float32
	ScreenSize     image.Point
}

// ClippedPrimitive is a primitive and the rectangle it is clipped to,
// in points.
type ClippedPrimitive struct {
	ClipRect  f32.Rectangle
	Primitive Primitive
}

func (Mesh) implementsPrimitive()     {}
func (Callback) implementsPrimitive() {}
