// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 implementation of package image's
Point and Rectangle.

The coordinate space has the origin in the top left
corner with the axes extending right and down. Units are
logical points unless stated otherwise.
*/
package f32

import (
	"image"
	"math"
)

// A Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is shorthand for Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}.
// The returned Rectangle has x0 and y0 swapped if necessary
// so that it is canonical.
func Rect(x0, y0, x1, y1 float32) Rectangle {
	return Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}.Canon()
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dx returns r's width.
func (r Rectangle) Dx() float32 {
	return r.Max.X - r.Min.X
}

// Dy returns r's Height.
func (r Rectangle) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Mul returns r with both corners scaled by s.
func (r Rectangle) Mul(s float32) Rectangle {
	return Rectangle{Min: r.Min.Mul(s), Max: r.Max.Mul(s)}
}

// Intersect returns the intersection of r and s.
func (r Rectangle) Intersect(s Rectangle) Rectangle {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Canon returns the canonical version of r, where Min is to
// the upper left of Max.
func (r Rectangle) Canon() Rectangle {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Empty reports whether r represents the empty area.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rectangle) RoundOut() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{
			X: int(math.Floor(float64(r.Min.X))),
			Y: int(math.Floor(float64(r.Min.Y))),
		},
		Max: image.Point{
			X: int(math.Ceil(float64(r.Max.X))),
			Y: int(math.Ceil(float64(r.Max.Y))),
		},
	}
}

// FRect converts an integer rectangle to a Rectangle.
func FRect(r image.Rectangle) Rectangle {
	return Rectangle{
		Min: Point{X: float32(r.Min.X), Y: float32(r.Min.Y)},
		Max: Point{X: float32(r.Max.X), Y: float32(r.Max.Y)},
	}
}
