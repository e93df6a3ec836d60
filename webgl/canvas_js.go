// SPDX-License-Identifier: Unlicense OR MIT

package webgl

import (
	"fmt"
	"image"
	"syscall/js"

	"gioui.org/webpaint/internal/gl"
)

type canvas struct {
	cnv js.Value
}

type context struct {
	ctx js.Value
}

type browser struct{}

func init() {
	defaultHost = browser{}
}

// NewCanvas wraps an HTMLCanvasElement or OffscreenCanvas.
func NewCanvas(cnv js.Value) Canvas {
	return &canvas{cnv: cnv}
}

// CanvasByID looks up the canvas element with the given id.
func CanvasByID(id string) (Canvas, error) {
	cnv := js.Global().Get("document").Call("getElementById", id)
	if cnv.IsNull() || cnv.IsUndefined() {
		return nil, fmt.Errorf("webgl: no element with id %q", id)
	}
	return NewCanvas(cnv), nil
}

func (c *canvas) GetContext(name string, attrs map[string]any) (ctx Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			jerr, ok := r.(js.Error)
			if !ok {
				panic(r)
			}
			ctx, err = nil, jerr
		}
	}()
	v := c.cnv.Call("getContext", name, attrs)
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}
	return &context{ctx: v}, nil
}

func (c *canvas) Size() image.Point {
	return image.Point{
		X: c.cnv.Get("width").Int(),
		Y: c.cnv.Get("height").Int(),
	}
}

// Element returns the underlying canvas element.
func (c *canvas) Element() js.Value {
	return c.cnv
}

func (c *context) HasExtension(name string) bool {
	ext := c.ctx.Call("getExtension", name)
	return !ext.IsNull() && !ext.IsUndefined()
}

func (c *context) ParameterString(pname int) string {
	v := c.ctx.Call("getParameter", pname)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (c *context) IsContextLost() bool {
	return c.ctx.Call("isContextLost").Bool()
}

// GL returns the context for use with package gl.
func (c *context) GL() gl.Context {
	return gl.Context(c.ctx)
}

func (c *context) Release() {
	if ext := c.ctx.Call("getExtension", "WEBGL_lose_context"); !ext.IsNull() {
		ext.Call("loseContext")
	}
}

func (browser) UserAgent() string {
	ua := js.Global().Get("navigator").Get("userAgent")
	if ua.Type() != js.TypeString {
		return ""
	}
	return ua.String()
}
