// SPDX-License-Identifier: Unlicense OR MIT

// Command webpaint paints an animated scene into a browser canvas and
// shows thumbnails of captured frames. Build it with the non-browser
// variant of this command.
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"gioui.org/webpaint/f32"
	"gioui.org/webpaint/io/event"
	"gioui.org/webpaint/painter"
	"gioui.org/webpaint/prim"
	"gioui.org/webpaint/webgl"
)

const thumbWidth = 160

type demo struct {
	opts    options
	cnv     js.Value
	painter *painter.Painter
	// pending holds textures not yet uploaded.
	pending prim.TexturesDelta
	frame   int
	clicks  int
	// capture is set by a click and consumed by the next frame.
	capture []prim.UserData
	redraw  js.Func
	click   js.Func
}

func main() {
	opts, err := parseOptions(js.Global().Get("location").Get("search").String())
	if err != nil {
		fail(err)
		return
	}
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	painter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := webgl.CanvasByID(opts.canvasID)
	if err != nil {
		fail(err)
		return
	}
	p, err := painter.New(c, painter.WithStrategy(opts.strategy))
	if err != nil {
		fail(err)
		return
	}
	d := &demo{
		opts:    opts,
		cnv:     c.(interface{ Element() js.Value }).Element(),
		painter: p,
		pending: sceneTextures(),
	}
	slog.Info("webpaint started", "version", p.Version(), "max_texture", p.MaxTextureSide())
	d.redraw = js.FuncOf(func(this js.Value, args []js.Value) any {
		d.draw(args[0].Float() / 1000)
		return nil
	})
	d.click = js.FuncOf(func(this js.Value, args []js.Value) any {
		d.clicks++
		d.capture = append(d.capture, d.clicks)
		return nil
	})
	d.cnv.Call("addEventListener", "click", d.click)
	d.requestFrame()
	select {}
}

func (d *demo) requestFrame() {
	js.Global().Call("requestAnimationFrame", d.redraw)
}

func (d *demo) draw(t float64) {
	if d.painter.IsContextLost() {
		slog.Warn("webgl context lost; stopping")
		return
	}
	scale := float32(js.Global().Get("devicePixelRatio").Float())
	if scale <= 0 {
		scale = 1
	}
	d.resize(scale)
	size := d.painter.Canvas().Size()
	screen := f32.Pt(float32(size.X)/scale, float32(size.Y)/scale)

	d.frame++
	capture := d.capture
	d.capture = nil
	if n := d.opts.captureEvery; n > 0 && d.frame%n == 0 {
		capture = append(capture, -d.frame)
	}
	err := d.painter.PaintAndUpdateTextures(background, scene(t, screen), scale, d.pending, capture)
	if err != nil {
		fail(err)
		return
	}
	d.pending = prim.TexturesDelta{}
	for _, e := range d.painter.HandleScreenshots(nil) {
		d.showScreenshot(e)
	}
	d.requestFrame()
}

// resize matches the canvas backing store to its CSS size.
func (d *demo) resize(scale float32) {
	w := int(float32(d.cnv.Get("clientWidth").Float()) * scale)
	h := int(float32(d.cnv.Get("clientHeight").Float()) * scale)
	if w == 0 || h == 0 {
		return
	}
	if d.cnv.Get("width").Int() != w || d.cnv.Get("height").Int() != h {
		d.cnv.Set("width", w)
		d.cnv.Set("height", h)
	}
}

func (d *demo) showScreenshot(e event.Event) {
	s, ok := e.(painter.ScreenshotEvent)
	if !ok {
		return
	}
	url, err := pngDataURL(thumbnail(s.Image, thumbWidth))
	if err != nil {
		slog.Error("encoding screenshot", "error", err)
		return
	}
	doc := js.Global().Get("document")
	img := doc.Call("createElement", "img")
	img.Set("src", url)
	img.Set("title", captureTitle(s.UserData))
	shelf := doc.Call("getElementById", "screenshots")
	if shelf.IsNull() {
		shelf = doc.Get("body")
	}
	shelf.Call("appendChild", img)
}

func fail(err error) {
	slog.Error("webpaint", "error", err)
	doc := js.Global().Get("document")
	msg := doc.Call("createElement", "pre")
	msg.Set("textContent", err.Error())
	doc.Get("body").Call("appendChild", msg)
}
