// SPDX-License-Identifier: Unlicense OR MIT

/*
Package painter paints frames of clipped primitives to a WebGL canvas.

A Painter negotiates its context once, in New, and keeps it for its
whole lifetime. Each frame the caller passes the primitives to draw
and the texture changes they need to PaintAndUpdateTextures. Frames
may be captured by attaching user data to the paint call; captured
images are queued until HandleScreenshots turns them into events.

A Painter is not safe for concurrent use. It is meant to be driven
from the single goroutine that runs the browser frame callback.
*/
package painter

import (
	"errors"
	"image"
	"log/slog"

	"golang.org/x/exp/slices"

	"gioui.org/webpaint/internal/logger"
	"gioui.org/webpaint/io/event"
	"gioui.org/webpaint/prim"
	"gioui.org/webpaint/webgl"
)

// Executor uploads textures to and draws primitives on a negotiated
// context.
type Executor interface {
	SetTexture(id prim.TextureID, d prim.ImageDelta) error
	FreeTexture(id prim.TextureID)
	Clear(size image.Point, c prim.Rgba) error
	PaintPrimitives(size image.Point, pixelsPerPoint float32, prims []prim.ClippedPrimitive) error
	// ReadScreenRGBA reads back the framebuffer, top row first.
	ReadScreenRGBA(size image.Point) (*image.RGBA, error)
	MaxTextureSide() int
	Release()
}

// NewExecutorFunc creates the Executor for a negotiated context.
type NewExecutorFunc func(n webgl.Negotiated) (Executor, error)

// ViewportID identifies the viewport a painter draws.
type ViewportID uint64

// RootViewport is the main viewport.
const RootViewport ViewportID = 0

// Painter paints frames to a canvas.
type Painter struct {
	canvas   webgl.Canvas
	ctx      webgl.Context
	version  webgl.Version
	prefix   string
	viewport ViewportID
	exec     Executor

	screenshots []screenshot
}

// screenshot is a captured frame waiting for HandleScreenshots.
type screenshot struct {
	img      *image.RGBA
	userData []prim.UserData
}

// Option configures a Painter.
type Option func(cfg *config)

type config struct {
	strategy    webgl.Strategy
	negotiation []webgl.Option
	viewport    ViewportID
	newExecutor NewExecutorFunc
}

// defaultExecutor is the WebGL executor on js and nil elsewhere.
var defaultExecutor NewExecutorFunc

// WithStrategy sets the context negotiation strategy. The default is
// webgl.PreferWebGL2.
func WithStrategy(s webgl.Strategy) Option {
	return func(cfg *config) {
		cfg.strategy = s
	}
}

// WithAttributes sets the context creation attributes.
func WithAttributes(a webgl.Attributes) Option {
	return func(cfg *config) {
		cfg.negotiation = append(cfg.negotiation, webgl.WithAttributes(a))
	}
}

// WithHost overrides the browser description used during negotiation.
func WithHost(h webgl.Host) Option {
	return func(cfg *config) {
		cfg.negotiation = append(cfg.negotiation, webgl.WithHost(h))
	}
}

// WithViewport sets the viewport reported in ScreenshotEvents.
func WithViewport(id ViewportID) Option {
	return func(cfg *config) {
		cfg.viewport = id
	}
}

// WithExecutor overrides the executor created for the negotiated
// context.
func WithExecutor(f NewExecutorFunc) Option {
	return func(cfg *config) {
		cfg.newExecutor = f
	}
}

// SetLogger sets the logger used by the painter and the packages it
// drives. A nil logger disables logging, which is the default.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// New negotiates a context with canvas and prepares it for painting.
// An error means the canvas cannot be rendered to.
func New(canvas webgl.Canvas, opts ...Option) (*Painter, error) {
	cfg := config{
		strategy:    webgl.PreferWebGL2,
		viewport:    RootViewport,
		newExecutor: defaultExecutor,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.newExecutor == nil {
		return nil, errors.New("painter: no executor available on this platform")
	}
	n, err := webgl.Negotiate(canvas, cfg.strategy, cfg.negotiation...)
	if err != nil {
		return nil, err
	}
	exec, err := cfg.newExecutor(n)
	if err != nil {
		n.Context.Release()
		return nil, err
	}
	return &Painter{
		canvas:   canvas,
		ctx:      n.Context,
		version:  n.Version,
		prefix:   n.ShaderPrefix,
		viewport: cfg.viewport,
		exec:     exec,
	}, nil
}

// PaintAndUpdateTextures paints one frame. Texture insertions of delta
// are applied before drawing and removals after, so prims may use
// textures inserted or freed by the same delta. If capture is not
// empty, the frame is read back and queued for HandleScreenshots,
// once for all entries of capture.
//
// On error nothing is queued. Textures uploaded before the failure
// remain uploaded.
func (p *Painter) PaintAndUpdateTextures(clear prim.Rgba, prims []prim.ClippedPrimitive, pixelsPerPoint float32, delta prim.TexturesDelta, capture []prim.UserData) error {
	p.check()
	if pixelsPerPoint <= 0 {
		return &PaintError{Op: "paint", Err: errors.New("pixels per point must be positive")}
	}
	size := p.canvas.Size()
	for _, set := range delta.Set {
		if err := p.exec.SetTexture(set.ID, set.Delta); err != nil {
			return &PaintError{Op: "set texture", Err: err}
		}
	}
	if err := p.exec.Clear(size, clear); err != nil {
		return &PaintError{Op: "clear", Err: err}
	}
	if err := p.exec.PaintPrimitives(size, pixelsPerPoint, prims); err != nil {
		return &PaintError{Op: "paint", Err: err}
	}
	if len(capture) > 0 {
		img, err := p.exec.ReadScreenRGBA(size)
		if err != nil {
			return &PaintError{Op: "read screen", Err: err}
		}
		p.screenshots = append(p.screenshots, screenshot{
			img:      img,
			userData: slices.Clone(capture),
		})
	}
	for _, id := range delta.Free {
		p.exec.FreeTexture(id)
	}
	return nil
}

// HandleScreenshots appends a ScreenshotEvent to events for every
// queued capture, oldest first, and empties the queue. Captures with
// several user data entries produce one event per entry, all sharing
// the same image.
func (p *Painter) HandleScreenshots(events []event.Event) []event.Event {
	p.check()
	for _, s := range p.screenshots {
		for _, data := range s.userData {
			events = append(events, ScreenshotEvent{
				Viewport: p.viewport,
				Image:    s.img,
				UserData: data,
			})
		}
	}
	p.screenshots = nil
	return events
}

// PendingScreenshots returns the number of queued captures.
func (p *Painter) PendingScreenshots() int {
	p.check()
	return len(p.screenshots)
}

// MaxTextureSide returns the largest supported texture width and height.
func (p *Painter) MaxTextureSide() int {
	p.check()
	return p.exec.MaxTextureSide()
}

// Canvas returns the canvas the painter draws to.
func (p *Painter) Canvas() webgl.Canvas {
	return p.canvas
}

// Version returns the negotiated WebGL version.
func (p *Painter) Version() webgl.Version {
	return p.version
}

// ShaderPrefix returns the shader prefix chosen during negotiation.
func (p *Painter) ShaderPrefix() string {
	return p.prefix
}

// IsContextLost reports whether the browser has taken the context away.
func (p *Painter) IsContextLost() bool {
	p.check()
	return p.ctx.IsContextLost()
}

// Release frees the executor resources and the context. The Painter
// must not be used after Release.
func (p *Painter) Release() {
	p.check()
	p.exec.Release()
	p.ctx.Release()
	p.exec = nil
	p.ctx = nil
	p.screenshots = nil
}

func (p *Painter) check() {
	if p.exec == nil {
		panic("painter: use of released Painter")
	}
}
