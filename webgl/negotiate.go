// SPDX-License-Identifier: Unlicense OR MIT

package webgl

import (
	"gioui.org/webpaint/internal/logger"
)

// Attributes are the context creation attributes passed to getContext.
type Attributes struct {
	Alpha     bool
	Antialias bool
	Depth     bool
	Stencil   bool
	// PreserveDrawingBuffer keeps the drawing buffer content after
	// the browser composites it.
	PreserveDrawingBuffer bool
	// Desynchronized requests low latency rendering.
	// See https://developers.google.com/web/updates/2019/05/desynchronized.
	Desynchronized bool
	// PowerPreference is one of "default", "high-performance" or
	// "low-power".
	PowerPreference string
}

// Option configures Negotiate.
type Option func(c *config)

type config struct {
	attrs Attributes
	host  Host
}

// DefaultAttributes are used unless WithAttributes is given.
var DefaultAttributes = Attributes{
	Alpha:           true,
	Desynchronized:  true,
	PowerPreference: "high-performance",
}

// defaultHost is replaced by the browser implementation on js.
var defaultHost Host = noHost{}

type noHost struct{}

func (noHost) UserAgent() string { return "" }

// WithAttributes overrides DefaultAttributes.
func WithAttributes(a Attributes) Option {
	return func(c *config) {
		c.attrs = a
	}
}

// WithHost sets the source of the user agent string.
func WithHost(h Host) Option {
	return func(c *config) {
		c.host = h
	}
}

// setup finishes the initialization of a freshly obtained context
// and returns its shader prefix.
type setup func(ctx Context, h Host) string

// setups holds the per version initialization.
var setups = map[Version]setup{
	WebGL1: webgl1ShaderPrefix,
	WebGL2: func(Context, Host) string { return "" },
}

// Negotiate obtains a context from c by trying the versions of s in
// order. The first version the canvas supplies is used.
func Negotiate(c Canvas, s Strategy, opts ...Option) (Negotiated, error) {
	cfg := config{
		attrs: DefaultAttributes,
		host:  defaultHost,
	}
	for _, o := range opts {
		o(&cfg)
	}
	versions := s.Versions()
	if len(versions) == 0 {
		return Negotiated{}, &ContextError{Kind: ErrUnsupported, Msg: "unknown strategy " + s.String()}
	}
	log := logger.Get()
	attrs := cfg.attrs.toMap()
	for _, v := range versions {
		ctx, err := c.GetContext(v.contextName(), attrs)
		if err != nil {
			return Negotiated{}, &ContextError{
				Kind:    ErrQueryFailed,
				Version: v,
				Msg:     "getContext(" + v.contextName() + ")",
				Err:     err,
			}
		}
		if ctx == nil {
			log.Debug("webgl: context not supported", "version", v, "strategy", s)
			continue
		}
		prefix := setups[v](ctx, cfg.host)
		log.Info("webgl: context negotiated", "version", v, "strategy", s, "shader_prefix", prefix)
		return Negotiated{Context: ctx, Version: v, ShaderPrefix: prefix}, nil
	}
	return Negotiated{}, &ContextError{Kind: ErrUnsupported, Msg: unsupportedMessage(s)}
}

func unsupportedMessage(s Strategy) string {
	switch s {
	case ForceWebGL1:
		return "this browser does not support WebGL 1"
	case ForceWebGL2:
		return "this browser does not support WebGL 2"
	default:
		return "this browser supports neither WebGL 1 nor WebGL 2"
	}
}

func (a Attributes) toMap() map[string]any {
	m := map[string]any{
		"alpha":                 a.Alpha,
		"antialias":             a.Antialias,
		"depth":                 a.Depth,
		"stencil":               a.Stencil,
		"preserveDrawingBuffer": a.PreserveDrawingBuffer,
		"desynchronized":        a.Desynchronized,
	}
	if a.PowerPreference != "" {
		m["powerPreference"] = a.PowerPreference
	}
	return m
}
