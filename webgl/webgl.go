// SPDX-License-Identifier: Unlicense OR MIT

/*
Package webgl negotiates a WebGL rendering context with a host canvas.

Negotiate tries the WebGL versions allowed by a Strategy in order and
returns the first context the canvas supplies, together with a shader
prefix compensating for known driver defects of that context.

A canvas that reports a context type as unsupported (getContext returns
null) makes negotiation move on to the next version. A canvas whose
getContext call fails outright is treated as a broken host and stops
negotiation with ErrQueryFailed.
*/
package webgl

import (
	"errors"
	"fmt"
	"image"
)

// Version is a WebGL API version.
type Version uint8

const (
	WebGL1 Version = 1 + iota
	WebGL2
)

// Canvas is a host canvas element able to supply rendering contexts.
type Canvas interface {
	// GetContext returns the named context type. It returns a nil
	// Context and a nil error if the host does not support the type,
	// and a non-nil error if the query itself failed.
	GetContext(name string, attrs map[string]any) (Context, error)
	// Size returns the current size of the drawing buffer in pixels.
	Size() image.Point
}

// Context is a rendering context obtained from a Canvas.
type Context interface {
	// HasExtension enables the named extension and reports whether it
	// is available.
	HasExtension(name string) bool
	// ParameterString returns the string valued context parameter
	// pname, or the empty string if the parameter is not a string.
	ParameterString(pname int) string
	IsContextLost() bool
	// Release gives up the context. The context is invalid after
	// Release.
	Release()
}

// Host describes the browser running the canvas.
type Host interface {
	UserAgent() string
}

// Negotiated is the outcome of a successful negotiation.
type Negotiated struct {
	Context Context
	Version Version
	// ShaderPrefix must be inserted into every shader compiled for
	// Context. It is empty when no workaround applies.
	ShaderPrefix string
}

var (
	// ErrUnsupported is reported when no WebGL version allowed by the
	// strategy is supported by the canvas.
	ErrUnsupported = errors.New("webgl: unsupported")
	// ErrQueryFailed is reported when the canvas failed to answer a
	// context query.
	ErrQueryFailed = errors.New("webgl: context query failed")
)

// ContextError describes a failed negotiation. Kind is either
// ErrUnsupported or ErrQueryFailed, and matches with errors.Is.
type ContextError struct {
	Kind error
	// Version is the version being queried when the error occurred.
	// It is zero for ErrUnsupported.
	Version Version
	Msg     string
	// Err is the host error for ErrQueryFailed.
	Err error
}

func (e *ContextError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *ContextError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func (v Version) String() string {
	switch v {
	case WebGL1:
		return "WebGL1"
	case WebGL2:
		return "WebGL2"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}

// contextName is the name passed to getContext.
func (v Version) contextName() string {
	switch v {
	case WebGL1:
		return "webgl"
	case WebGL2:
		return "webgl2"
	default:
		panic("webgl: invalid version")
	}
}
