// SPDX-License-Identifier: Unlicense OR MIT

package webgl

import (
	"image"

	"gioui.org/webpaint/internal/gl"
)

type fakeCanvas struct {
	// contexts maps context names to the context returned for them.
	// Missing names are unsupported.
	contexts map[string]*fakeContext
	// failures maps context names to query errors.
	failures map[string]error
	queried  []string
	attrs    map[string]any
}

type fakeContext struct {
	name       string
	extensions map[string]bool
	renderer   string
	queries    []string
	released   bool
}

type fakeHost string

func (c *fakeCanvas) GetContext(name string, attrs map[string]any) (Context, error) {
	c.queried = append(c.queried, name)
	c.attrs = attrs
	if err := c.failures[name]; err != nil {
		return nil, err
	}
	ctx, ok := c.contexts[name]
	if !ok {
		return nil, nil
	}
	ctx.name = name
	return ctx, nil
}

func (c *fakeCanvas) Size() image.Point {
	return image.Pt(640, 480)
}

func (c *fakeContext) HasExtension(name string) bool {
	c.queries = append(c.queries, name)
	return c.extensions[name]
}

func (c *fakeContext) ParameterString(pname int) string {
	if pname != gl.UNMASKED_RENDERER_WEBGL {
		return ""
	}
	c.queries = append(c.queries, "UNMASKED_RENDERER_WEBGL")
	return c.renderer
}

func (c *fakeContext) IsContextLost() bool { return c.released }

func (c *fakeContext) Release() { c.released = true }

func (h fakeHost) UserAgent() string { return string(h) }
