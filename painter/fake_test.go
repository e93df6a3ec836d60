// SPDX-License-Identifier: Unlicense OR MIT

package painter

import (
	"fmt"
	"image"

	"gioui.org/webpaint/prim"
	"gioui.org/webpaint/webgl"
)

type fakeCanvas struct {
	size      image.Point
	sizeCalls int
	ctx       *fakeContext
	// webgl2 controls whether a WebGL 2 context is offered.
	webgl2 bool
}

type fakeContext struct {
	released bool
}

func (c *fakeCanvas) GetContext(name string, attrs map[string]any) (webgl.Context, error) {
	if name == "webgl2" && !c.webgl2 {
		return nil, nil
	}
	return c.ctx, nil
}

func (c *fakeCanvas) Size() image.Point {
	c.sizeCalls++
	return c.size
}

func (c *fakeContext) HasExtension(string) bool   { return false }
func (c *fakeContext) ParameterString(int) string { return "" }
func (c *fakeContext) IsContextLost() bool        { return c.released }
func (c *fakeContext) Release()                   { c.released = true }

// fakeExecutor records operations and the textures they see.
type fakeExecutor struct {
	ops      []string
	textures map[prim.TextureID]bool
	// failOn makes the named operation fail.
	failOn   string
	frame    int
	released bool
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{textures: make(map[prim.TextureID]bool)}
}

func (e *fakeExecutor) fail(op string) error {
	if e.failOn == op {
		return fmt.Errorf("%s failed", op)
	}
	return nil
}

func (e *fakeExecutor) SetTexture(id prim.TextureID, d prim.ImageDelta) error {
	if err := e.fail("set"); err != nil {
		return err
	}
	e.ops = append(e.ops, fmt.Sprintf("set %d", id))
	e.textures[id] = true
	return nil
}

func (e *fakeExecutor) FreeTexture(id prim.TextureID) {
	e.ops = append(e.ops, fmt.Sprintf("free %d", id))
	delete(e.textures, id)
}

func (e *fakeExecutor) Clear(size image.Point, c prim.Rgba) error {
	if err := e.fail("clear"); err != nil {
		return err
	}
	e.ops = append(e.ops, fmt.Sprintf("clear %v %v", size, c))
	return nil
}

func (e *fakeExecutor) PaintPrimitives(size image.Point, ppp float32, prims []prim.ClippedPrimitive) error {
	if err := e.fail("paint"); err != nil {
		return err
	}
	for _, cp := range prims {
		if m, ok := cp.Primitive.(prim.Mesh); ok && !e.textures[m.Texture] {
			return fmt.Errorf("texture %d not available", m.Texture)
		}
	}
	e.ops = append(e.ops, fmt.Sprintf("paint %v %v %d", size, ppp, len(prims)))
	e.frame++
	return nil
}

func (e *fakeExecutor) ReadScreenRGBA(size image.Point) (*image.RGBA, error) {
	if err := e.fail("read"); err != nil {
		return nil, err
	}
	e.ops = append(e.ops, fmt.Sprintf("read %v", size))
	img := image.NewRGBA(image.Rectangle{Max: size})
	// Tag the image with the frame it was read from.
	if len(img.Pix) > 0 {
		img.Pix[0] = uint8(e.frame)
	}
	return img, nil
}

func (e *fakeExecutor) MaxTextureSide() int { return 2048 }

func (e *fakeExecutor) Release() { e.released = true }
