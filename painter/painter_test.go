// SPDX-License-Identifier: Unlicense OR MIT

package painter

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/webpaint/f32"
	"gioui.org/webpaint/io/event"
	"gioui.org/webpaint/prim"
	"gioui.org/webpaint/webgl"
)

func newTestPainter(t *testing.T, opts ...Option) (*Painter, *fakeCanvas, *fakeExecutor) {
	t.Helper()
	cnv := &fakeCanvas{size: image.Pt(320, 240), ctx: &fakeContext{}, webgl2: true}
	exec := newFakeExecutor()
	opts = append([]Option{WithExecutor(func(webgl.Negotiated) (Executor, error) {
		return exec, nil
	})}, opts...)
	p, err := New(cnv, opts...)
	require.NoError(t, err)
	return p, cnv, exec
}

func mesh(tex prim.TextureID) prim.ClippedPrimitive {
	return prim.ClippedPrimitive{
		ClipRect: f32.Rect(0, 0, 100, 100),
		Primitive: prim.Mesh{
			Texture:  tex,
			Indices:  []uint32{0, 1, 2},
			Vertices: make([]prim.Vertex, 3),
		},
	}
}

func image1x1() prim.ImageDelta {
	return prim.ImageDelta{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
}

func TestNew(t *testing.T) {
	p, cnv, _ := newTestPainter(t)
	assert.Equal(t, webgl.WebGL2, p.Version())
	assert.Empty(t, p.ShaderPrefix())
	assert.Same(t, cnv, p.Canvas())
	assert.Equal(t, 2048, p.MaxTextureSide())
	assert.False(t, p.IsContextLost())
}

func TestNewStrategy(t *testing.T) {
	p, _, _ := newTestPainter(t, WithStrategy(webgl.ForceWebGL1))
	assert.Equal(t, webgl.WebGL1, p.Version())
}

func TestNewUnsupported(t *testing.T) {
	cnv := &fakeCanvas{ctx: &fakeContext{}}
	called := false
	_, err := New(cnv, WithStrategy(webgl.ForceWebGL2), WithExecutor(func(webgl.Negotiated) (Executor, error) {
		called = true
		return newFakeExecutor(), nil
	}))
	assert.ErrorIs(t, err, webgl.ErrUnsupported)
	assert.False(t, called)
}

func TestNewExecutorFailure(t *testing.T) {
	cnv := &fakeCanvas{ctx: &fakeContext{}, webgl2: true}
	execErr := errors.New("no index extension")
	_, err := New(cnv, WithExecutor(func(webgl.Negotiated) (Executor, error) {
		return nil, execErr
	}))
	assert.ErrorIs(t, err, execErr)
	assert.True(t, cnv.ctx.released)
}

func TestFrameOrder(t *testing.T) {
	p, cnv, exec := newTestPainter(t)
	delta := prim.TexturesDelta{
		Set:  []prim.TextureSet{{ID: 2, Delta: image1x1()}, {ID: 1, Delta: image1x1()}},
		Free: []prim.TextureID{1, 2},
	}
	// The mesh uses textures inserted and freed by the same delta.
	prims := []prim.ClippedPrimitive{mesh(1), mesh(2)}
	err := p.PaintAndUpdateTextures(prim.Rgba{0, 0, 0, 1}, prims, 2, delta, []prim.UserData{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"set 2",
		"set 1",
		"clear (320,240) [0 0 0 1]",
		"paint (320,240) 2 2",
		"read (320,240)",
		"free 1",
		"free 2",
	}, exec.ops)
	assert.Equal(t, 1, cnv.sizeCalls)
	assert.Empty(t, exec.textures)
}

func TestFrameUsesCurrentSize(t *testing.T) {
	p, cnv, exec := newTestPainter(t)
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, nil))
	cnv.size = image.Pt(640, 480)
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{1}))
	assert.Equal(t, []string{
		"clear (320,240) [0 0 0 0]",
		"paint (320,240) 1 0",
		"clear (640,480) [0 0 0 0]",
		"paint (640,480) 1 0",
		"read (640,480)",
	}, exec.ops)
	evs := p.HandleScreenshots(nil)
	require.Len(t, evs, 1)
	assert.Equal(t, image.Rect(0, 0, 640, 480), evs[0].(ScreenshotEvent).Image.Bounds())
}

func TestCaptureEmptyCanvas(t *testing.T) {
	p, cnv, exec := newTestPainter(t)
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{
		Set: []prim.TextureSet{{ID: 1, Delta: image1x1()}},
	}, nil))
	cnv.size = image.Point{}
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{
		Free: []prim.TextureID{1},
	}, []prim.UserData{"hidden"}))
	assert.False(t, exec.textures[1])
	evs := p.HandleScreenshots(nil)
	require.Len(t, evs, 1)
	ev := evs[0].(ScreenshotEvent)
	assert.Equal(t, "hidden", ev.UserData)
	require.NotNil(t, ev.Image)
	assert.True(t, ev.Image.Bounds().Empty())
}

func TestNoCaptureNoQueue(t *testing.T) {
	p, _, exec := newTestPainter(t)
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, nil))
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{}))
	assert.Zero(t, p.PendingScreenshots())
	assert.NotContains(t, exec.ops, "read (320,240)")
	assert.Empty(t, p.HandleScreenshots(nil))
}

func TestScreenshotTokensShareImage(t *testing.T) {
	p, _, _ := newTestPainter(t, WithViewport(7))
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{"t1", "t2"}))
	assert.Equal(t, 1, p.PendingScreenshots())
	evs := p.HandleScreenshots(nil)
	require.Len(t, evs, 2)
	e1, e2 := evs[0].(ScreenshotEvent), evs[1].(ScreenshotEvent)
	assert.Equal(t, "t1", e1.UserData)
	assert.Equal(t, "t2", e2.UserData)
	assert.Same(t, e1.Image, e2.Image)
	assert.Equal(t, ViewportID(7), e1.Viewport)
}

func TestScreenshotsFIFO(t *testing.T) {
	p, _, _ := newTestPainter(t)
	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{i}))
	}
	// Frames without capture in between do not disturb the queue.
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, nil))
	existing := []event.Event{ScreenshotEvent{UserData: "old"}}
	evs := p.HandleScreenshots(existing)
	require.Len(t, evs, n+1)
	assert.Equal(t, "old", evs[0].(ScreenshotEvent).UserData)
	for i := 0; i < n; i++ {
		e := evs[i+1].(ScreenshotEvent)
		assert.Equal(t, i, e.UserData)
		// The fake executor tags each image with its frame number.
		assert.Equal(t, uint8(i+1), e.Image.Pix[0])
	}
	assert.Zero(t, p.PendingScreenshots())
	assert.Empty(t, p.HandleScreenshots(nil))
}

func TestCaptureTokensCopied(t *testing.T) {
	p, _, _ := newTestPainter(t)
	tokens := []prim.UserData{"a", "b"}
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, tokens))
	tokens[0] = "changed"
	evs := p.HandleScreenshots(nil)
	require.Len(t, evs, 2)
	assert.Equal(t, "a", evs[0].(ScreenshotEvent).UserData)
}

func TestPaintErrors(t *testing.T) {
	for _, op := range []string{"set", "clear", "paint", "read"} {
		t.Run(op, func(t *testing.T) {
			p, _, exec := newTestPainter(t)
			require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{"kept"}))
			require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{
				Set: []prim.TextureSet{{ID: 1, Delta: image1x1()}},
			}, nil))

			exec.failOn = op
			delta := prim.TexturesDelta{
				Set:  []prim.TextureSet{{ID: 2, Delta: image1x1()}},
				Free: []prim.TextureID{1},
			}
			err := p.PaintAndUpdateTextures(prim.Rgba{}, []prim.ClippedPrimitive{mesh(1)}, 1, delta, []prim.UserData{"lost"})
			require.Error(t, err)
			var perr *PaintError
			require.ErrorAs(t, err, &perr)
			assert.EqualError(t, perr.Err, op+" failed")

			// Prior state is intact: texture 1 was not freed and the
			// earlier capture is still queued.
			assert.True(t, exec.textures[1])
			assert.Equal(t, 1, p.PendingScreenshots())
			evs := p.HandleScreenshots(nil)
			require.Len(t, evs, 1)
			assert.Equal(t, "kept", evs[0].(ScreenshotEvent).UserData)

			// The next frame succeeds.
			exec.failOn = ""
			assert.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, []prim.ClippedPrimitive{mesh(1)}, 1, prim.TexturesDelta{}, nil))
		})
	}
}

func TestPaintInvalidScale(t *testing.T) {
	p, cnv, exec := newTestPainter(t)
	err := p.PaintAndUpdateTextures(prim.Rgba{}, nil, 0, prim.TexturesDelta{}, []prim.UserData{1})
	var perr *PaintError
	assert.ErrorAs(t, err, &perr)
	assert.Empty(t, exec.ops)
	assert.Zero(t, cnv.sizeCalls)
	assert.Zero(t, p.PendingScreenshots())
}

func TestRelease(t *testing.T) {
	p, cnv, exec := newTestPainter(t)
	require.NoError(t, p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, []prim.UserData{1}))
	p.Release()
	assert.True(t, exec.released)
	assert.True(t, cnv.ctx.released)
	assert.Panics(t, func() {
		p.PaintAndUpdateTextures(prim.Rgba{}, nil, 1, prim.TexturesDelta{}, nil)
	})
	assert.Panics(t, func() { p.HandleScreenshots(nil) })
	assert.Panics(t, func() { p.PendingScreenshots() })
	assert.Panics(t, p.Release)
}
