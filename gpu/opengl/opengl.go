// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl executes clipped primitives on a WebGL context.
package opengl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"gioui.org/shader"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/webpaint/f32"
	"gioui.org/webpaint/internal/gl"
	"gioui.org/webpaint/internal/logger"
	"gioui.org/webpaint/prim"
)

// Config describes the context a Backend runs on.
type Config struct {
	// WebGL2 enables sized internal texture formats and 32-bit
	// indices without extensions.
	WebGL2 bool
	// ShaderPrefix is inserted after the #version line of
	// every shader.
	ShaderPrefix string
}

// Backend uploads textures to and draws meshes on a WebGL context.
type Backend struct {
	funcs  Functions
	webgl2 bool
	prefix string

	prog        gl.Program
	uScreenSize gl.Uniform
	vertBuf     gl.Buffer
	indexBuf    gl.Buffer

	textures       map[prim.TextureID]*texture
	maxTextureSide int

	// Scratch space for vertex and index uploads.
	vertData  []byte
	indexData []byte
}

type texture struct {
	obj  gl.Texture
	size image.Point
}

// vertexSize is the size of an encoded prim.Vertex: position and
// texture coordinates as float32 pairs followed by 4 color bytes.
const vertexSize = 4*4 + 4

// New compiles the mesh program and allocates the vertex buffers.
func New(f Functions, cfg Config) (*Backend, error) {
	// WebGL 2 supports 32-bit indices natively.
	if !cfg.WebGL2 && !f.HasExtension("OES_element_index_uint") {
		return nil, errors.New("opengl: OES_element_index_uint not supported")
	}
	b := &Backend{
		funcs:          f,
		webgl2:         cfg.WebGL2,
		prefix:         cfg.ShaderPrefix,
		textures:       make(map[prim.TextureID]*texture),
		maxTextureSide: f.GetInteger(gl.MAX_TEXTURE_SIZE),
	}
	if err := b.newProgram(meshVert, meshFrag); err != nil {
		return nil, err
	}
	b.vertBuf = f.CreateBuffer()
	b.indexBuf = f.CreateBuffer()
	if err := glErr(f); err != nil {
		b.Release()
		return nil, err
	}
	logger.Get().Debug("opengl: backend created",
		"webgl2", cfg.WebGL2, "max_texture_side", b.maxTextureSide, "shader_prefix", cfg.ShaderPrefix)
	return b, nil
}

// MaxTextureSide returns the largest supported texture width and height.
func (b *Backend) MaxTextureSide() int {
	return b.maxTextureSide
}

// SetTexture creates, replaces or partially updates the texture id.
func (b *Backend) SetTexture(id prim.TextureID, d prim.ImageDelta) error {
	if d.Image == nil {
		return fmt.Errorf("opengl: texture %d: nil image", id)
	}
	pix, size := rgbaPixels(d.Image)
	if size.X > b.maxTextureSide || size.Y > b.maxTextureSide {
		return fmt.Errorf("opengl: texture %d: size %v exceeds maximum %d", id, size, b.maxTextureSide)
	}
	f := b.funcs
	t, exists := b.textures[id]
	if !d.IsWhole() {
		if !exists {
			return fmt.Errorf("opengl: partial update of unknown texture %d", id)
		}
		dst := image.Rectangle{Min: *d.Pos, Max: d.Pos.Add(size)}
		if !dst.In(image.Rectangle{Max: t.size}) {
			return fmt.Errorf("opengl: texture %d: update %v outside %v", id, dst, t.size)
		}
		f.BindTexture(gl.TEXTURE_2D, t.obj)
		setTextureOptions(f, d.Options)
		f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		f.TexSubImage2D(gl.TEXTURE_2D, 0, dst.Min.X, dst.Min.Y, size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, pix)
		return glErr(f)
	}
	if !exists {
		t = &texture{obj: f.CreateTexture()}
		if !t.obj.Valid() {
			return fmt.Errorf("opengl: texture %d: createTexture failed", id)
		}
		b.textures[id] = t
	}
	f.BindTexture(gl.TEXTURE_2D, t.obj)
	setTextureOptions(f, d.Options)
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.TexImage2D(gl.TEXTURE_2D, 0, b.internalFormat(), size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	t.size = size
	return glErr(f)
}

// FreeTexture deletes the texture id. Unknown ids are ignored.
func (b *Backend) FreeTexture(id prim.TextureID) {
	t, ok := b.textures[id]
	if !ok {
		logger.Get().Debug("opengl: free of unknown texture", "id", id)
		return
	}
	b.funcs.DeleteTexture(t.obj)
	delete(b.textures, id)
}

// HasTexture reports whether the texture id is allocated.
func (b *Backend) HasTexture(id prim.TextureID) bool {
	_, ok := b.textures[id]
	return ok
}

// Clear fills the default framebuffer of the given size with c.
func (b *Backend) Clear(size image.Point, c prim.Rgba) error {
	f := b.funcs
	f.BindDefaultFramebuffer()
	f.Disable(gl.SCISSOR_TEST)
	f.Viewport(0, 0, size.X, size.Y)
	f.ClearColor(c[0], c[1], c[2], c[3])
	f.Clear(gl.COLOR_BUFFER_BIT)
	return glErr(f)
}

// PaintPrimitives draws prims in order to the default framebuffer of
// the given size. Positions are scaled by pixelsPerPoint.
func (b *Backend) PaintPrimitives(size image.Point, pixelsPerPoint float32, prims []prim.ClippedPrimitive) error {
	if pixelsPerPoint <= 0 {
		return fmt.Errorf("opengl: invalid pixels per point %v", pixelsPerPoint)
	}
	f := b.funcs
	b.prepare(size, pixelsPerPoint)
	fb := f32.FRect(image.Rectangle{Max: size})
	for _, cp := range prims {
		fclip := cp.ClipRect.Mul(pixelsPerPoint).Intersect(fb)
		if fclip.Empty() {
			continue
		}
		clip := fclip.RoundOut()
		b.scissor(size, clip)
		switch p := cp.Primitive.(type) {
		case prim.Mesh:
			if err := b.drawMesh(p); err != nil {
				f.Disable(gl.SCISSOR_TEST)
				return err
			}
		case prim.Callback:
			if p.Paint == nil {
				continue
			}
			vp := p.Rect.Mul(pixelsPerPoint).RoundOut()
			if vp.Empty() {
				continue
			}
			f.Viewport(vp.Min.X, size.Y-vp.Max.Y, vp.Dx(), vp.Dy())
			p.Paint(prim.CallbackInfo{
				Viewport:       vp,
				Clip:           clip,
				PixelsPerPoint: pixelsPerPoint,
				ScreenSize:     size,
			})
			// The callback may have changed any state.
			b.prepare(size, pixelsPerPoint)
		default:
			f.Disable(gl.SCISSOR_TEST)
			return fmt.Errorf("opengl: unsupported primitive %T", cp.Primitive)
		}
	}
	f.Disable(gl.SCISSOR_TEST)
	return glErr(f)
}

// ReadScreenRGBA reads back the default framebuffer of the given size.
// A size with a zero side yields an empty image without reading.
func (b *Backend) ReadScreenRGBA(size image.Point) (*image.RGBA, error) {
	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("opengl: invalid screen size %v", size)
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	if size.X == 0 || size.Y == 0 {
		return img, nil
	}
	f := b.funcs
	f.BindDefaultFramebuffer()
	f.PixelStorei(gl.PACK_ALIGNMENT, 4)
	pix := make([]byte, size.X*size.Y*4)
	f.ReadPixels(0, 0, size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	if err := glErr(f); err != nil {
		return nil, err
	}
	flipRows(img.Pix, pix, img.Stride, size.Y)
	return img, nil
}

// Release deletes all textures and GPU objects owned by b.
func (b *Backend) Release() {
	f := b.funcs
	ids := maps.Keys(b.textures)
	slices.Sort(ids)
	for _, id := range ids {
		f.DeleteTexture(b.textures[id].obj)
	}
	b.textures = nil
	if b.prog.Valid() {
		f.DeleteProgram(b.prog)
	}
	if b.vertBuf.Valid() {
		f.DeleteBuffer(b.vertBuf)
	}
	if b.indexBuf.Valid() {
		f.DeleteBuffer(b.indexBuf)
	}
	*b = Backend{}
}

func (b *Backend) internalFormat() gl.Enum {
	if b.webgl2 {
		return gl.RGBA8
	}
	// WebGL 1 requires matching internal and external formats.
	return gl.RGBA
}

// prepare sets up the pipeline state for drawing meshes.
func (b *Backend) prepare(size image.Point, pixelsPerPoint float32) {
	f := b.funcs
	f.BindDefaultFramebuffer()
	f.Enable(gl.SCISSOR_TEST)
	f.Disable(gl.CULL_FACE)
	f.Disable(gl.DEPTH_TEST)
	f.Enable(gl.BLEND)
	f.BlendEquation(gl.FUNC_ADD)
	// Premultiplied alpha.
	f.BlendFuncSeparate(gl.ONE, gl.ONE_MINUS_SRC_ALPHA, gl.ONE_MINUS_DST_ALPHA, gl.ONE)
	f.Viewport(0, 0, size.X, size.Y)
	f.UseProgram(b.prog)
	f.Uniform2f(b.uScreenSize, float32(size.X)/pixelsPerPoint, float32(size.Y)/pixelsPerPoint)
	f.ActiveTexture(gl.TEXTURE0)
	f.BindBuffer(gl.ARRAY_BUFFER, b.vertBuf)
	f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.indexBuf)
	f.VertexAttribPointer(attribPos, 2, gl.FLOAT, false, vertexSize, 0)
	f.EnableVertexAttribArray(attribPos)
	f.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, vertexSize, 8)
	f.EnableVertexAttribArray(attribUV)
	f.VertexAttribPointer(attribColor, 4, gl.UNSIGNED_BYTE, true, vertexSize, 16)
	f.EnableVertexAttribArray(attribColor)
}

// scissor sets the scissor box to clip, given with a top left origin.
func (b *Backend) scissor(size image.Point, clip image.Rectangle) {
	b.funcs.Scissor(int32(clip.Min.X), int32(size.Y-clip.Max.Y), int32(clip.Dx()), int32(clip.Dy()))
}

func (b *Backend) drawMesh(m prim.Mesh) error {
	if len(m.Indices) == 0 || len(m.Vertices) == 0 {
		return nil
	}
	t, ok := b.textures[m.Texture]
	if !ok {
		return fmt.Errorf("opengl: mesh references unknown texture %d", m.Texture)
	}
	f := b.funcs
	b.vertData = encodeVertices(b.vertData[:0], m.Vertices)
	b.indexData = encodeIndices(b.indexData[:0], m.Indices)
	f.BindTexture(gl.TEXTURE_2D, t.obj)
	f.BufferData(gl.ARRAY_BUFFER, gl.STREAM_DRAW, b.vertData)
	f.BufferData(gl.ELEMENT_ARRAY_BUFFER, gl.STREAM_DRAW, b.indexData)
	f.DrawElements(gl.TRIANGLES, len(m.Indices), gl.UNSIGNED_INT, 0)
	return nil
}

func (b *Backend) newProgram(vert, frag shader.Sources) error {
	attr := make([]string, len(vert.Inputs))
	for _, inp := range vert.Inputs {
		attr[inp.Location] = inp.Name
	}
	vsrc, fsrc := insertPrefix(vert.GLSL100ES, b.prefix), insertPrefix(frag.GLSL100ES, b.prefix)
	p, err := createProgram(b.funcs, vsrc, fsrc, attr)
	if err != nil {
		return fmt.Errorf("opengl: %s/%s: %w", vert.Name, frag.Name, err)
	}
	b.prog = p
	b.funcs.UseProgram(p)
	for _, tex := range frag.Textures {
		u := b.funcs.GetUniformLocation(p, tex.Name)
		if u.Valid() {
			b.funcs.Uniform1i(u, tex.Binding)
		}
	}
	b.uScreenSize = b.funcs.GetUniformLocation(p, "u_screen_size")
	if !b.uScreenSize.Valid() {
		b.funcs.DeleteProgram(p)
		b.prog = gl.Program{}
		return errors.New("opengl: uniform u_screen_size not found")
	}
	logger.Get().Debug("opengl: program linked", "vert", vert.Name, "frag", frag.Name, "webgl2", b.webgl2)
	return nil
}

func createProgram(f Functions, vsSrc, fsSrc string, attribs []string) (gl.Program, error) {
	vs, err := createShader(f, gl.VERTEX_SHADER, vsSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer f.DeleteShader(vs)
	fs, err := createShader(f, gl.FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer f.DeleteShader(fs)
	prog := f.CreateProgram()
	if !prog.Valid() {
		return gl.Program{}, errors.New("createProgram failed")
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for i, a := range attribs {
		f.BindAttribLocation(prog, gl.Attrib(i), a)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

func createShader(f Functions, typ gl.Enum, src string) (gl.Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return gl.Shader{}, errors.New("createShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}

func setTextureOptions(f Functions, o prim.TextureOptions) {
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, toTexFilter(o.Magnification))
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, toTexFilter(o.Minification))
	wrap := toTexWrap(o.Wrap)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
}

func toTexFilter(f prim.Filter) int {
	switch f {
	case prim.FilterNearest:
		return gl.NEAREST
	case prim.FilterLinear:
		return gl.LINEAR
	default:
		panic("unsupported texture filter")
	}
}

func toTexWrap(w prim.WrapMode) int {
	switch w {
	case prim.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case prim.WrapRepeat:
		return gl.REPEAT
	case prim.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		panic("unsupported texture wrap mode")
	}
}

func encodeVertices(dst []byte, verts []prim.Vertex) []byte {
	for _, v := range verts {
		dst = appendPoint(dst, v.Pos)
		dst = appendPoint(dst, v.UV)
		dst = append(dst, v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	}
	return dst
}

func appendPoint(dst []byte, p f32.Point) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(p.X))
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(p.Y))
}

func encodeIndices(dst []byte, indices []uint32) []byte {
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// flipRows copies the bottom-up rows of src into dst top-down.
func flipRows(dst, src []byte, stride, height int) {
	for y := 0; y < height; y++ {
		sy := height - 1 - y
		copy(dst[y*stride:(y+1)*stride], src[sy*stride:(sy+1)*stride])
	}
}

func glErr(f Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
