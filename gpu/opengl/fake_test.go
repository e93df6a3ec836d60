// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package opengl

import (
	"fmt"

	"gioui.org/webpaint/internal/gl"
)

// fakeFuncs records the calls made by a Backend.
type fakeFuncs struct {
	nextID     uint
	extensions map[string]bool
	maxTexture int
	failLink   bool
	// errs is returned by GetError, one per call.
	errs []gl.Enum

	calls    []string
	sources  []string
	uploads  map[uint][]byte
	deleted  []uint
	scissors [][4]int32
	draws    int
	texture  uint
}

func newFakeFuncs() *fakeFuncs {
	return &fakeFuncs{
		extensions: map[string]bool{"OES_element_index_uint": true},
		maxTexture: 4096,
		uploads:    make(map[uint][]byte),
	}
}

func (f *fakeFuncs) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeFuncs) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeFuncs) HasExtension(name string) bool      { return f.extensions[name] }
func (f *fakeFuncs) ActiveTexture(t gl.Enum)            {}
func (f *fakeFuncs) AttachShader(gl.Program, gl.Shader) {}
func (f *fakeFuncs) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("bindAttribLocation %d %s", a, name)
}
func (f *fakeFuncs) BindBuffer(target gl.Enum, b gl.Buffer) {}
func (f *fakeFuncs) BindDefaultFramebuffer()                {}
func (f *fakeFuncs) BindTexture(target gl.Enum, t gl.Texture) {
	f.texture = t.V
	f.record("bindTexture %d", t.V)
}
func (f *fakeFuncs) BlendEquation(mode gl.Enum)                           {}
func (f *fakeFuncs) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {}
func (f *fakeFuncs) BufferData(target gl.Enum, usage gl.Enum, data []byte) {
	f.record("bufferData %#x %d", target, len(data))
}
func (f *fakeFuncs) Clear(mask gl.Enum) { f.record("clear %#x", mask) }
func (f *fakeFuncs) ClearColor(red, green, blue, alpha float32) {
	f.record("clearColor %v %v %v %v", red, green, blue, alpha)
}
func (f *fakeFuncs) CompileShader(s gl.Shader)      {}
func (f *fakeFuncs) CreateBuffer() gl.Buffer        { return gl.Buffer{V: f.id()} }
func (f *fakeFuncs) CreateProgram() gl.Program      { return gl.Program{V: f.id()} }
func (f *fakeFuncs) CreateShader(gl.Enum) gl.Shader { return gl.Shader{V: f.id()} }
func (f *fakeFuncs) CreateTexture() gl.Texture      { return gl.Texture{V: f.id()} }
func (f *fakeFuncs) DeleteBuffer(v gl.Buffer)       {}
func (f *fakeFuncs) DeleteProgram(p gl.Program)     {}
func (f *fakeFuncs) DeleteShader(s gl.Shader)       {}
func (f *fakeFuncs) DeleteTexture(v gl.Texture) {
	f.deleted = append(f.deleted, v.V)
}
func (f *fakeFuncs) Disable(cap gl.Enum) {}
func (f *fakeFuncs) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.draws++
	f.record("drawElements %d texture %d", count, f.texture)
}
func (f *fakeFuncs) Enable(cap gl.Enum)                  {}
func (f *fakeFuncs) EnableVertexAttribArray(a gl.Attrib) {}
func (f *fakeFuncs) GetError() gl.Enum {
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	e := f.errs[0]
	f.errs = f.errs[1:]
	return e
}
func (f *fakeFuncs) GetInteger(pname gl.Enum) int {
	if pname == gl.MAX_TEXTURE_SIZE {
		return f.maxTexture
	}
	return 0
}
func (f *fakeFuncs) GetProgrami(p gl.Program, pname gl.Enum) int {
	if pname == gl.LINK_STATUS && f.failLink {
		return 0
	}
	return 1
}
func (f *fakeFuncs) GetProgramInfoLog(p gl.Program) string { return "link error\n" }
func (f *fakeFuncs) GetShaderi(s gl.Shader, pname gl.Enum) int {
	return 1
}
func (f *fakeFuncs) GetShaderInfoLog(s gl.Shader) string { return "" }
func (f *fakeFuncs) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: 1}
}
func (f *fakeFuncs) LinkProgram(p gl.Program)             {}
func (f *fakeFuncs) PixelStorei(pname gl.Enum, param int) {}

// ReadPixels fills every row with its row index.
func (f *fakeFuncs) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("readPixels %dx%d", width, height)
	for row := 0; row < height; row++ {
		for i := 0; i < width*4; i++ {
			data[row*width*4+i] = byte(row)
		}
	}
}
func (f *fakeFuncs) Scissor(x, y, width, height int32) {
	f.scissors = append(f.scissors, [4]int32{x, y, width, height})
}
func (f *fakeFuncs) ShaderSource(s gl.Shader, src string) {
	f.sources = append(f.sources, src)
}
func (f *fakeFuncs) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.uploads[f.texture] = append([]byte(nil), data...)
	f.record("texImage2D %#x %dx%d", internalFormat, width, height)
}
func (f *fakeFuncs) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("texSubImage2D %d,%d %dx%d", x, y, width, height)
}
func (f *fakeFuncs) TexParameteri(target, pname gl.Enum, param int) {}
func (f *fakeFuncs) Uniform1i(dst gl.Uniform, v int)                {}
func (f *fakeFuncs) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.record("uniform2f %v %v", v0, v1)
}
func (f *fakeFuncs) UseProgram(p gl.Program) {}
func (f *fakeFuncs) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
}
func (f *fakeFuncs) Viewport(x, y, width, height int) {
	f.record("viewport %d %d %d %d", x, y, width, height)
}
