// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import "gioui.org/webpaint/internal/gl"

// Functions is the subset of the WebGL API used by Backend. It is
// implemented by *gl.Functions.
type Functions interface {
	HasExtension(name string) bool
	ActiveTexture(t gl.Enum)
	AttachShader(p gl.Program, s gl.Shader)
	BindAttribLocation(p gl.Program, a gl.Attrib, name string)
	BindBuffer(target gl.Enum, b gl.Buffer)
	BindDefaultFramebuffer()
	BindTexture(target gl.Enum, t gl.Texture)
	BlendEquation(mode gl.Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum)
	BufferData(target gl.Enum, usage gl.Enum, data []byte)
	Clear(mask gl.Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s gl.Shader)
	CreateBuffer() gl.Buffer
	CreateProgram() gl.Program
	CreateShader(ty gl.Enum) gl.Shader
	CreateTexture() gl.Texture
	DeleteBuffer(v gl.Buffer)
	DeleteProgram(p gl.Program)
	DeleteShader(s gl.Shader)
	DeleteTexture(v gl.Texture)
	Disable(cap gl.Enum)
	DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int)
	Enable(cap gl.Enum)
	EnableVertexAttribArray(a gl.Attrib)
	GetError() gl.Enum
	GetInteger(pname gl.Enum) int
	GetProgrami(p gl.Program, pname gl.Enum) int
	GetProgramInfoLog(p gl.Program) string
	GetShaderi(s gl.Shader, pname gl.Enum) int
	GetShaderInfoLog(s gl.Shader) string
	GetUniformLocation(p gl.Program, name string) gl.Uniform
	LinkProgram(p gl.Program)
	PixelStorei(pname gl.Enum, param int)
	ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte)
	Scissor(x, y, width, height int32)
	ShaderSource(s gl.Shader, src string)
	TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte)
	TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte)
	TexParameteri(target, pname gl.Enum, param int)
	Uniform1i(dst gl.Uniform, v int)
	Uniform2f(dst gl.Uniform, v0, v1 float32)
	UseProgram(p gl.Program)
	VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
