// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"strings"

	"gioui.org/shader"
)

const (
	attribPos = iota
	attribUV
	attribColor
)

// The mesh shaders are GLSL ES 1.00, which WebGL 2 accepts as well.
var meshVert = shader.Sources{
	Name: "mesh.vert",
	Inputs: []shader.InputLocation{
		{Name: "a_pos", Location: attribPos},
		{Name: "a_tc", Location: attribUV},
		{Name: "a_srgba", Location: attribColor},
	},
	GLSL100ES: `#version 100
precision mediump float;

uniform vec2 u_screen_size;

attribute vec2 a_pos;
attribute vec2 a_tc;
attribute vec4 a_srgba;

varying vec4 v_rgba_in_gamma;
varying vec2 v_tc;

void main() {
	gl_Position = vec4(
		2.0 * a_pos.x / u_screen_size.x - 1.0,
		1.0 - 2.0 * a_pos.y / u_screen_size.y,
		0.0,
		1.0);
	v_rgba_in_gamma = a_srgba;
	v_tc = a_tc;
}
`,
}

var meshFrag = shader.Sources{
	Name: "mesh.frag",
	Textures: []shader.TextureBinding{
		{Name: "u_sampler", Binding: 0},
	},
	GLSL100ES: `#version 100
precision mediump float;

uniform sampler2D u_sampler;

varying vec4 v_rgba_in_gamma;
varying vec2 v_tc;

void main() {
	vec4 c = v_rgba_in_gamma * texture2D(u_sampler, v_tc);
#ifdef APPLY_BRIGHTENING_GAMMA
	c = vec4(pow(c.rgb, vec3(1.0 / 2.2)), c.a);
#endif
	gl_FragColor = c;
}
`,
}

// insertPrefix inserts prefix into src after the #version
// directive, which must stay the first line.
func insertPrefix(src, prefix string) string {
	if prefix == "" {
		return src
	}
	if !strings.HasPrefix(src, "#version") {
		return prefix + "\n" + src
	}
	i := strings.IndexByte(src, '\n')
	if i == -1 {
		return src + "\n" + prefix + "\n"
	}
	return src[:i+1] + prefix + "\n" + src[i+1:]
}
