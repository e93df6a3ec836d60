// SPDX-License-Identifier: Unlicense OR MIT

package painter

import (
	"errors"

	"gioui.org/webpaint/gpu/opengl"
	"gioui.org/webpaint/internal/gl"
	"gioui.org/webpaint/webgl"
)

func init() {
	defaultExecutor = newGLExecutor
}

func newGLExecutor(n webgl.Negotiated) (Executor, error) {
	c, ok := n.Context.(interface{ GL() gl.Context })
	if !ok {
		return nil, errors.New("painter: context is not a browser WebGL context")
	}
	f, err := gl.NewFunctions(c.GL())
	if err != nil {
		return nil, err
	}
	b, err := opengl.New(f, opengl.Config{
		WebGL2:       n.Version == webgl.WebGL2,
		ShaderPrefix: n.ShaderPrefix,
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
