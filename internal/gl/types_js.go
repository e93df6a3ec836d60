// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "syscall/js"

type (
	Buffer  js.Value
	Program js.Value
	Shader  js.Value
	Texture js.Value
	Uniform js.Value
)

func (b Buffer) Valid() bool {
	return valid(js.Value(b))
}

func (p Program) Valid() bool {
	return valid(js.Value(p))
}

func (s Shader) Valid() bool {
	return valid(js.Value(s))
}

func (t Texture) Valid() bool {
	return valid(js.Value(t))
}

func (u Uniform) Valid() bool {
	return valid(js.Value(u))
}

func valid(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}
