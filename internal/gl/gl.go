// SPDX-License-Identifier: Unlicense OR MIT

// Package gl is a minimal binding to the WebGL 1 and WebGL 2 APIs.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER         = 0x8892
	BLEND                = 0xbe2
	CLAMP_TO_EDGE        = 0x812f
	COLOR_BUFFER_BIT     = 0x4000
	COMPILE_STATUS       = 0x8b81
	CULL_FACE            = 0xb44
	DEPTH_TEST           = 0xb71
	ELEMENT_ARRAY_BUFFER = 0x8893
	FLOAT                = 0x1406
	FRAGMENT_SHADER      = 0x8b30
	FRAMEBUFFER          = 0x8d40
	FUNC_ADD             = 0x8006
	INVALID_OPERATION    = 0x502
	LINEAR               = 0x2601
	LINK_STATUS          = 0x8b82
	MAX_TEXTURE_SIZE     = 0xd33
	MIRRORED_REPEAT      = 0x8370
	NEAREST              = 0x2600
	NO_ERROR             = 0x0
	ONE                  = 0x1
	ONE_MINUS_DST_ALPHA  = 0x305
	ONE_MINUS_SRC_ALPHA  = 0x303
	OUT_OF_MEMORY        = 0x505
	PACK_ALIGNMENT       = 0xd05
	REPEAT               = 0x2901
	RGBA                 = 0x1908
	RGBA8                = 0x8058
	SCISSOR_TEST         = 0xc11
	STREAM_DRAW          = 0x88e0
	TEXTURE_2D           = 0xde1
	TEXTURE_MAG_FILTER   = 0x2800
	TEXTURE_MIN_FILTER   = 0x2801
	TEXTURE_WRAP_S       = 0x2802
	TEXTURE_WRAP_T       = 0x2803
	TEXTURE0             = 0x84c0
	TRIANGLES            = 0x4
	UNPACK_ALIGNMENT     = 0xcf5
	UNSIGNED_BYTE        = 0x1401
	UNSIGNED_INT         = 0x1405
	VERTEX_SHADER        = 0x8b31

	// WEBGL_debug_renderer_info
	UNMASKED_VENDOR_WEBGL   = 0x9245
	UNMASKED_RENDERER_WEBGL = 0x9246
)
