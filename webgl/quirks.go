// SPDX-License-Identifier: Unlicense OR MIT

package webgl

import (
	"strings"

	"gioui.org/webpaint/internal/gl"
)

// BrighteningPrefix enables the brightening gamma path of the
// mesh shaders.
const BrighteningPrefix = "#define APPLY_BRIGHTENING_GAMMA"

const debugRendererInfo = "WEBGL_debug_renderer_info"

// RequiresBrightening reports whether a WebGL 1 context renders too
// dark and needs BrighteningPrefix. That is the case for WebKitGTK,
// which reports an Apple renderer on a user agent that does not
// mention macOS. renderer is only consulted when hasDebugInfo is set.
func RequiresBrightening(userAgent, renderer string, hasDebugInfo bool) bool {
	if strings.Contains(userAgent, "Mac OS X") {
		return false
	}
	return hasDebugInfo && strings.Contains(renderer, "Apple")
}

func webgl1ShaderPrefix(ctx Context, h Host) string {
	ua := h.UserAgent()
	// Skip the extension query where the answer cannot matter.
	if strings.Contains(ua, "Mac OS X") {
		return ""
	}
	var renderer string
	hasDebugInfo := ctx.HasExtension(debugRendererInfo)
	if hasDebugInfo {
		renderer = ctx.ParameterString(gl.UNMASKED_RENDERER_WEBGL)
	}
	if RequiresBrightening(ua, renderer, hasDebugInfo) {
		return BrighteningPrefix
	}
	return ""
}
