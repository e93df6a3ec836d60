// SPDX-License-Identifier: Unlicense OR MIT

package painter

import (
	"image"

	"gioui.org/webpaint/prim"
)

// ScreenshotEvent delivers a captured frame.
type ScreenshotEvent struct {
	Viewport ViewportID
	// Image is shared by all events of the same capture and must not
	// be modified.
	Image    *image.RGBA
	UserData prim.UserData
}

func (ScreenshotEvent) ImplementsEvent() {}
