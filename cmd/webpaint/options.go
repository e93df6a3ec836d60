// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gioui.org/webpaint/webgl"
)

// options configure the demo. In the browser they are read from the
// query string of the page, for example
//
//	index.html?webgl=webgl1&capture=120&debug=1
type options struct {
	strategy webgl.Strategy
	// canvasID is the id of the canvas element to paint.
	canvasID string
	// captureEvery captures every n-th frame. Zero disables
	// periodic captures; clicks on the canvas always capture.
	captureEvery int
	debug        bool
}

var defaultOptions = options{
	strategy: webgl.PreferWebGL2,
	canvasID: "webpaint",
}

func parseOptions(query string) (options, error) {
	opts := defaultOptions
	q, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return opts, fmt.Errorf("invalid query: %w", err)
	}
	if v := q.Get("webgl"); v != "" {
		if err := opts.strategy.UnmarshalText([]byte(v)); err != nil {
			return opts, err
		}
	}
	if v := q.Get("canvas"); v != "" {
		opts.canvasID = v
	}
	if v := q.Get("capture"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid capture interval %q", v)
		}
		opts.captureEvery = n
	}
	if v := q.Get("debug"); v != "" {
		opts.debug, err = strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid debug flag %q", v)
		}
	}
	return opts, nil
}
