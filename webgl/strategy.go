// SPDX-License-Identifier: Unlicense OR MIT

package webgl

import "fmt"

// Strategy selects which WebGL versions are tried, and in which order.
type Strategy uint8

const (
	// PreferWebGL2 tries WebGL 2 and falls back to WebGL 1.
	PreferWebGL2 Strategy = iota
	// PreferWebGL1 tries WebGL 1 and falls back to WebGL 2.
	PreferWebGL1
	// ForceWebGL2 tries only WebGL 2.
	ForceWebGL2
	// ForceWebGL1 tries only WebGL 1.
	ForceWebGL1
)

var strategyNames = [...]string{
	PreferWebGL2: "prefer-webgl2",
	PreferWebGL1: "prefer-webgl1",
	ForceWebGL2:  "webgl2",
	ForceWebGL1:  "webgl1",
}

// Versions returns the versions tried by s, in order.
func (s Strategy) Versions() []Version {
	switch s {
	case PreferWebGL2:
		return []Version{WebGL2, WebGL1}
	case PreferWebGL1:
		return []Version{WebGL1, WebGL2}
	case ForceWebGL2:
		return []Version{WebGL2}
	case ForceWebGL1:
		return []Version{WebGL1}
	default:
		return nil
	}
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy parses the String form of a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == s {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("webgl: unknown strategy %q", s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("webgl: invalid strategy %d", uint8(s))
	}
	return []byte(strategyNames[s]), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
