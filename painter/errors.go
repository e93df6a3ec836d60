// SPDX-License-Identifier: Unlicense OR MIT

package painter

// PaintError is returned when a frame could not be painted.
type PaintError struct {
	// Op is the step that failed.
	Op  string
	Err error
}

func (e *PaintError) Error() string {
	return "painter: " + e.Op + ": " + e.Err.Error()
}

func (e *PaintError) Unwrap() error {
	return e.Err
}
