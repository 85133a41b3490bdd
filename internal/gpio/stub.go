//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(ButtonConfig) (*RealReader, error) {
	return nil, errUnsupported
}

func (r *RealReader) Read() (bool, bool, error) {
	return false, false, errUnsupported
}

func (r *RealReader) Close() error {
	return nil
}

// RealBank is not available on non-Linux platforms.
type RealBank struct{}

// NewOutputBank returns an error on non-Linux platforms.
func NewOutputBank(string, []int) (*RealBank, error) {
	return nil, errUnsupported
}

func (b *RealBank) SetValues([]int) error { return errUnsupported }
func (b *RealBank) Close() error          { return nil }

// RealThreeWire is not available on non-Linux platforms.
type RealThreeWire struct{}

// NewThreeWire returns an error on non-Linux platforms.
func NewThreeWire(ThreeWireConfig) (*RealThreeWire, error) {
	return nil, errUnsupported
}

func (w *RealThreeWire) SetCE(bool) error       { return errUnsupported }
func (w *RealThreeWire) SetClock(bool) error    { return errUnsupported }
func (w *RealThreeWire) SetIO(bool) error       { return errUnsupported }
func (w *RealThreeWire) ReadIO() (bool, error)  { return false, errUnsupported }
func (w *RealThreeWire) SetIOOutput(bool) error { return errUnsupported }
func (w *RealThreeWire) Close() error           { return nil }
