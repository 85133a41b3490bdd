// Package gpio provides the raw line access the clock needs: the two
// front-panel buttons, groups of output lines for the display and the
// bidirectional 3-wire bus of the RTC.
// The real implementations use the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// Reader reads the button levels.
type Reader interface {
	// Read returns the logical (pressed = true) levels of the minus and
	// plus buttons.
	Read() (minus, plus bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// OutputBank is a group of output lines written together.
type OutputBank interface {
	// SetValues sets every line of the bank; len(values) must match.
	SetValues(values []int) error

	Close() error
}

// ThreeWire is a CE / SCLK / IO serial bus with a single bidirectional
// data line.
type ThreeWire interface {
	SetCE(high bool) error
	SetClock(high bool) error

	// SetIO drives the data line. The line must be an output.
	SetIO(high bool) error

	// ReadIO samples the data line. The line must be an input.
	ReadIO() (bool, error)

	// SetIOOutput switches the data line direction.
	SetIOOutput(output bool) error

	Close() error
}

// ButtonConfig describes how the buttons are wired.
type ButtonConfig struct {
	Chip      string
	Minus     int
	Plus      int
	ActiveLow bool
	PullUp    bool
}

// ThreeWireConfig names the RTC bus lines.
type ThreeWireConfig struct {
	Chip string
	CE   int
	CLK  int
	IO   int
}

func toInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
