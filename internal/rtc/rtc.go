// Package rtc provides the real-time clock: the Clock contract the
// controller uses, a DS1302 driver on a 3-wire GPIO bus, a host-clock
// fallback and a fake.
package rtc

import (
	"errors"

	"github.com/sweeney/thermo-clock/internal/clock"
)

// ErrWriteProtected is returned by Write while write protection is enabled.
var ErrWriteProtected = errors.New("rtc: write protected")

// Clock is the RTC contract.
type Clock interface {
	// Read returns the current date and time.
	Read() (clock.DateTime, error)

	// Write sets the date and time. Write protection must be off.
	Write(dt clock.DateTime) error

	// SetWriteProtection enables or disables writes.
	SetWriteProtection(on bool) error

	// Range returns the inclusive limits of a field in the given format.
	Range(field clock.Field, format clock.HourFormat) (min, max int)
}
