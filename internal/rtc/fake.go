package rtc

import "github.com/sweeney/thermo-clock/internal/clock"

// Fake is a test double holding a fixed time and recording writes.
type Fake struct {
	// Now is returned by Read and replaced by Write.
	Now clock.DateTime

	// Writes records every successful Write.
	Writes []clock.DateTime

	// Protection records every SetWriteProtection argument.
	Protection []bool

	// Protected mirrors the chip's write-protect bit.
	Protected bool

	// Reads counts Read calls.
	Reads int

	// ReadError, if set, will be returned by Read()
	ReadError error

	// WriteError, if set, will be returned by Write()
	WriteError error
}

// NewFake creates a write-protected Fake showing now.
func NewFake(now clock.DateTime) *Fake {
	return &Fake{Now: now, Protected: true}
}

func (f *Fake) Read() (clock.DateTime, error) {
	f.Reads++
	if f.ReadError != nil {
		return clock.DateTime{}, f.ReadError
	}
	return f.Now, nil
}

func (f *Fake) Write(dt clock.DateTime) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if f.Protected {
		return ErrWriteProtected
	}
	f.Now = dt
	f.Writes = append(f.Writes, dt)
	return nil
}

func (f *Fake) SetWriteProtection(on bool) error {
	f.Protected = on
	f.Protection = append(f.Protection, on)
	return nil
}

func (f *Fake) Range(field clock.Field, format clock.HourFormat) (int, int) {
	return clock.Limits(field, format)
}
