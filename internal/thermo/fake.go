package thermo

import "fmt"

// Fake is a test double returning scripted readings.
type Fake struct {
	// Readings are returned in order; the last one repeats.
	Readings []int16

	// ReadError, if set, will be returned (wrapped in ErrSensorFault).
	ReadError error

	// Reads counts ReadScaledCelsius calls.
	Reads int

	index int
}

// NewFake creates a Fake returning the given readings.
func NewFake(readings ...int16) *Fake {
	return &Fake{Readings: readings}
}

func (f *Fake) ReadScaledCelsius() (int16, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, fmt.Errorf("%w: %v", ErrSensorFault, f.ReadError)
	}
	if len(f.Readings) == 0 {
		return 0, fmt.Errorf("%w: no readings configured", ErrSensorFault)
	}

	v := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return v, nil
}
