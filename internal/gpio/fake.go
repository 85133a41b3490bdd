package gpio

import (
	"errors"
	"fmt"
)

// FakeReader is a test double that returns scripted button levels.
type FakeReader struct {
	// Samples contains scripted levels to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample is a single reading of both buttons (true = pressed).
type Sample struct {
	Minus bool
	Plus  bool
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Minus, sample.Plus, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeBank records the values written to an output bank.
type FakeBank struct {
	Width   int
	Values  []int
	History [][]int
	Closed  bool

	// SetError, if set, will be returned by SetValues()
	SetError error
}

// NewFakeBank creates a bank of width lines, all low.
func NewFakeBank(width int) *FakeBank {
	return &FakeBank{Width: width, Values: make([]int, width)}
}

// SetValues records values.
func (b *FakeBank) SetValues(values []int) error {
	if b.SetError != nil {
		return b.SetError
	}
	if len(values) != b.Width {
		return fmt.Errorf("fake bank: got %d values for %d lines", len(values), b.Width)
	}
	copy(b.Values, values)
	b.History = append(b.History, append([]int(nil), values...))
	return nil
}

// Close marks the bank as closed.
func (b *FakeBank) Close() error {
	b.Closed = true
	return nil
}
