package display

import (
	"errors"
	"fmt"
)

// Temperature readings are fixed point with 4 fractional bits.
const (
	Scale       = 16
	MaxCelsius  = 200
	ScaledLimit = MaxCelsius * Scale
)

// ErrSensorRange is returned for readings outside ±200 °C.
var ErrSensorRange = errors.New("temperature reading out of range")

// Digit returns the decimal digit of value at position p (0 = units).
func Digit(value, p int) int {
	for ; p > 0; p-- {
		value /= 10
	}
	return value % 10
}

// Number writes width zero-padded digits of value into f starting at
// position from. Positions above the value's magnitude render 0.
func Number(f *Frame, value, from, width int) {
	for i := 0; i < width && from+i < Digits; i++ {
		f.Glyphs[from+i] = DigitGlyph(Digit(value, i))
	}
}

// NumberFrame fills every position with the digits of value.
func NumberFrame(value int) Frame {
	f := BlankFrame()
	Number(&f, value, 0, Digits)
	return f
}

// ClockFrame renders hours and minutes as HHMM.
func ClockFrame(hours, minutes int, colon bool) Frame {
	f := NumberFrame(hours*100 + minutes)
	f.Colon = colon
	return f
}

// ErrFrame returns the fixed "Err" pattern shown on sensor faults.
func ErrFrame() Frame {
	f := BlankFrame()
	f.Glyphs[Digits-1] = LetterE
	f.Glyphs[Digits-2] = Letterr
	f.Glyphs[Digits-3] = Letterr
	return f
}

// ValidReading reports whether a scaled Celsius reading is plausible.
func ValidReading(scaled int) bool {
	return scaled >= -ScaledLimit && scaled <= ScaledLimit
}

// ToFahrenheit converts a scaled Celsius reading to scaled Fahrenheit,
// staying in the fixed-point domain so rounding happens once, later.
func ToFahrenheit(scaled int) int {
	return (9*scaled + Scale*5*32) / 5
}

// RoundScaled converts a scaled value to whole units, rounding half away
// from zero.
func RoundScaled(scaled int) int {
	if scaled < 0 {
		return (scaled - Scale/2) / Scale
	}
	return (scaled + Scale/2) / Scale
}

// Temperature converts a scaled Celsius reading to a whole number in unit.
func Temperature(scaled int, unit Unit) (int, error) {
	if !ValidReading(scaled) {
		return 0, fmt.Errorf("%w: %d/16 °C", ErrSensorRange, scaled)
	}
	if unit == Fahrenheit {
		scaled = ToFahrenheit(scaled)
	}
	return RoundScaled(scaled), nil
}

// TemperatureFrame renders value with the unit letter in position 0, at
// least two magnitude digits above it and a minus sign in the most
// significant active position for negative values. Values that do not fit
// render as ErrFrame.
func TemperatureFrame(value int, unit Unit) Frame {
	neg := value < 0
	mag := value
	if neg {
		mag = -value
	}

	width := 2
	for v := mag / 100; v > 0; v /= 10 {
		width++
	}
	used := 1 + width
	if neg {
		used++
	}
	if used > Digits {
		return ErrFrame()
	}

	f := BlankFrame()
	f.Glyphs[0] = unit.Glyph()
	Number(&f, mag, 1, width)
	if neg {
		f.Glyphs[1+width] = Minus
	}
	return f
}
