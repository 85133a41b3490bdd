// Package display renders controller output on a four-digit seven-segment
// display. It holds the glyph alphabet, the Frame value the controller builds,
// the value formatter (digit decomposition and temperature conversion) and
// the Driver implementations.
package display

import (
	"fmt"
	"strings"
)

// Digits is the number of display positions. Position 0 is the right-most,
// least significant digit.
const Digits = 4

// Glyph is one displayable symbol.
type Glyph uint8

// Digit glyphs share their numeric value, so Glyph(d) is the glyph for digit d.
const (
	Glyph0 Glyph = iota
	Glyph1
	Glyph2
	Glyph3
	Glyph4
	Glyph5
	Glyph6
	Glyph7
	Glyph8
	Glyph9
	Blank
	Minus
	LetterC
	LetterF
	LetterA
	LetterP
	Letterh
	LetterE
	Letterr
)

var glyphRunes = [...]rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ' ', '-', 'C', 'F', 'A', 'P', 'h', 'E', 'r'}

// DigitGlyph returns the glyph for a decimal digit 0–9.
func DigitGlyph(d int) Glyph {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("display: %d is not a decimal digit", d))
	}
	return Glyph(d)
}

// Rune returns a printable representation of g.
func (g Glyph) Rune() rune {
	if int(g) < len(glyphRunes) {
		return glyphRunes[g]
	}
	return '?'
}

// Unit is the temperature unit preference.
type Unit uint8

const (
	Celsius Unit = iota
	Fahrenheit
)

func (u Unit) String() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// Glyph returns the unit letter.
func (u Unit) Glyph() Glyph {
	if u == Fahrenheit {
		return LetterF
	}
	return LetterC
}

// Frame is the complete visible content of the display. Frames are always
// built whole and pushed to a Driver whole.
type Frame struct {
	Glyphs [Digits]Glyph
	Blink  [Digits]bool
	Colon  bool
}

// BlankFrame returns a frame with every position blank.
func BlankFrame() Frame {
	var f Frame
	for i := range f.Glyphs {
		f.Glyphs[i] = Blank
	}
	return f
}

// SetBlink flags positions from..from+width-1 as blinking.
func (f *Frame) SetBlink(from, width int) {
	for p := from; p < from+width && p < Digits; p++ {
		f.Blink[p] = true
	}
}

// String renders the frame left to right, most significant position first.
func (f Frame) String() string {
	var b strings.Builder
	for p := Digits - 1; p >= 0; p-- {
		b.WriteRune(f.Glyphs[p].Rune())
	}
	return b.String()
}

// Driver is the display hardware contract.
type Driver interface {
	// Render shows glyph g at position pos.
	Render(pos int, g Glyph) error

	// SetBlink enables or disables blinking of position pos.
	SetBlink(pos int, enabled bool) error

	// SetColon drives the colon indicator between hours and minutes.
	SetColon(on bool) error
}

// Show writes every position of f to d.
func Show(d Driver, f Frame) error {
	for p := 0; p < Digits; p++ {
		if err := d.Render(p, f.Glyphs[p]); err != nil {
			return fmt.Errorf("render position %d: %w", p, err)
		}
		if err := d.SetBlink(p, f.Blink[p]); err != nil {
			return fmt.Errorf("blink position %d: %w", p, err)
		}
	}
	if err := d.SetColon(f.Colon); err != nil {
		return fmt.Errorf("colon: %w", err)
	}
	return nil
}

func checkPosition(pos int) error {
	if pos < 0 || pos >= Digits {
		return fmt.Errorf("display: position %d out of range 0..%d", pos, Digits-1)
	}
	return nil
}
