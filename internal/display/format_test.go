package display

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDigit(t *testing.T) {
	c := qt.New(t)

	c.Assert(Digit(1234, 0), qt.Equals, 4)
	c.Assert(Digit(1234, 1), qt.Equals, 3)
	c.Assert(Digit(1234, 2), qt.Equals, 2)
	c.Assert(Digit(1234, 3), qt.Equals, 1)
	c.Assert(Digit(7, 3), qt.Equals, 0)
}

func TestNumberFramePadsWithZeros(t *testing.T) {
	c := qt.New(t)

	c.Assert(NumberFrame(7).String(), qt.Equals, "0007")
	c.Assert(NumberFrame(2024).String(), qt.Equals, "2024")
	c.Assert(ClockFrame(9, 5, true).String(), qt.Equals, "0905")
	c.Assert(ClockFrame(12, 0, false).String(), qt.Equals, "1200")
}

func TestTemperatureConversion(t *testing.T) {
	tests := []struct {
		name   string
		scaled int
		unit   Unit
		want   int
	}{
		{"15.625C in celsius", 250, Celsius, 16},
		{"15.625C in fahrenheit", 250, Fahrenheit, 60},
		{"zero", 0, Celsius, 0},
		{"freezing in fahrenheit", 0, Fahrenheit, 32},
		{"half rounds up", 8, Celsius, 1},
		{"below half rounds down", 7, Celsius, 0},
		{"negative half rounds away from zero", -8, Celsius, -1},
		{"negative below half", -7, Celsius, 0},
		{"minus ten", -160, Celsius, -10},
		{"minus forty meet", -640, Fahrenheit, -40},
		{"upper limit", 3200, Celsius, 200},
		{"upper limit fahrenheit", 3200, Fahrenheit, 392},
		{"lower limit", -3200, Celsius, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			got, err := Temperature(tt.scaled, tt.unit)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestTemperatureOutOfRange(t *testing.T) {
	c := qt.New(t)

	for _, scaled := range []int{3300, 3201, -3201, -5000} {
		for _, unit := range []Unit{Celsius, Fahrenheit} {
			_, err := Temperature(scaled, unit)
			c.Assert(errors.Is(err, ErrSensorRange), qt.Equals, true, qt.Commentf("scaled=%d unit=%s", scaled, unit))
		}
	}
}

func TestTemperatureFrame(t *testing.T) {
	tests := []struct {
		value int
		unit  Unit
		want  string
	}{
		{16, Celsius, " 16C"},
		{60, Fahrenheit, " 60F"},
		{5, Celsius, " 05C"},
		{0, Celsius, " 00C"},
		{-3, Celsius, "-03C"},
		{-12, Celsius, "-12C"},
		{104, Fahrenheit, "104F"},
		{392, Fahrenheit, "392F"},
		{-40, Fahrenheit, "-40F"},
		{-100, Celsius, "Err "},
		{1000, Fahrenheit, "Err "},
	}

	for _, tt := range tests {
		c := qt.New(t)
		c.Assert(TemperatureFrame(tt.value, tt.unit).String(), qt.Equals, tt.want, qt.Commentf("value=%d", tt.value))
	}
}

func TestTemperatureFrameMinusSign(t *testing.T) {
	c := qt.New(t)

	f := TemperatureFrame(-7, Celsius)
	c.Assert(f.Glyphs, qt.DeepEquals, [Digits]Glyph{LetterC, Glyph7, Glyph0, Minus})
	c.Assert(f.Blink, qt.DeepEquals, [Digits]bool{})
	c.Assert(f.Colon, qt.Equals, false)
}

func TestErrFrame(t *testing.T) {
	c := qt.New(t)

	f := ErrFrame()
	c.Assert(f.String(), qt.Equals, "Err ")
	c.Assert(f.Glyphs, qt.DeepEquals, [Digits]Glyph{Blank, Letterr, Letterr, LetterE})
}

func TestFrameSetBlink(t *testing.T) {
	c := qt.New(t)

	f := NumberFrame(1200)
	f.SetBlink(2, 2)
	c.Assert(f.Blink, qt.DeepEquals, [Digits]bool{false, false, true, true})

	f = NumberFrame(1)
	f.SetBlink(3, 5)
	c.Assert(f.Blink, qt.DeepEquals, [Digits]bool{false, false, false, true})
}

func TestShowWritesWholeFrame(t *testing.T) {
	c := qt.New(t)

	d := NewFake()
	f := ClockFrame(12, 34, true)
	f.SetBlink(0, 2)

	c.Assert(Show(d, f), qt.IsNil)
	c.Assert(d.Frame, qt.DeepEquals, f)
	c.Assert(d.Writes, qt.Equals, Digits)
}

func TestShowPropagatesErrors(t *testing.T) {
	c := qt.New(t)

	err := Show(FailingFake(), NumberFrame(1))
	c.Assert(errors.Is(err, errFakeRender), qt.Equals, true)
}

func TestSegments(t *testing.T) {
	c := qt.New(t)

	c.Assert(Segments(Glyph8), qt.Equals, uint8(0x7F))
	c.Assert(Segments(Blank), qt.Equals, uint8(0))
	c.Assert(Segments(Minus), qt.Equals, uint8(0x40))
	c.Assert(Segments(Glyph(200)), qt.Equals, uint8(0))
	for g := Glyph0; g <= Letterr; g++ {
		c.Assert(Segments(g)&0x80, qt.Equals, uint8(0), qt.Commentf("glyph %c uses the decimal point bit", g.Rune()))
	}
}
