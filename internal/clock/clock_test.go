package clock

import (
	"errors"
	"testing"
	"time"
)

func TestLimits(t *testing.T) {
	tests := []struct {
		field    Field
		format   HourFormat
		min, max int
	}{
		{Year, H24, 0, 99},
		{Month, H24, 1, 12},
		{Day, H24, 1, 30},
		{Weekday, H24, 1, 7},
		{Hours, H24, 0, 23},
		{Hours, H12, 1, 12},
		{Minutes, H24, 0, 59},
		{Seconds, H12, 0, 59},
	}

	for _, tt := range tests {
		min, max := Limits(tt.field, tt.format)
		if min != tt.min || max != tt.max {
			t.Errorf("Limits(%s, %s) = (%d, %d), want (%d, %d)", tt.field, tt.format, min, max, tt.min, tt.max)
		}
	}
}

func TestWrapAtBounds(t *testing.T) {
	for _, f := range []Field{Year, Month, Day, Weekday, Hours, Minutes} {
		for _, format := range []HourFormat{H24, H12} {
			min, max := Limits(f, format)
			if got := Increment(max, min, max); got != min {
				t.Errorf("%s/%s: Increment(max) = %d, want %d", f, format, got, min)
			}
			if got := Decrement(min, min, max); got != max {
				t.Errorf("%s/%s: Decrement(min) = %d, want %d", f, format, got, max)
			}
		}
	}
}

func TestFullCycleReturnsToStart(t *testing.T) {
	for _, f := range []Field{Year, Month, Day, Weekday, Hours, Minutes} {
		for _, format := range []HourFormat{H24, H12} {
			dt := Default().WithFormat(format)
			start := dt.Get(f)
			min, max := Limits(f, format)

			for i := 0; i < max-min+1; i++ {
				dt.Step(f, +1, min, max)
			}
			if got := dt.Get(f); got != start {
				t.Errorf("%s/%s: after %d increments got %d, want %d", f, format, max-min+1, got, start)
			}

			for i := 0; i < max-min+1; i++ {
				dt.Step(f, -1, min, max)
			}
			if got := dt.Get(f); got != start {
				t.Errorf("%s/%s: after %d decrements got %d, want %d", f, format, max-min+1, got, start)
			}
		}
	}
}

func TestStepHoursFollowsFormat(t *testing.T) {
	step := func(dt *DateTime, delta int) {
		min, max := Limits(Hours, dt.Format)
		dt.Step(Hours, delta, min, max)
	}

	dt := DateTime{Hours: 23, Format: H24}
	step(&dt, +1)
	if dt.Hours != 0 {
		t.Errorf("24h: 23+1 = %d, want 0", dt.Hours)
	}

	dt = DateTime{Hours: 12, Format: H12}
	step(&dt, +1)
	if dt.Hours != 1 {
		t.Errorf("12h: 12+1 = %d, want 1", dt.Hours)
	}
	step(&dt, -1)
	if dt.Hours != 12 {
		t.Errorf("12h: 1-1 = %d, want 12", dt.Hours)
	}
}

func TestDayIgnoresMonthLength(t *testing.T) {
	min, max := Limits(Day, H24)
	dt := DateTime{Month: 2, Day: 29}
	dt.Step(Day, +1, min, max)
	if dt.Day != 30 {
		t.Errorf("expected day 30 in February, got %d", dt.Day)
	}
	dt.Step(Day, +1, min, max)
	if dt.Day != 1 {
		t.Errorf("expected wrap to 1 after 30, got %d", dt.Day)
	}
}

func TestWithFormat(t *testing.T) {
	tests := []struct {
		h24    uint8
		wantH  uint8
		wantPM bool
	}{
		{0, 12, false},
		{1, 1, false},
		{11, 11, false},
		{12, 12, true},
		{13, 1, true},
		{23, 11, true},
	}

	for _, tt := range tests {
		dt := DateTime{Hours: tt.h24, Format: H24}
		got := dt.WithFormat(H12)
		if got.Hours != tt.wantH || got.PM != tt.wantPM || got.Format != H12 {
			t.Errorf("%d -> 12h: got %d PM=%v, want %d PM=%v", tt.h24, got.Hours, got.PM, tt.wantH, tt.wantPM)
		}
		back := got.WithFormat(H24)
		if back.Hours != tt.h24 || back.PM {
			t.Errorf("%d round trip: got %d PM=%v", tt.h24, back.Hours, back.PM)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default should be valid: %v", err)
	}

	bad := Default()
	bad.Month = 13
	if err := bad.Validate(); !errors.Is(err, ErrInvalidDateTime) {
		t.Errorf("expected ErrInvalidDateTime for month 13, got %v", err)
	}

	bad = Default().WithFormat(H12)
	bad.Hours = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidDateTime) {
		t.Errorf("expected ErrInvalidDateTime for hour 0 in 12h mode, got %v", err)
	}
}

func TestTime(t *testing.T) {
	dt := DateTime{Year: 26, Month: 10, Day: 19, Weekday: 1, Hours: 7, Minutes: 5, Seconds: 9, Format: H12, PM: true}
	want := time.Date(2026, 10, 19, 19, 5, 9, 0, time.UTC)
	if got := dt.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}
