// Package clock holds the calendar data model shared by the controller and the
// RTC driver, and the wraparound arithmetic used while editing fields.
// It has no hardware dependencies.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateTime is returned by Validate when a field is outside its limits.
var ErrInvalidDateTime = errors.New("invalid date/time")

// HourFormat selects 12-hour or 24-hour hour representation.
type HourFormat uint8

const (
	H24 HourFormat = iota
	H12
)

func (f HourFormat) String() string {
	if f == H12 {
		return "12h"
	}
	return "24h"
}

// Field identifies one editable calendar field.
type Field uint8

const (
	Year Field = iota
	Month
	Day
	Weekday
	Hours
	Minutes
	Seconds
)

var fieldNames = [...]string{"year", "month", "day", "weekday", "hours", "minutes", "seconds"}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", f)
}

// DateTime is the calendar value edited on the setup screens and exchanged
// with the RTC. Year is an offset from 2000.
type DateTime struct {
	Year    uint8
	Month   uint8
	Day     uint8
	Weekday uint8
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Format  HourFormat
	PM      bool
}

// Default returns the value the setup chain starts from.
func Default() DateTime {
	return DateTime{
		Year:    0,
		Month:   1,
		Day:     1,
		Weekday: 1,
		Hours:   12,
		Minutes: 0,
		Seconds: 0,
		Format:  H24,
	}
}

// Limits returns the inclusive range of a field.
// Day is capped at 30 regardless of month or leap year.
func Limits(field Field, format HourFormat) (min, max int) {
	switch field {
	case Year:
		return 0, 99
	case Month:
		return 1, 12
	case Day:
		return 1, 30
	case Weekday:
		return 1, 7
	case Hours:
		if format == H12 {
			return 1, 12
		}
		return 0, 23
	case Minutes, Seconds:
		return 0, 59
	}
	panic(fmt.Sprintf("clock: no limits for %s", field))
}

// Increment returns value+1, wrapping from max to min.
func Increment(value, min, max int) int {
	if value >= max || value < min {
		return min
	}
	return value + 1
}

// Decrement returns value-1, wrapping from min to max.
func Decrement(value, min, max int) int {
	if value <= min || value > max {
		return max
	}
	return value - 1
}

// Get returns the value of a field.
func (dt DateTime) Get(field Field) int {
	switch field {
	case Year:
		return int(dt.Year)
	case Month:
		return int(dt.Month)
	case Day:
		return int(dt.Day)
	case Weekday:
		return int(dt.Weekday)
	case Hours:
		return int(dt.Hours)
	case Minutes:
		return int(dt.Minutes)
	case Seconds:
		return int(dt.Seconds)
	}
	panic(fmt.Sprintf("clock: unknown %s", field))
}

// Set assigns a field without range checking.
func (dt *DateTime) Set(field Field, v int) {
	b := uint8(v)
	switch field {
	case Year:
		dt.Year = b
	case Month:
		dt.Month = b
	case Day:
		dt.Day = b
	case Weekday:
		dt.Weekday = b
	case Hours:
		dt.Hours = b
	case Minutes:
		dt.Minutes = b
	case Seconds:
		dt.Seconds = b
	default:
		panic(fmt.Sprintf("clock: unknown %s", field))
	}
}

// Step moves a field one unit up (delta > 0) or down (delta < 0),
// wrapping within min..max. Callers pass Limits or a driver's range.
func (dt *DateTime) Step(field Field, delta, min, max int) {
	v := dt.Get(field)
	switch {
	case delta > 0:
		v = Increment(v, min, max)
	case delta < 0:
		v = Decrement(v, min, max)
	}
	dt.Set(field, v)
}

// WithFormat returns dt with its hours re-expressed in the given format.
func (dt DateTime) WithFormat(f HourFormat) DateTime {
	if dt.Format == f {
		return dt
	}
	h24 := dt.Hour24()
	dt.Format = f
	if f == H24 {
		dt.Hours = uint8(h24)
		dt.PM = false
		return dt
	}
	dt.PM = h24 >= 12
	h := h24 % 12
	if h == 0 {
		h = 12
	}
	dt.Hours = uint8(h)
	return dt
}

// Hour24 returns the hour on a 0–23 scale whatever the format.
func (dt DateTime) Hour24() int {
	if dt.Format == H24 {
		return int(dt.Hours)
	}
	h := int(dt.Hours) % 12
	if dt.PM {
		h += 12
	}
	return h
}

// Validate checks every field against its limits.
func (dt DateTime) Validate() error {
	for _, f := range []Field{Year, Month, Day, Weekday, Hours, Minutes, Seconds} {
		min, max := Limits(f, dt.Format)
		if v := dt.Get(f); v < min || v > max {
			return fmt.Errorf("%w: %s=%d outside %d..%d", ErrInvalidDateTime, f, v, min, max)
		}
	}
	return nil
}

// Time converts dt to a time.Time in UTC. Weekday is not carried over.
func (dt DateTime) Time() time.Time {
	return time.Date(2000+int(dt.Year), time.Month(dt.Month), int(dt.Day),
		dt.Hour24(), int(dt.Minutes), int(dt.Seconds), 0, time.UTC)
}
