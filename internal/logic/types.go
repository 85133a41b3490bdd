// Package logic is the application controller: it classifies button
// activity into user actions, runs the screen state machine and renders
// time and temperature.
// Hardware is reached only through the interfaces in Deps; time only
// through the shared Countdown.
package logic

import (
	"fmt"

	"github.com/sweeney/thermo-clock/internal/input"
)

// Screen is one state of the controller.
type Screen uint8

const (
	SplashOn Screen = iota
	SplashWait
	UnitSetup
	YearSetup
	MonthSetup
	DaySetup
	WeekdaySetup
	TimeFormatSetup
	AmPmSetup
	HoursSetup
	MinutesSetup
	TimeDisplay
	TempDisplay
	screenCount
)

var screenNames = [...]string{
	SplashOn:        "splash_on",
	SplashWait:      "splash_wait",
	UnitSetup:       "unit_setup",
	YearSetup:       "year_setup",
	MonthSetup:      "month_setup",
	DaySetup:        "day_setup",
	WeekdaySetup:    "weekday_setup",
	TimeFormatSetup: "time_format_setup",
	AmPmSetup:       "ampm_setup",
	HoursSetup:      "hours_setup",
	MinutesSetup:    "minutes_setup",
	TimeDisplay:     "time_display",
	TempDisplay:     "temp_display",
}

func (s Screen) String() string {
	if s < screenCount {
		return screenNames[s]
	}
	return fmt.Sprintf("screen(%d)", uint8(s))
}

// setup reports whether s edits a setting.
func (s Screen) setup() bool {
	return s >= UnitSetup && s <= MinutesSetup
}

// Event is a classified user action.
type Event uint8

const (
	None Event = iota
	MinusReleased
	MinusHeld
	PlusReleased
	PlusHeld
	BothPressed
)

var eventNames = [...]string{
	None:          "none",
	MinusReleased: "minus_released",
	MinusHeld:     "minus_held",
	PlusReleased:  "plus_released",
	PlusHeld:      "plus_held",
	BothPressed:   "both_pressed",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// Delta is -1 for minus actions, +1 for plus actions and 0 otherwise.
func (e Event) Delta() int {
	switch e {
	case MinusReleased, MinusHeld:
		return -1
	case PlusReleased, PlusHeld:
		return 1
	}
	return 0
}

// EventSource yields raw button events, at most one per poll.
type EventSource interface {
	PollEvent() (input.Event, bool)
}
