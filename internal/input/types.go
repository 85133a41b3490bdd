// Package input turns sampled button levels into discrete button events:
// a short press when a button goes down, a long press once it has been held
// past the hold threshold and a release when it comes back up.
// Time is always injectable; Sample uses the wall clock, process takes a
// time.Time.
package input

import "time"

// ButtonID identifies a front-panel button.
type ButtonID uint8

const (
	Minus ButtonID = iota
	Plus
)

// Buttons is the number of buttons the manager tracks.
const Buttons = 2

func (b ButtonID) String() string {
	switch b {
	case Minus:
		return "minus"
	case Plus:
		return "plus"
	default:
		return "unknown"
	}
}

// Kind is the transition a button went through.
type Kind uint8

const (
	// None is the zero Kind; an Event with Kind None carries no transition.
	None Kind = iota
	ShortPress
	Release
	LongPress
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case ShortPress:
		return "short_press"
	case Release:
		return "release"
	case LongPress:
		return "long_press"
	default:
		return "unknown"
	}
}

// Event is one button transition.
type Event struct {
	Button ButtonID
	Kind   Kind
	Time   time.Time
}

// buttonState tracks debounce state for a single button.
type buttonState struct {
	// Current stable (debounced) level
	Stable bool
	// Pending level during debounce
	Pending bool
	// Whether a pending level is being observed
	HasPending bool
	// Time when the pending level was first observed
	PendingSince time.Time
	// Time the current press became stable
	PressedAt time.Time
	// Whether the current press already produced (or forfeited) a long press
	LongDone bool
	// Whether we have established a baseline
	Baselined bool
}
