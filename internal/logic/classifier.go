package logic

import "github.com/sweeney/thermo-clock/internal/input"

// Classifier turns raw button events into Events. It keeps the previous
// and current raw samples between invocations; the zero value is ready.
type Classifier struct {
	prev input.Event
	cur  input.Event
}

// Classify polls src once and returns the resulting action.
//
// Precedence: two consecutive short presses of different buttons give
// BothPressed and the raw sample is discarded; a short press followed by
// a release of the same button gives *Released; a current long press
// gives *Held on every call until the next raw event.
func (c *Classifier) Classify(src EventSource) Event {
	ev := None

	if raw, ok := src.PollEvent(); ok {
		c.cur = raw
		switch {
		case c.prev.Kind == input.ShortPress && raw.Kind == input.ShortPress && c.prev.Button != raw.Button:
			c.cur = input.Event{}
			ev = BothPressed
		case c.prev.Kind == input.ShortPress && raw.Kind == input.Release && c.prev.Button == raw.Button:
			ev = released(raw.Button)
		}
		c.prev = c.cur
	}

	if ev == None && c.cur.Kind == input.LongPress {
		ev = held(c.cur.Button)
	}
	return ev
}

func released(b input.ButtonID) Event {
	if b == input.Minus {
		return MinusReleased
	}
	return PlusReleased
}

func held(b input.ButtonID) Event {
	if b == input.Minus {
		return MinusHeld
	}
	return PlusHeld
}
