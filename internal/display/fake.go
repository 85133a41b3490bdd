package display

import "errors"

// Fake is a test double that records the visible frame and every write.
type Fake struct {
	// Frame is the content currently shown.
	Frame Frame

	// Writes counts Render calls.
	Writes int

	// ColonToggles counts colon state changes.
	ColonToggles int

	// RenderError, if set, will be returned by Render.
	RenderError error
}

// NewFake creates a Fake with a blank frame.
func NewFake() *Fake {
	return &Fake{Frame: BlankFrame()}
}

// Render records glyph g at pos.
func (f *Fake) Render(pos int, g Glyph) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	if err := checkPosition(pos); err != nil {
		return err
	}
	f.Frame.Glyphs[pos] = g
	f.Writes++
	return nil
}

// SetBlink records the blink flag of pos.
func (f *Fake) SetBlink(pos int, enabled bool) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	f.Frame.Blink[pos] = enabled
	return nil
}

// SetColon records the colon state.
func (f *Fake) SetColon(on bool) error {
	if f.Frame.Colon != on {
		f.ColonToggles++
	}
	f.Frame.Colon = on
	return nil
}

// Blinking reports whether any position is blinking.
func (f *Fake) Blinking() bool {
	for _, b := range f.Frame.Blink {
		if b {
			return true
		}
	}
	return false
}

// Reset clears recorded state.
func (f *Fake) Reset() {
	f.Frame = BlankFrame()
	f.Writes = 0
	f.ColonToggles = 0
	f.RenderError = nil
}

var errFakeRender = errors.New("fake render failure")

// FailingFake returns a Fake whose Render always fails.
func FailingFake() *Fake {
	f := NewFake()
	f.RenderError = errFakeRender
	return f
}
