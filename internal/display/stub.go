package display

import "github.com/sweeney/thermo-clock/internal/logger"

// LogDisplay stands in for the display when the GPIO lines cannot be
// claimed. It logs the visible text whenever the colon is written, which
// Show does last for every frame.
type LogDisplay struct {
	log   *logger.Logger
	frame Frame
	last  string
}

// NewLogDisplay creates a LogDisplay writing to log.
func NewLogDisplay(log *logger.Logger) *LogDisplay {
	return &LogDisplay{log: log, frame: BlankFrame()}
}

func (d *LogDisplay) Render(pos int, g Glyph) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	d.frame.Glyphs[pos] = g
	return nil
}

func (d *LogDisplay) SetBlink(pos int, enabled bool) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	d.frame.Blink[pos] = enabled
	return nil
}

func (d *LogDisplay) SetColon(on bool) error {
	d.frame.Colon = on
	s := d.frame.String()
	if on {
		s = s[:Digits/2] + ":" + s[Digits/2:]
	}
	if s != d.last {
		d.log.Infow("display", "text", s, "blink", d.frame.Blink)
		d.last = s
	}
	return nil
}
