package logic

import (
	"context"
	"errors"

	"github.com/sweeney/thermo-clock/internal/clock"
	"github.com/sweeney/thermo-clock/internal/display"
	"github.com/sweeney/thermo-clock/internal/store"
)

func (c *Controller) splashOn(s *Session) Screen {
	f := display.NumberFrame(8888)
	f.Colon = true
	s.Frame = f
	s.Countdown.Arm(SplashMs)
	return SplashWait
}

func (c *Controller) splashWait(ctx context.Context, s *Session) Screen {
	if !s.Countdown.Expired() {
		return SplashWait
	}

	b, err := c.deps.Store.ReadSlot(ctx, store.SlotUnit)
	if err != nil {
		c.deps.Log.Warnw("unit preference read failed", "error", err)
		b = store.Erased
	}
	unit, ok := unitFromByte(b)
	if !ok {
		c.deps.Log.Infow("unit preference unset", "stored", b)
		s.Frame.Colon = false
		return UnitSetup
	}
	s.Unit = unit

	if dt, err := c.deps.RTC.Read(); err != nil {
		c.deps.Log.Warnw("rtc read failed", "error", err)
	} else {
		s.Draft = dt
	}
	return TimeDisplay
}

func (c *Controller) unitSetup(ctx context.Context, s *Session, ev Event) Screen {
	switch {
	case ev == BothPressed:
		if err := c.deps.Store.WriteSlot(ctx, store.SlotUnit, byte(s.Unit)); err != nil {
			c.deps.Log.Warnw("unit preference write failed", "error", err)
		}
		return YearSetup
	case ev.Delta() != 0:
		if s.Unit == display.Celsius {
			s.Unit = display.Fahrenheit
		} else {
			s.Unit = display.Celsius
		}
	}
	return UnitSetup
}

// fieldSetup edits one DateTime field and moves to next on BothPressed.
func (c *Controller) fieldSetup(s *Session, ev Event, field clock.Field, next Screen) Screen {
	if ev == BothPressed {
		return next
	}
	if d := ev.Delta(); d != 0 {
		min, max := c.deps.RTC.Range(field, s.Draft.Format)
		s.Draft.Step(field, d, min, max)
	}
	return s.Screen
}

func (c *Controller) timeFormatSetup(s *Session, ev Event) Screen {
	switch {
	case ev == BothPressed:
		s.Draft = s.Draft.WithFormat(s.Format)
		if s.Format == clock.H12 {
			return AmPmSetup
		}
		return HoursSetup
	case ev.Delta() != 0:
		if s.Format == clock.H24 {
			s.Format = clock.H12
		} else {
			s.Format = clock.H24
		}
	}
	return TimeFormatSetup
}

func (c *Controller) amPmSetup(s *Session, ev Event) Screen {
	switch {
	case ev == BothPressed:
		return HoursSetup
	case ev.Delta() != 0:
		s.Draft.PM = !s.Draft.PM
	}
	return AmPmSetup
}

func (c *Controller) minutesSetup(s *Session, ev Event) Screen {
	if ev != BothPressed {
		return c.fieldSetup(s, ev, clock.Minutes, MinutesSetup)
	}

	s.Draft.Seconds = 0
	if err := c.deps.RTC.SetWriteProtection(false); err != nil {
		c.deps.Log.Warnw("rtc unprotect failed", "error", err)
	}
	if err := c.deps.RTC.Write(s.Draft); err != nil {
		c.deps.Log.Warnw("rtc write failed", "error", err, "datetime", s.Draft)
	} else {
		c.deps.Log.Infow("rtc set", "time", s.Draft.Time().Format("2006-01-02 15:04"), "format", s.Draft.Format)
	}
	if err := c.deps.RTC.SetWriteProtection(true); err != nil {
		c.deps.Log.Warnw("rtc protect failed", "error", err)
	}

	s.Frame = display.ClockFrame(int(s.Draft.Hours), int(s.Draft.Minutes), true)
	s.Refreshes = 0
	s.Countdown.Arm(RefreshMs)
	return TimeDisplay
}

func (c *Controller) timeDisplay(s *Session, ev Event) Screen {
	if ev == BothPressed {
		return restartSetup(s)
	}
	if !s.Countdown.Expired() {
		return TimeDisplay
	}

	if dt, err := c.deps.RTC.Read(); err != nil {
		c.deps.Log.Warnw("rtc read failed", "error", err)
		s.Frame.Colon = !s.Frame.Colon
	} else {
		s.Frame = display.ClockFrame(int(dt.Hours), int(dt.Minutes), !s.Frame.Colon)
	}
	s.Countdown.Arm(RefreshMs)

	s.Refreshes++
	if s.Refreshes >= TimeRefreshes {
		s.Refreshes = 0
		return TempDisplay
	}
	return TimeDisplay
}

func (c *Controller) tempDisplay(s *Session, ev Event) Screen {
	if ev == BothPressed {
		return restartSetup(s)
	}
	if !s.Countdown.Expired() {
		return TempDisplay
	}

	s.Frame = c.temperatureFrame(s)
	s.Countdown.Arm(RefreshMs)

	s.Refreshes++
	if s.Refreshes >= TempRefreshes {
		s.Refreshes = 0
		return TimeDisplay
	}
	return TempDisplay
}

// temperatureFrame reads the sensor. Faults show Err; the first fault of a
// run and the recovery are logged.
func (c *Controller) temperatureFrame(s *Session) display.Frame {
	raw, err := c.deps.Sensor.ReadScaledCelsius()
	var value int
	if err == nil {
		value, err = display.Temperature(int(raw), s.Unit)
	}

	if err != nil {
		if !s.sensorFault {
			level := c.deps.Log.Warnw
			if errors.Is(err, display.ErrSensorRange) {
				level = c.deps.Log.Errorw
			}
			level("temperature unavailable", "error", err)
			s.sensorFault = true
			c.deps.Status.SetSensorFault(true)
		}
		return display.ErrFrame()
	}

	if s.sensorFault {
		c.deps.Log.Infow("temperature sensor recovered")
		s.sensorFault = false
		c.deps.Status.SetSensorFault(false)
	}
	return display.TemperatureFrame(value, s.Unit)
}

// restartSetup abandons the display rotation and starts the setup chain
// from defaults.
func restartSetup(s *Session) Screen {
	s.Frame.Colon = false
	s.Draft = clock.Default()
	s.Format = s.Draft.Format
	s.Refreshes = 0
	return UnitSetup
}

// setupFrame renders the setup screen s.Screen with the edited field
// blinking.
func setupFrame(s *Session) display.Frame {
	f := display.BlankFrame()
	dt := s.Draft

	switch s.Screen {
	case UnitSetup:
		f.Glyphs[0] = s.Unit.Glyph()
		f.SetBlink(0, 1)
	case YearSetup:
		display.Number(&f, 2000+int(dt.Year), 0, 4)
		f.SetBlink(0, 2)
	case MonthSetup:
		display.Number(&f, int(dt.Month), 0, 2)
		f.SetBlink(0, 2)
	case DaySetup:
		display.Number(&f, int(dt.Day), 0, 2)
		f.SetBlink(0, 2)
	case WeekdaySetup:
		display.Number(&f, int(dt.Weekday), 0, 1)
		f.SetBlink(0, 1)
	case TimeFormatSetup:
		f.Glyphs[0] = display.Letterh
		hours := 24
		if s.Format == clock.H12 {
			hours = 12
		}
		display.Number(&f, hours, 1, 2)
		f.SetBlink(1, 2)
	case AmPmSetup:
		f.Glyphs[0] = display.LetterA
		if dt.PM {
			f.Glyphs[0] = display.LetterP
		}
		f.SetBlink(0, 1)
	case HoursSetup:
		f = display.ClockFrame(int(dt.Hours), int(dt.Minutes), true)
		f.SetBlink(2, 2)
	case MinutesSetup:
		f = display.ClockFrame(int(dt.Hours), int(dt.Minutes), true)
		f.SetBlink(0, 2)
	}
	return f
}

func unitFromByte(b byte) (display.Unit, bool) {
	switch b {
	case 0:
		return display.Celsius, true
	case 1:
		return display.Fahrenheit, true
	}
	return display.Celsius, false
}
