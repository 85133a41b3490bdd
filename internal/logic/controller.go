package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeney/thermo-clock/internal/clock"
	"github.com/sweeney/thermo-clock/internal/display"
	"github.com/sweeney/thermo-clock/internal/logger"
	"github.com/sweeney/thermo-clock/internal/rtc"
	"github.com/sweeney/thermo-clock/internal/sched"
	"github.com/sweeney/thermo-clock/internal/store"
	"github.com/sweeney/thermo-clock/internal/thermo"
)

// Delays, in milliseconds of Countdown.
const (
	SplashMs  = 5000
	RefreshMs = 1000
)

// Refresh counts before the display rotates.
const (
	TimeRefreshes = 20
	TempRefreshes = 5
)

// DefaultPeriod is the controller step period.
const DefaultPeriod = 100 * time.Millisecond

// Deps are the collaborators the controller drives.
type Deps struct {
	Display display.Driver
	Input   EventSource
	RTC     rtc.Clock
	Sensor  thermo.Sensor
	Store   store.Store
	Log     *logger.Logger

	// Status, if set, receives screen, frame and sensor changes.
	Status StatusSink
}

// StatusSink is the diagnostic view of the controller. status.Tracker
// implements it.
type StatusSink interface {
	SetScreen(screen, unit string)
	SetShown(shown string, colon bool)
	SetSensorFault(fault bool)
}

type nopStatus struct{}

func (nopStatus) SetScreen(string, string) {}
func (nopStatus) SetShown(string, bool)    {}
func (nopStatus) SetSensorFault(bool)      {}

// Session is the controller's mutable state. Screen handlers receive it by
// pointer and are its only writers, except Countdown which the tick also
// decrements.
type Session struct {
	Screen    Screen
	Draft     clock.DateTime
	Unit      display.Unit
	Format    clock.HourFormat // choice on the time-format screen
	Input     Classifier
	Countdown sched.Countdown
	Refreshes int
	Frame     display.Frame

	sensorFault bool
}

// Controller runs one state machine step per invocation.
type Controller struct {
	deps    Deps
	session Session

	shown    display.Frame
	hasShown bool
	pushFail bool
}

// New creates a controller starting on the splash screen.
func New(deps Deps) *Controller {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Status == nil {
		deps.Status = nopStatus{}
	}
	c := &Controller{deps: deps}
	c.session.Screen = SplashOn
	c.session.Draft = clock.Default()
	c.session.Format = c.session.Draft.Format
	c.session.Frame = display.BlankFrame()
	return c
}

// Register adds Step as a periodic task and Tick as the tick callback.
func (c *Controller) Register(s *sched.Scheduler, period time.Duration) error {
	if period <= 0 {
		period = DefaultPeriod
	}
	if err := s.RegisterTask(c.Step, period); err != nil {
		return fmt.Errorf("register controller: %w", err)
	}
	s.RegisterTick(c.Tick)
	return nil
}

// Tick advances the countdown by one millisecond.
func (c *Controller) Tick() {
	c.session.Countdown.Tick()
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen {
	return c.session.Screen
}

// Step classifies input, runs the active screen's handler and pushes the
// frame to the display if it changed.
func (c *Controller) Step(ctx context.Context) {
	s := &c.session
	ev := s.Input.Classify(c.deps.Input)

	prev, unit := s.Screen, s.Unit
	s.Screen = c.dispatch(ctx, s, ev)
	if s.Screen.setup() {
		s.Frame = setupFrame(s)
	}

	if s.Screen != prev {
		c.deps.Log.Debugw("screen", "from", prev, "to", s.Screen, "event", ev)
	}
	if s.Screen != prev || s.Unit != unit {
		c.deps.Status.SetScreen(s.Screen.String(), s.Unit.String())
	}
	c.push(s.Frame)
}

func (c *Controller) dispatch(ctx context.Context, s *Session, ev Event) Screen {
	switch s.Screen {
	case SplashOn:
		return c.splashOn(s)
	case SplashWait:
		return c.splashWait(ctx, s)
	case UnitSetup:
		return c.unitSetup(ctx, s, ev)
	case YearSetup:
		return c.fieldSetup(s, ev, clock.Year, MonthSetup)
	case MonthSetup:
		return c.fieldSetup(s, ev, clock.Month, DaySetup)
	case DaySetup:
		return c.fieldSetup(s, ev, clock.Day, WeekdaySetup)
	case WeekdaySetup:
		next := c.fieldSetup(s, ev, clock.Weekday, TimeFormatSetup)
		if next == TimeFormatSetup {
			s.Format = s.Draft.Format
		}
		return next
	case TimeFormatSetup:
		return c.timeFormatSetup(s, ev)
	case AmPmSetup:
		return c.amPmSetup(s, ev)
	case HoursSetup:
		return c.fieldSetup(s, ev, clock.Hours, MinutesSetup)
	case MinutesSetup:
		return c.minutesSetup(s, ev)
	case TimeDisplay:
		return c.timeDisplay(s, ev)
	case TempDisplay:
		return c.tempDisplay(s, ev)
	}
	panic(fmt.Sprintf("logic: unhandled %s", s.Screen))
}

func (c *Controller) push(f display.Frame) {
	if c.hasShown && f == c.shown {
		return
	}
	if err := display.Show(c.deps.Display, f); err != nil {
		if !c.pushFail {
			c.deps.Log.Warnw("display write failed", "error", err)
			c.pushFail = true
		}
		return
	}
	if c.pushFail {
		c.deps.Log.Infow("display write recovered")
		c.pushFail = false
	}
	c.shown = f
	c.hasShown = true
	c.deps.Status.SetShown(f.String(), f.Colon)
}
