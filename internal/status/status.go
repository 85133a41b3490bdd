// Package status provides a thread-safe snapshot of the clock's runtime
// state. The controller writes it on every change; the shutdown path and
// print-state read it.
package status

import (
	"sync"
	"time"
)

// Drivers names the implementation behind each peripheral, e.g. "gpio",
// "ds1302", "w1", "sqlite" for hardware and "log", "system", "memory",
// "none" when the daemon fell back.
type Drivers struct {
	Buttons string
	Display string
	RTC     string
	Sensor  string
	Store   string
}

// Degraded reports whether any peripheral runs on a fallback.
func (d Drivers) Degraded() bool {
	switch {
	case d.Buttons != "gpio", d.Display != "gpio", d.RTC != "ds1302",
		d.Sensor != "w1", d.Store != "sqlite":
		return true
	}
	return false
}

// Config contains daemon configuration for display.
type Config struct {
	ConfigFile string
	PeriodMs   int64
	DebounceMs int64
	HoldMs     int64
	StorePath  string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Screen      string
	Unit        string
	Shown       string
	Colon       bool
	SensorFault bool
	Clock       time.Time
	Temperature *int
	StartTime   time.Time
	Now         time.Time
	Drivers     Drivers
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time, drivers and
// config.
func NewTracker(startTime time.Time, drivers Drivers, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Drivers:   drivers,
			Config:    cfg,
		},
	}
}

// SetScreen records the active screen and the unit preference.
func (t *Tracker) SetScreen(screen, unit string) {
	t.mu.Lock()
	t.snap.Screen = screen
	t.snap.Unit = unit
	t.mu.Unlock()
}

// SetShown records the frame currently on the display.
func (t *Tracker) SetShown(shown string, colon bool) {
	t.mu.Lock()
	t.snap.Shown = shown
	t.snap.Colon = colon
	t.mu.Unlock()
}

// SetSensorFault records whether the last temperature read failed.
func (t *Tracker) SetSensorFault(fault bool) {
	t.mu.Lock()
	t.snap.SensorFault = fault
	t.mu.Unlock()
}

// SetReading records a one-off clock and temperature reading. A nil
// temperature means the sensor could not be read.
func (t *Tracker) SetReading(clock time.Time, temperature *int) {
	t.mu.Lock()
	t.snap.Clock = clock
	t.snap.Temperature = temperature
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
