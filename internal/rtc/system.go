package rtc

import (
	"sync"
	"time"

	"github.com/sweeney/thermo-clock/internal/clock"
)

// System keeps time with the host clock plus an offset. It stands in for
// the DS1302 when the bus cannot be claimed; writes move the offset, not
// the host clock.
type System struct {
	now func() time.Time

	mu        sync.Mutex
	offset    time.Duration
	format    clock.HourFormat
	shift     int // days between the written weekday and the calendar's
	protected bool
}

// NewSystem creates a host-clock RTC, write protected like a fresh chip.
func NewSystem() *System {
	return &System{now: time.Now, protected: true}
}

func (s *System) Read() (clock.DateTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Add(s.offset)
	dt := clock.DateTime{
		Year:    uint8(t.Year() % 100),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Weekday: uint8((int(t.Weekday())+s.shift)%7) + 1,
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
		Format:  clock.H24,
	}
	return dt.WithFormat(s.format), nil
}

func (s *System) Write(dt clock.DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.protected {
		return ErrWriteProtected
	}
	t := dt.Time()
	s.offset = t.Sub(s.now().UTC())
	s.format = dt.Format
	s.shift = (int(dt.Weekday) - 1 - int(t.Weekday()) + 7) % 7
	return nil
}

func (s *System) SetWriteProtection(on bool) error {
	s.mu.Lock()
	s.protected = on
	s.mu.Unlock()
	return nil
}

func (s *System) Range(field clock.Field, format clock.HourFormat) (int, int) {
	return clock.Limits(field, format)
}
