package input

import (
	"context"
	"time"

	"github.com/sweeney/thermo-clock/internal/gpio"
	"github.com/sweeney/thermo-clock/internal/logger"
)

// Config holds the input timing parameters.
type Config struct {
	Debounce  time.Duration
	Hold      time.Duration
	QueueSize int
}

// DefaultQueueSize is used when Config.QueueSize is not positive.
const DefaultQueueSize = 8

// Manager samples the buttons and queues their transitions. Sample and
// PollEvent run on the scheduler's task goroutine.
type Manager struct {
	reader gpio.Reader
	log    *logger.Logger
	cfg    Config
	now    func() time.Time

	buttons [Buttons]buttonState
	queue   *eventQueue
}

// NewManager creates a manager reading from r.
func NewManager(r gpio.Reader, cfg Config, log *logger.Logger) *Manager {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	return &Manager{
		reader: r,
		log:    log,
		cfg:    cfg,
		now:    time.Now,
		queue:  newEventQueue(cfg.QueueSize),
	}
}

// SetClock replaces the time source used by Sample.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Sample reads the buttons once. It is registered as a periodic task.
func (m *Manager) Sample(ctx context.Context) {
	minus, plus, err := m.reader.Read()
	if err != nil {
		m.log.Warnw("button read failed", "error", err)
		return
	}
	m.process([Buttons]bool{minus, plus}, m.now())
}

// PollEvent returns the oldest queued event, if any.
func (m *Manager) PollEvent() (Event, bool) {
	return m.queue.pop()
}

// Pending returns the number of queued events.
func (m *Manager) Pending() int {
	return m.queue.len()
}

func (m *Manager) process(levels [Buttons]bool, now time.Time) {
	for id := ButtonID(0); id < Buttons; id++ {
		kind := m.processButton(id, levels[id], now)
		if kind != None {
			m.emit(Event{Button: id, Kind: kind, Time: now})
		}
	}

	// Long presses are checked after both buttons are debounced so a
	// simultaneous press never turns into a hold.
	for id := ButtonID(0); id < Buttons; id++ {
		if m.checkHold(id, now) {
			m.emit(Event{Button: id, Kind: LongPress, Time: now})
		}
	}
}

// processButton handles debounce logic for a single button.
// Returns the transition kind if one occurred, None otherwise.
func (m *Manager) processButton(id ButtonID, level bool, now time.Time) Kind {
	b := &m.buttons[id]

	// First time seeing this button
	if !b.Baselined {
		if !b.HasPending || b.Pending != level {
			// Start observing, or restart if the level changed
			b.Pending = level
			b.HasPending = true
			b.PendingSince = now
			return None
		}

		if now.Sub(b.PendingSince) >= m.cfg.Debounce {
			b.Stable = level
			b.Baselined = true
			b.HasPending = false
			// A button already down at startup never produces a hold.
			b.LongDone = level
		}
		return None
	}

	// Already baselined - detect transitions
	if level == b.Stable {
		b.HasPending = false
		return None
	}

	if !b.HasPending || b.Pending != level {
		b.Pending = level
		b.HasPending = true
		b.PendingSince = now
		return None
	}

	if now.Sub(b.PendingSince) < m.cfg.Debounce {
		return None
	}

	b.Stable = level
	b.HasPending = false
	if level {
		b.PressedAt = now
		b.LongDone = false
		return ShortPress
	}
	return Release
}

func (m *Manager) checkHold(id ButtonID, now time.Time) bool {
	b := &m.buttons[id]
	if !b.Baselined || !b.Stable || b.LongDone {
		return false
	}

	other := &m.buttons[1-id]
	if other.Stable {
		b.LongDone = true
		return false
	}

	if now.Sub(b.PressedAt) < m.cfg.Hold {
		return false
	}
	b.LongDone = true
	return true
}

func (m *Manager) emit(ev Event) {
	if m.queue.push(ev) {
		m.log.Warnw("input queue full, dropping oldest", "capacity", m.queue.capacity)
	}
}
