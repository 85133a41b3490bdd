package display

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Lines is a group of output lines written together.
type Lines interface {
	SetValues(values []int) error
}

// MuxConfig configures the multiplexed seven-segment driver.
type MuxConfig struct {
	// Refresh is how long each digit stays lit before the next one.
	Refresh time.Duration
	// BlinkHalfPeriod is the on (and off) time of a blinking digit.
	BlinkHalfPeriod time.Duration
	// DigitActiveLow drives digit select lines low to enable a digit.
	DigitActiveLow bool
	// SegmentActiveLow drives segment lines low to light a segment.
	SegmentActiveLow bool
}

// Multiplexer drives a common-cathode/anode four-digit display by lighting
// one digit at a time. Render, SetBlink and SetColon are called from the
// controller task; Run refreshes from its own goroutine.
type Multiplexer struct {
	digits   Lines // one line per position, index = position
	segments Lines // a..g
	colon    Lines
	cfg      MuxConfig

	mu     sync.Mutex
	glyphs [Digits]Glyph
	blink  [Digits]bool

	digitBuf   [Digits]int
	segmentBuf [segmentCount]int
	colonBuf   [1]int
}

// NewMultiplexer creates a driver over the given line groups.
func NewMultiplexer(digits, segments, colon Lines, cfg MuxConfig) *Multiplexer {
	m := &Multiplexer{
		digits:   digits,
		segments: segments,
		colon:    colon,
		cfg:      cfg,
	}
	for i := range m.glyphs {
		m.glyphs[i] = Blank
	}
	return m
}

// Render sets the glyph of pos; it becomes visible on the next refresh.
func (m *Multiplexer) Render(pos int, g Glyph) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	m.mu.Lock()
	m.glyphs[pos] = g
	m.mu.Unlock()
	return nil
}

// SetBlink enables or disables blinking of pos.
func (m *Multiplexer) SetBlink(pos int, enabled bool) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	m.mu.Lock()
	m.blink[pos] = enabled
	m.mu.Unlock()
	return nil
}

// SetColon writes the colon line immediately.
func (m *Multiplexer) SetColon(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colonBuf[0] = level(on, false)
	if err := m.colon.SetValues(m.colonBuf[:]); err != nil {
		return fmt.Errorf("set colon: %w", err)
	}
	return nil
}

// Run refreshes the display until ctx is cancelled, then blanks it.
func (m *Multiplexer) Run(ctx context.Context) error {
	t := time.NewTicker(m.cfg.Refresh)
	defer t.Stop()

	start := time.Now()
	pos := 0
	for {
		select {
		case <-ctx.Done():
			return m.Blank()
		case now := <-t.C:
			if err := m.step(pos, now.Sub(start)); err != nil {
				return err
			}
			pos = (pos + 1) % Digits
		}
	}
}

// step lights position pos. elapsed drives the blink phase.
func (m *Multiplexer) step(pos int, elapsed time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Switch every digit off first so the new segments never ghost onto
	// the previous position.
	for i := range m.digitBuf {
		m.digitBuf[i] = level(false, m.cfg.DigitActiveLow)
	}
	if err := m.digits.SetValues(m.digitBuf[:]); err != nil {
		return fmt.Errorf("clear digits: %w", err)
	}

	if m.blink[pos] && m.blinkOff(elapsed) {
		return nil
	}

	segs := Segments(m.glyphs[pos])
	for i := range m.segmentBuf {
		m.segmentBuf[i] = level(segs&(1<<i) != 0, m.cfg.SegmentActiveLow)
	}
	if err := m.segments.SetValues(m.segmentBuf[:]); err != nil {
		return fmt.Errorf("set segments: %w", err)
	}

	m.digitBuf[pos] = level(true, m.cfg.DigitActiveLow)
	if err := m.digits.SetValues(m.digitBuf[:]); err != nil {
		return fmt.Errorf("select digit %d: %w", pos, err)
	}
	return nil
}

func (m *Multiplexer) blinkOff(elapsed time.Duration) bool {
	if m.cfg.BlinkHalfPeriod <= 0 {
		return false
	}
	return (elapsed/m.cfg.BlinkHalfPeriod)%2 == 1
}

// Blank switches every digit, segment and the colon off.
func (m *Multiplexer) Blank() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i := range m.digitBuf {
		m.digitBuf[i] = level(false, m.cfg.DigitActiveLow)
	}
	if err := m.digits.SetValues(m.digitBuf[:]); err != nil {
		errs = append(errs, fmt.Errorf("clear digits: %w", err))
	}
	for i := range m.segmentBuf {
		m.segmentBuf[i] = level(false, m.cfg.SegmentActiveLow)
	}
	if err := m.segments.SetValues(m.segmentBuf[:]); err != nil {
		errs = append(errs, fmt.Errorf("clear segments: %w", err))
	}
	m.colonBuf[0] = 0
	if err := m.colon.SetValues(m.colonBuf[:]); err != nil {
		errs = append(errs, fmt.Errorf("clear colon: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("blank errors: %w", errors.Join(errs...))
	}
	return nil
}

func level(active, activeLow bool) int {
	if active != activeLow {
		return 1
	}
	return 0
}
