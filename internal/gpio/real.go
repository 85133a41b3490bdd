//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the buttons using the Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	minus *gpiocdev.Line
	plus  *gpiocdev.Line
}

// NewRealReader requests both button lines as inputs.
func NewRealReader(cfg ButtonConfig) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if cfg.PullUp {
		opts = append(opts, gpiocdev.WithPullUp)
	} else {
		opts = append(opts, gpiocdev.WithPullDown)
	}
	if cfg.ActiveLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}

	minus, err := chip.RequestLine(cfg.Minus, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request minus pin %d: %w", cfg.Minus, err)
	}

	plus, err := chip.RequestLine(cfg.Plus, opts...)
	if err != nil {
		minus.Close()
		chip.Close()
		return nil, fmt.Errorf("request plus pin %d: %w", cfg.Plus, err)
	}

	return &RealReader{chip: chip, minus: minus, plus: plus}, nil
}

// Read returns the logical button levels. Active-low wiring is handled by
// the line request, so 1 always means pressed.
func (r *RealReader) Read() (bool, bool, error) {
	m, err := r.minus.Value()
	if err != nil {
		return false, false, fmt.Errorf("read minus pin: %w", err)
	}

	p, err := r.plus.Value()
	if err != nil {
		return false, false, fmt.Errorf("read plus pin: %w", err)
	}

	return m == 1, p == 1, nil
}

// Close releases the lines and the chip.
func (r *RealReader) Close() error {
	var errs []error
	for name, l := range map[string]*gpiocdev.Line{"minus": r.minus, "plus": r.plus} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealBank is a set of output lines requested together.
type RealBank struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
}

// NewOutputBank requests offsets as outputs, initially driven low.
func NewOutputBank(chipName string, offsets []int) (*RealBank, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines, err := chip.RequestLines(offsets, gpiocdev.AsOutput(make([]int, len(offsets))...))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request output pins %v: %w", offsets, err)
	}

	return &RealBank{chip: chip, lines: lines}, nil
}

// SetValues drives every line of the bank.
func (b *RealBank) SetValues(values []int) error {
	if err := b.lines.SetValues(values); err != nil {
		return fmt.Errorf("set output pins: %w", err)
	}
	return nil
}

// Close returns the lines to inputs before releasing them, so the display
// goes dark when the process exits.
func (b *RealBank) Close() error {
	var errs []error

	if b.lines != nil {
		if err := b.lines.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure output pins: %w", err))
		}
		if err := b.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output pins: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealThreeWire drives the RTC bus.
type RealThreeWire struct {
	chip *gpiocdev.Chip
	ce   *gpiocdev.Line
	clk  *gpiocdev.Line
	io   *gpiocdev.Line
}

// NewThreeWire requests CE and CLK as outputs held low and IO as an output.
func NewThreeWire(cfg ThreeWireConfig) (*RealThreeWire, error) {
	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	w := &RealThreeWire{chip: chip}
	if w.ce, err = chip.RequestLine(cfg.CE, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request CE pin %d: %w", cfg.CE, err)
	}
	if w.clk, err = chip.RequestLine(cfg.CLK, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request CLK pin %d: %w", cfg.CLK, err)
	}
	if w.io, err = chip.RequestLine(cfg.IO, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request IO pin %d: %w", cfg.IO, err)
	}

	return w, nil
}

func (w *RealThreeWire) SetCE(high bool) error {
	return w.ce.SetValue(toInt(high))
}

func (w *RealThreeWire) SetClock(high bool) error {
	return w.clk.SetValue(toInt(high))
}

func (w *RealThreeWire) SetIO(high bool) error {
	return w.io.SetValue(toInt(high))
}

func (w *RealThreeWire) ReadIO() (bool, error) {
	v, err := w.io.Value()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// SetIOOutput reconfigures the data line. Switching to output drives it low.
func (w *RealThreeWire) SetIOOutput(output bool) error {
	if output {
		return w.io.Reconfigure(gpiocdev.AsOutput(0))
	}
	return w.io.Reconfigure(gpiocdev.AsInput)
}

// Close leaves every bus line as an input with pull-down, matching the
// Raspberry Pi boot defaults.
func (w *RealThreeWire) Close() error {
	var errs []error

	for _, l := range []struct {
		name string
		line *gpiocdev.Line
	}{{"CE", w.ce}, {"CLK", w.clk}, {"IO", w.io}} {
		if l.line == nil {
			continue
		}
		if err := l.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
