package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sweeney/thermo-clock/internal/config"
	"github.com/sweeney/thermo-clock/internal/display"
	"github.com/sweeney/thermo-clock/internal/gpio"
	"github.com/sweeney/thermo-clock/internal/logger"
	"github.com/sweeney/thermo-clock/internal/rtc"
	"github.com/sweeney/thermo-clock/internal/status"
	"github.com/sweeney/thermo-clock/internal/store"
	"github.com/sweeney/thermo-clock/internal/thermo"
)

// hardware holds the peripheral drivers. A peripheral that cannot be
// opened is replaced by a stand-in and the clock keeps running.
type hardware struct {
	cfg config.Config
	log *logger.Logger

	buttons gpio.Reader
	display display.Driver
	mux     *display.Multiplexer // nil unless the display is on GPIO
	rtc     rtc.Clock
	sensor  thermo.Sensor
	store   store.Store
	drivers status.Drivers

	closers []func() error
}

// openHardware opens every peripheral.
func openHardware(cfg config.Config, log *logger.Logger) *hardware {
	hw := &hardware{cfg: cfg, log: log}
	hw.openButtons()
	hw.openDisplay()
	hw.openRTC()
	hw.openSensor(true)
	hw.openStore()
	return hw
}

func (hw *hardware) onClose(fn func() error) {
	hw.closers = append(hw.closers, fn)
}

func (hw *hardware) openButtons() {
	r, err := gpio.NewRealReader(hw.cfg.Buttons())
	if err != nil {
		hw.log.Warnw("buttons unavailable, input disabled", "error", err)
		hw.buttons = gpio.NewFakeReader([]gpio.Sample{{}})
		hw.drivers.Buttons = "none"
		return
	}
	hw.buttons = r
	hw.drivers.Buttons = "gpio"
	hw.onClose(r.Close)
}

func (hw *hardware) openDisplay() {
	var banks []*gpio.RealBank
	release := func() {
		for _, b := range banks {
			_ = b.Close()
		}
	}

	for _, pins := range [][]int{hw.cfg.Display.DigitPins, hw.cfg.Display.SegmentPins, {hw.cfg.Display.ColonPin}} {
		b, err := gpio.NewOutputBank(hw.cfg.Chip, pins)
		if err != nil {
			release()
			hw.log.Warnw("display unavailable, logging frames instead", "error", err)
			hw.display = display.NewLogDisplay(hw.log.Named("display"))
			hw.drivers.Display = "log"
			return
		}
		banks = append(banks, b)
	}

	hw.mux = display.NewMultiplexer(banks[0], banks[1], banks[2], hw.cfg.Mux())
	hw.display = hw.mux
	hw.drivers.Display = "gpio"
	for _, b := range banks {
		hw.onClose(b.Close)
	}
}

func (hw *hardware) openRTC() {
	bus, err := gpio.NewThreeWire(hw.cfg.ThreeWire())
	if err == nil {
		chip := rtc.NewDS1302(bus)
		if err = chip.Configure(); err == nil {
			hw.rtc = chip
			hw.drivers.RTC = "ds1302"
			hw.onClose(bus.Close)
			return
		}
		_ = bus.Close()
	}
	hw.log.Warnw("rtc unavailable, keeping time with the system clock", "error", err)
	hw.rtc = rtc.NewSystem()
	hw.drivers.RTC = "system"
}

// openSensor locates the sensor. configure also writes its resolution,
// which print-state skips.
func (hw *hardware) openSensor(configure bool) {
	s, err := thermo.NewW1Sensor(hw.cfg.W1())
	if err != nil {
		hw.log.Warnw("temperature sensor unavailable", "error", err)
		hw.sensor = &thermo.Fake{ReadError: err}
		hw.drivers.Sensor = "none"
		return
	}
	if configure {
		if err := s.Configure(); err != nil {
			hw.log.Warnw("temperature sensor configuration failed", "device", s.Device(), "error", err)
		}
	}
	hw.sensor = s
	hw.drivers.Sensor = "w1"
}

func (hw *hardware) openStore() {
	path := hw.cfg.Store.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		hw.log.Warnw("settings directory unavailable", "path", path, "error", err)
	}

	db, err := store.OpenDB(path)
	if err != nil {
		hw.log.Warnw("settings database unavailable, preferences will not persist", "path", path, "error", err)
		hw.store = store.NewMemory()
		hw.drivers.Store = "memory"
		return
	}
	s := store.NewSQLite(db)
	hw.store = s
	hw.drivers.Store = "sqlite"
	hw.onClose(s.Close)
}

// Close releases the peripherals in reverse order of opening.
func (hw *hardware) Close() error {
	var errs []error
	for i := len(hw.closers) - 1; i >= 0; i-- {
		if err := hw.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	hw.closers = nil

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %w", errors.Join(errs...))
	}
	return nil
}
