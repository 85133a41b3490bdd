package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sweeney/thermo-clock/internal/config"
	"github.com/sweeney/thermo-clock/internal/display"
	"github.com/sweeney/thermo-clock/internal/input"
	"github.com/sweeney/thermo-clock/internal/logger"
	"github.com/sweeney/thermo-clock/internal/logic"
	"github.com/sweeney/thermo-clock/internal/sched"
	"github.com/sweeney/thermo-clock/internal/status"
	"github.com/sweeney/thermo-clock/internal/store"
	"github.com/sweeney/thermo-clock/internal/thermo"
)

func statusConfig(cfg config.Config) status.Config {
	return status.Config{
		ConfigFile: cfg.Source,
		PeriodMs:   cfg.Control.Period.Milliseconds(),
		DebounceMs: cfg.Input.Debounce.Milliseconds(),
		HoldMs:     cfg.Input.Hold.Milliseconds(),
		StorePath:  cfg.Store.Path,
	}
}

// runDaemon builds the modules on top of hw and runs the scheduler until
// ctx is cancelled.
func runDaemon(ctx context.Context, cfg config.Config, hw *hardware, log *logger.Logger) error {
	tracker := status.NewTracker(time.Now(), hw.drivers, statusConfig(cfg))

	// A w1 conversion can take most of a second; read it off the task
	// goroutine and let the controller see the latest result.
	sensor := hw.sensor
	var cached *thermo.Cached
	if w1, ok := hw.sensor.(*thermo.W1Sensor); ok {
		cached = thermo.NewCached(w1, thermo.DefaultPollPeriod)
		sensor = cached
	}

	inputs := input.NewManager(hw.buttons, cfg.InputManager(), log.Named("input"))
	ctrl := logic.New(logic.Deps{
		Display: hw.display,
		Input:   inputs,
		RTC:     hw.rtc,
		Sensor:  sensor,
		Store:   hw.store,
		Log:     log.Named("logic"),
		Status:  tracker,
	})

	// Sampling is registered first so a step sees the events of the same
	// period.
	s := sched.New(cfg.Input.Sample)
	if err := s.RegisterTask(inputs.Sample, cfg.Input.Sample); err != nil {
		return fmt.Errorf("register input: %w", err)
	}
	if err := ctrl.Register(s, cfg.Control.Period); err != nil {
		return err
	}

	log.Infow("thermoclock starting",
		"version", version,
		"config", cfg.Source,
		"buttons", hw.drivers.Buttons,
		"display", hw.drivers.Display,
		"rtc", hw.drivers.RTC,
		"sensor", hw.drivers.Sensor,
		"store", hw.drivers.Store,
		"period", cfg.Control.Period,
	)
	if hw.drivers.Degraded() {
		log.Warnw("running with stand-in peripherals")
	}

	var wg sync.WaitGroup
	if hw.mux != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hw.mux.Run(ctx); err != nil {
				log.Errorw("display refresh stopped", "error", err)
			}
		}()
	}

	if cached != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cached.Run(ctx)
		}()
	}

	err := s.Run(ctx)
	wg.Wait()

	log.Infow("thermoclock stopped", "status", string(status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN")))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printState reads the peripherals once without touching the display or
// buttons, which a running daemon may hold.
func (o *options) printState(ctx context.Context, w io.Writer) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	hw := &hardware{cfg: cfg, log: log}
	hw.openRTC()
	hw.openSensor(false)
	hw.openStore()
	defer hw.Close()

	snap := readState(ctx, hw, statusConfig(cfg))
	_, err = fmt.Fprintf(w, "%s\n", status.FormatJSON(snap))
	return err
}

func readState(ctx context.Context, hw *hardware, cfg status.Config) status.Snapshot {
	tracker := status.NewTracker(time.Now(), hw.drivers, cfg)

	unit, known := display.Celsius, false
	switch b, err := hw.store.ReadSlot(ctx, store.SlotUnit); {
	case err != nil:
		hw.log.Warnw("unit preference read failed", "error", err)
	case b == byte(display.Celsius), b == byte(display.Fahrenheit):
		unit, known = display.Unit(b), true
	}
	if known {
		tracker.SetScreen("", unit.String())
	} else {
		tracker.SetScreen("", "unset")
	}

	var now time.Time
	if dt, err := hw.rtc.Read(); err != nil {
		hw.log.Warnw("rtc read failed", "error", err)
	} else {
		now = dt.Time()
	}

	var temperature *int
	raw, err := hw.sensor.ReadScaledCelsius()
	if err == nil {
		var v int
		if v, err = display.Temperature(int(raw), unit); err == nil {
			temperature = &v
		}
	}
	if err != nil {
		hw.log.Warnw("temperature read failed", "error", err)
	}
	tracker.SetSensorFault(err != nil)
	tracker.SetReading(now, temperature)

	return tracker.Snapshot()
}
