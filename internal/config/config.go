// Package config loads the appliance configuration with viper: built-in
// defaults, then the YAML file, then THERMOCLOCK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sweeney/thermo-clock/internal/display"
	"github.com/sweeney/thermo-clock/internal/gpio"
	"github.com/sweeney/thermo-clock/internal/input"
	"github.com/sweeney/thermo-clock/internal/logger"
	"github.com/sweeney/thermo-clock/internal/thermo"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "/etc/thermoclock.yaml"

// EnvPrefix prefixes environment overrides, e.g. THERMOCLOCK_LOG_LEVEL.
const EnvPrefix = "THERMOCLOCK"

// Config is the complete appliance configuration.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Chip     string        `mapstructure:"chip"`
	Control  ControlConfig `mapstructure:"control"`
	Input    InputConfig   `mapstructure:"input"`
	Display  DisplayConfig `mapstructure:"display"`
	RTC      RTCConfig     `mapstructure:"rtc"`
	Sensor   SensorConfig  `mapstructure:"sensor"`
	Store    StoreConfig   `mapstructure:"store"`

	// Source is the file the values were read from, empty for defaults.
	Source string `mapstructure:"-"`
}

// ControlConfig sets the scheduler cadence.
type ControlConfig struct {
	Period time.Duration `mapstructure:"period"`
}

// InputConfig describes the buttons (BCM numbering).
type InputConfig struct {
	Minus     int           `mapstructure:"minus_pin"`
	Plus      int           `mapstructure:"plus_pin"`
	ActiveLow bool          `mapstructure:"active_low"`
	PullUp    bool          `mapstructure:"pull_up"`
	Sample    time.Duration `mapstructure:"sample_period"`
	Debounce  time.Duration `mapstructure:"debounce"`
	Hold      time.Duration `mapstructure:"hold"`
	QueueSize int           `mapstructure:"queue_size"`
}

// DisplayConfig describes the multiplexed display (BCM numbering).
type DisplayConfig struct {
	// DigitPins are the digit selects, right-most digit first.
	DigitPins []int `mapstructure:"digit_pins"`
	// SegmentPins are segments a..g.
	SegmentPins      []int         `mapstructure:"segment_pins"`
	ColonPin         int           `mapstructure:"colon_pin"`
	DigitActiveLow   bool          `mapstructure:"digit_active_low"`
	SegmentActiveLow bool          `mapstructure:"segment_active_low"`
	Refresh          time.Duration `mapstructure:"refresh"`
	BlinkHalfPeriod  time.Duration `mapstructure:"blink_half_period"`
}

// RTCConfig names the DS1302 bus pins (BCM numbering).
type RTCConfig struct {
	CE  int `mapstructure:"ce_pin"`
	CLK int `mapstructure:"clk_pin"`
	IO  int `mapstructure:"io_pin"`
}

// SensorConfig configures the 1-Wire sensor.
type SensorConfig struct {
	BaseDir           string `mapstructure:"base_dir"`
	Device            string `mapstructure:"device"`
	CheckCRC          bool   `mapstructure:"check_crc"`
	AllowPowerOnValue bool   `mapstructure:"allow_power_on_value"`
	Resolution        int    `mapstructure:"resolution"`
}

// StoreConfig locates the settings database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SetDefaults registers every key with its default. The pin map is the
// PCB0001 board wired to a Raspberry Pi header.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", logger.InfoLevel)
	v.SetDefault("chip", "gpiochip0")

	v.SetDefault("control.period", 100*time.Millisecond)

	v.SetDefault("input.minus_pin", 21)
	v.SetDefault("input.plus_pin", 20)
	v.SetDefault("input.active_low", true)
	v.SetDefault("input.pull_up", true)
	v.SetDefault("input.sample_period", 10*time.Millisecond)
	v.SetDefault("input.debounce", 30*time.Millisecond)
	v.SetDefault("input.hold", time.Second)
	v.SetDefault("input.queue_size", input.DefaultQueueSize)

	v.SetDefault("display.digit_pins", []int{17, 27, 22, 10})
	v.SetDefault("display.segment_pins", []int{5, 6, 13, 19, 26, 12, 16})
	v.SetDefault("display.colon_pin", 25)
	v.SetDefault("display.digit_active_low", true)
	v.SetDefault("display.segment_active_low", false)
	v.SetDefault("display.refresh", 2*time.Millisecond)
	v.SetDefault("display.blink_half_period", 500*time.Millisecond)

	v.SetDefault("rtc.ce_pin", 23)
	v.SetDefault("rtc.clk_pin", 24)
	v.SetDefault("rtc.io_pin", 18)

	v.SetDefault("sensor.base_dir", thermo.DefaultBaseDir)
	v.SetDefault("sensor.device", "")
	v.SetDefault("sensor.check_crc", true)
	v.SetDefault("sensor.allow_power_on_value", true)
	v.SetDefault("sensor.resolution", 9)

	v.SetDefault("store.path", "/var/lib/thermoclock/settings.db")
}

// Load reads path into v over the defaults. A missing file is not an
// error; the defaults and environment apply.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var source string
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		switch err := v.ReadInConfig(); {
		case err == nil:
			source = path
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.Source = source

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges and that no pin is used twice.
func (c Config) Validate() error {
	var errs []error

	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is not debug, info, warn or error", c.LogLevel))
	}
	if c.Control.Period <= 0 {
		errs = append(errs, errors.New("control.period must be positive"))
	}
	if c.Input.Sample <= 0 {
		errs = append(errs, errors.New("input.sample_period must be positive"))
	}
	if c.Input.Debounce < 0 || c.Input.Hold <= c.Input.Debounce {
		errs = append(errs, errors.New("input.hold must exceed input.debounce"))
	}
	if n := len(c.Display.DigitPins); n != display.Digits {
		errs = append(errs, fmt.Errorf("display.digit_pins has %d pins, want %d", n, display.Digits))
	}
	if n := len(c.Display.SegmentPins); n != 7 {
		errs = append(errs, fmt.Errorf("display.segment_pins has %d pins, want 7", n))
	}
	if c.Display.Refresh <= 0 {
		errs = append(errs, errors.New("display.refresh must be positive"))
	}
	if r := c.Sensor.Resolution; r != 0 && (r < 9 || r > 12) {
		errs = append(errs, fmt.Errorf("sensor.resolution %d outside 9..12", r))
	}

	seen := make(map[int]string)
	for name, pin := range c.pins() {
		if other, dup := seen[pin]; dup {
			errs = append(errs, fmt.Errorf("pin %d used by both %s and %s", pin, other, name))
			continue
		}
		seen[pin] = name
	}

	return errors.Join(errs...)
}

func (c Config) pins() map[string]int {
	p := map[string]int{
		"input.minus_pin":   c.Input.Minus,
		"input.plus_pin":    c.Input.Plus,
		"display.colon_pin": c.Display.ColonPin,
		"rtc.ce_pin":        c.RTC.CE,
		"rtc.clk_pin":       c.RTC.CLK,
		"rtc.io_pin":        c.RTC.IO,
	}
	for i, pin := range c.Display.DigitPins {
		p[fmt.Sprintf("display.digit_pins[%d]", i)] = pin
	}
	for i, pin := range c.Display.SegmentPins {
		p[fmt.Sprintf("display.segment_pins[%d]", i)] = pin
	}
	return p
}

// Buttons returns the button wiring.
func (c Config) Buttons() gpio.ButtonConfig {
	return gpio.ButtonConfig{
		Chip:      c.Chip,
		Minus:     c.Input.Minus,
		Plus:      c.Input.Plus,
		ActiveLow: c.Input.ActiveLow,
		PullUp:    c.Input.PullUp,
	}
}

// InputManager returns the input timing.
func (c Config) InputManager() input.Config {
	return input.Config{
		Debounce:  c.Input.Debounce,
		Hold:      c.Input.Hold,
		QueueSize: c.Input.QueueSize,
	}
}

// Mux returns the display timing and polarity.
func (c Config) Mux() display.MuxConfig {
	return display.MuxConfig{
		Refresh:          c.Display.Refresh,
		BlinkHalfPeriod:  c.Display.BlinkHalfPeriod,
		DigitActiveLow:   c.Display.DigitActiveLow,
		SegmentActiveLow: c.Display.SegmentActiveLow,
	}
}

// ThreeWire returns the RTC bus wiring.
func (c Config) ThreeWire() gpio.ThreeWireConfig {
	return gpio.ThreeWireConfig{Chip: c.Chip, CE: c.RTC.CE, CLK: c.RTC.CLK, IO: c.RTC.IO}
}

// W1 returns the sensor settings.
func (c Config) W1() thermo.W1Config {
	return thermo.W1Config{
		BaseDir:           c.Sensor.BaseDir,
		Device:            c.Sensor.Device,
		CheckCRC:          c.Sensor.CheckCRC,
		AllowPowerOnValue: c.Sensor.AllowPowerOnValue,
		Resolution:        c.Sensor.Resolution,
	}
}
