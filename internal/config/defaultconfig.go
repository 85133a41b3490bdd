package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultYAML is the file written by init-config. It matches SetDefaults.
const DefaultYAML = `# thermoclock configuration
# Pins use BCM numbering on the chip below.

log_level: info
chip: gpiochip0

control:
  # controller step period
  period: 100ms

input:
  minus_pin: 21
  plus_pin: 20
  # buttons pull the line to ground when pressed
  active_low: true
  pull_up: true
  sample_period: 10ms
  debounce: 30ms
  # a press longer than this repeats the step until release
  hold: 1s
  queue_size: 8

display:
  # digit selects, right-most digit first
  digit_pins: [17, 27, 22, 10]
  # segments a, b, c, d, e, f, g
  segment_pins: [5, 6, 13, 19, 26, 12, 16]
  colon_pin: 25
  digit_active_low: true
  segment_active_low: false
  refresh: 2ms
  blink_half_period: 500ms

rtc:
  ce_pin: 23
  clk_pin: 24
  io_pin: 18

sensor:
  base_dir: /sys/bus/w1/devices
  # empty picks the first 28-* device
  device: ""
  check_crc: true
  # accept a reading of exactly 85 °C (the DS18B20 power-on value)
  allow_power_on_value: true
  # 9..12 bits, 0 leaves the sensor alone
  resolution: 9

store:
  path: /var/lib/thermoclock/settings.db
`

// WriteDefault writes DefaultYAML to path. An existing file is left alone
// unless reset is set.
func WriteDefault(path string, reset bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !reset {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultYAML), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
