package thermo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBaseDir is where the kernel lists 1-Wire slaves.
const DefaultBaseDir = "/sys/bus/w1/devices"

// powerOnMilli is the DS18B20 power-on reset value, reported when a
// conversion never ran.
const powerOnMilli = 85000

// maxMilli bounds parsed readings so the 1/16 °C result fits in int16.
const maxMilli = 200000

// W1Config configures a W1Sensor.
type W1Config struct {
	// BaseDir holds the slave directories; DefaultBaseDir if empty.
	BaseDir string
	// Device is the slave id (28-xxxxxxxxxxxx); the first 28-* slave if empty.
	Device string
	// CheckCRC rejects readings whose CRC line does not end in YES.
	CheckCRC bool
	// AllowPowerOnValue accepts a reading of exactly 85 °C.
	AllowPowerOnValue bool
	// Resolution in bits (9–12); 0 leaves the sensor setting alone.
	Resolution int
}

// W1Sensor reads a DS18B20 through the Linux w1_therm driver.
type W1Sensor struct {
	dir string
	cfg W1Config
}

// NewW1Sensor locates the slave directory.
func NewW1Sensor(cfg W1Config) (*W1Sensor, error) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}

	dir := filepath.Join(cfg.BaseDir, cfg.Device)
	if cfg.Device == "" {
		matches, err := filepath.Glob(filepath.Join(cfg.BaseDir, "28-*"))
		if err != nil {
			return nil, fmt.Errorf("find w1 slaves: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no DS18B20 under %s", cfg.BaseDir)
		}
		dir = matches[0]
	}

	if _, err := os.Stat(filepath.Join(dir, "w1_slave")); err != nil {
		return nil, fmt.Errorf("w1 slave: %w", err)
	}
	return &W1Sensor{dir: dir, cfg: cfg}, nil
}

// Device returns the slave directory in use.
func (s *W1Sensor) Device() string {
	return s.dir
}

// Configure writes the conversion resolution, if one is set.
func (s *W1Sensor) Configure() error {
	if s.cfg.Resolution == 0 {
		return nil
	}
	if s.cfg.Resolution < 9 || s.cfg.Resolution > 12 {
		return fmt.Errorf("resolution %d outside 9..12 bits", s.cfg.Resolution)
	}
	path := filepath.Join(s.dir, "resolution")
	if err := os.WriteFile(path, []byte(strconv.Itoa(s.cfg.Resolution)), 0o644); err != nil {
		return fmt.Errorf("set resolution: %w", err)
	}
	return nil
}

// ReadScaledCelsius triggers a conversion and returns it in 1/16 °C.
func (s *W1Sensor) ReadScaledCelsius() (int16, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "w1_slave"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSensorFault, err)
	}

	milli, err := parseW1Slave(data, s.cfg.CheckCRC)
	if err != nil {
		return 0, err
	}
	if milli == powerOnMilli && !s.cfg.AllowPowerOnValue {
		return 0, fmt.Errorf("%w: power-on value 85 °C", ErrSensorFault)
	}
	if milli < -maxMilli || milli > maxMilli {
		return 0, fmt.Errorf("%w: %d m°C out of range", ErrSensorFault, milli)
	}
	return milliToScaled(milli), nil
}

// parseW1Slave extracts t= (milli-degrees) from the two-line w1_slave text:
//
//	72 01 4b 46 7f ff 0e 10 57 : crc=57 YES
//	72 01 4b 46 7f ff 0e 10 57 t=23125
func parseW1Slave(data []byte, checkCRC bool) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	var lines []string
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return 0, fmt.Errorf("%w: short w1_slave output", ErrSensorFault)
	}

	if checkCRC && !strings.HasSuffix(lines[0], "YES") {
		return 0, fmt.Errorf("%w: crc mismatch", ErrSensorFault)
	}

	i := strings.LastIndex(lines[1], "t=")
	if i < 0 {
		return 0, fmt.Errorf("%w: no temperature in w1_slave", ErrSensorFault)
	}
	milli, err := strconv.Atoi(lines[1][i+2:])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSensorFault, err)
	}
	return milli, nil
}

// milliToScaled converts milli-degrees to 1/16 degree, rounding half away
// from zero.
func milliToScaled(milli int) int16 {
	v := milli * 16
	if v < 0 {
		return int16((v - 500) / 1000)
	}
	return int16((v + 500) / 1000)
}
