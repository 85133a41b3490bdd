// Package thermo reads the DS18B20 temperature sensor.
// Readings are Celsius in fixed point with 4 fractional bits (1/16 °C),
// the sensor's native 12-bit format.
package thermo

import "errors"

// ErrSensorFault wraps every failed or implausible reading.
var ErrSensorFault = errors.New("sensor fault")

// Sensor is the temperature sensor contract.
type Sensor interface {
	ReadScaledCelsius() (int16, error)
}
