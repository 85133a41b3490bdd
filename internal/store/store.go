// Package store persists single-byte settings in numbered slots.
package store

import "context"

// Slots in use.
const (
	// SlotUnit holds the temperature unit: 0 = Celsius, 1 = Fahrenheit.
	SlotUnit = 0
)

// Erased is returned for a slot that was never written, like an erased
// EEPROM cell.
const Erased byte = 0xFF

// Store is the persistent byte storage contract.
type Store interface {
	ReadSlot(ctx context.Context, slot int) (byte, error)
	WriteSlot(ctx context.Context, slot int, value byte) error
}
