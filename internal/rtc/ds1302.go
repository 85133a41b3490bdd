package rtc

import (
	"fmt"

	"github.com/sweeney/thermo-clock/internal/clock"
	"github.com/sweeney/thermo-clock/internal/gpio"
)

// DS1302 command bytes. Bit 0 selects read, bits 1–5 the register.
const (
	cmdSecondsWrite = 0x80
	cmdSecondsRead  = 0x81
	cmdControlWrite = 0x8E
	cmdControlRead  = 0x8F
	cmdBurstWrite   = 0xBE
	cmdBurstRead    = 0xBF
)

// Register bits.
const (
	bitClockHalt    = 0x80 // seconds register
	bitHour12       = 0x80 // hours register
	bitPM           = 0x20 // hours register, 12h mode
	bitWriteProtect = 0x80 // control register
)

// burstLen is the clock burst size: seven time registers plus control.
const burstLen = 8

// DS1302 is a trickle-charge timekeeping chip on a 3-wire serial bus.
// Data is sent least significant bit first.
type DS1302 struct {
	bus       gpio.ThreeWire
	protected bool
}

// NewDS1302 creates a driver. Call Configure before use.
func NewDS1302(bus gpio.ThreeWire) *DS1302 {
	return &DS1302{bus: bus, protected: true}
}

// Configure reads the write-protect state and restarts the oscillator if
// the clock-halt flag is set, as it is on a chip that lost backup power.
func (d *DS1302) Configure() error {
	ctl, err := d.readRegister(cmdControlRead)
	if err != nil {
		return fmt.Errorf("read control register: %w", err)
	}
	d.protected = ctl&bitWriteProtect != 0

	sec, err := d.readRegister(cmdSecondsRead)
	if err != nil {
		return fmt.Errorf("read seconds register: %w", err)
	}
	if sec&bitClockHalt == 0 {
		return nil
	}

	wasProtected := d.protected
	if wasProtected {
		if err := d.SetWriteProtection(false); err != nil {
			return err
		}
	}
	if err := d.transfer(cmdSecondsWrite, []byte{sec &^ bitClockHalt}, nil); err != nil {
		return fmt.Errorf("clear clock halt: %w", err)
	}
	if wasProtected {
		return d.SetWriteProtection(true)
	}
	return nil
}

// Read returns the current time with a single burst so the fields are
// consistent with each other.
func (d *DS1302) Read() (clock.DateTime, error) {
	var regs [burstLen]byte
	if err := d.transfer(cmdBurstRead, nil, regs[:]); err != nil {
		return clock.DateTime{}, fmt.Errorf("burst read: %w", err)
	}
	return decode(regs), nil
}

// Write sets the time with a single burst. Seconds restart from dt.Seconds
// and the oscillator is left running.
func (d *DS1302) Write(dt clock.DateTime) error {
	if d.protected {
		return ErrWriteProtected
	}
	if err := dt.Validate(); err != nil {
		return err
	}
	regs := encode(dt)
	if err := d.transfer(cmdBurstWrite, regs[:], nil); err != nil {
		return fmt.Errorf("burst write: %w", err)
	}
	return nil
}

// SetWriteProtection sets the WP bit of the control register.
func (d *DS1302) SetWriteProtection(on bool) error {
	var ctl byte
	if on {
		ctl = bitWriteProtect
	}
	if err := d.transfer(cmdControlWrite, []byte{ctl}, nil); err != nil {
		return fmt.Errorf("write control register: %w", err)
	}
	d.protected = on
	return nil
}

// Range returns the field limits used for editing.
func (d *DS1302) Range(field clock.Field, format clock.HourFormat) (int, int) {
	return clock.Limits(field, format)
}

func (d *DS1302) readRegister(cmd byte) (byte, error) {
	var b [1]byte
	err := d.transfer(cmd, nil, b[:])
	return b[0], err
}

// transfer runs one CE-framed transaction: the command byte, then either
// out is written or in is filled.
func (d *DS1302) transfer(cmd byte, out, in []byte) (err error) {
	if err := d.bus.SetIOOutput(true); err != nil {
		return err
	}
	if err := d.bus.SetClock(false); err != nil {
		return err
	}
	if err := d.bus.SetCE(true); err != nil {
		return err
	}
	defer func() {
		if cerr := d.bus.SetCE(false); err == nil {
			err = cerr
		}
	}()

	if err := d.writeByte(cmd); err != nil {
		return err
	}
	for _, b := range out {
		if err := d.writeByte(b); err != nil {
			return err
		}
	}
	if len(in) == 0 {
		return nil
	}

	// The chip drives the first data bit after the falling edge of the
	// last command clock.
	if err := d.bus.SetIOOutput(false); err != nil {
		return err
	}
	for i := range in {
		if in[i], err = d.readByte(); err != nil {
			return err
		}
	}
	return d.bus.SetIOOutput(true)
}

// writeByte shifts b out LSB first; the chip samples IO on the rising edge.
func (d *DS1302) writeByte(b byte) error {
	for i := 0; i < 8; i++ {
		if err := d.bus.SetIO(b&1 != 0); err != nil {
			return err
		}
		if err := d.pulse(); err != nil {
			return err
		}
		b >>= 1
	}
	return nil
}

// readByte samples IO then clocks the chip on to the next bit.
func (d *DS1302) readByte() (byte, error) {
	var b byte
	for i := 0; i < 8; i++ {
		v, err := d.bus.ReadIO()
		if err != nil {
			return 0, err
		}
		if v {
			b |= 1 << i
		}
		if err := d.pulse(); err != nil {
			return 0, err
		}
	}
	return b, nil
}

func (d *DS1302) pulse() error {
	if err := d.bus.SetClock(true); err != nil {
		return err
	}
	return d.bus.SetClock(false)
}

func decode(r [burstLen]byte) clock.DateTime {
	dt := clock.DateTime{
		Seconds: uint8(bcdToDec(r[0] &^ bitClockHalt)),
		Minutes: uint8(bcdToDec(r[1] & 0x7F)),
		Day:     uint8(bcdToDec(r[3] & 0x3F)),
		Month:   uint8(bcdToDec(r[4] & 0x1F)),
		Weekday: r[5] & 0x07,
		Year:    uint8(bcdToDec(r[6])),
	}
	if r[2]&bitHour12 != 0 {
		dt.Format = clock.H12
		dt.PM = r[2]&bitPM != 0
		dt.Hours = uint8(bcdToDec(r[2] & 0x1F))
	} else {
		dt.Format = clock.H24
		dt.Hours = uint8(bcdToDec(r[2] & 0x3F))
	}
	return dt
}

func encode(dt clock.DateTime) [burstLen]byte {
	hours := decToBcd(int(dt.Hours))
	if dt.Format == clock.H12 {
		hours |= bitHour12
		if dt.PM {
			hours |= bitPM
		}
	}
	return [burstLen]byte{
		decToBcd(int(dt.Seconds)), // clock halt clear
		decToBcd(int(dt.Minutes)),
		hours,
		decToBcd(int(dt.Day)),
		decToBcd(int(dt.Month)),
		dt.Weekday,
		decToBcd(int(dt.Year)),
		0, // control: write protect stays off until SetWriteProtection
	}
}

// decToBcd converts int to BCD
func decToBcd(dec int) uint8 {
	return uint8(dec + 6*(dec/10))
}

// bcdToDec converts BCD to int
func bcdToDec(bcd uint8) int {
	return int(bcd - 6*(bcd>>4))
}
