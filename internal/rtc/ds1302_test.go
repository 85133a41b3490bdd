package rtc

import (
	"errors"
	"testing"

	"github.com/sweeney/thermo-clock/internal/clock"
)

func TestBCDConversion(t *testing.T) {
	tests := []struct {
		dec int
		bcd uint8
	}{
		{0, 0x00},
		{9, 0x09},
		{10, 0x10},
		{23, 0x23},
		{59, 0x59},
		{99, 0x99},
	}
	for _, tt := range tests {
		if got := decToBcd(tt.dec); got != tt.bcd {
			t.Errorf("decToBcd(%d) = %#x, want %#x", tt.dec, got, tt.bcd)
		}
		if got := bcdToDec(tt.bcd); got != tt.dec {
			t.Errorf("bcdToDec(%#x) = %d, want %d", tt.bcd, got, tt.dec)
		}
	}
}

func TestDecode24h(t *testing.T) {
	regs := [burstLen]byte{0x45, 0x30, 0x21, 0x15, 0x06, 0x03, 0x26, 0x80}
	got := decode(regs)
	want := clock.DateTime{Year: 26, Month: 6, Day: 15, Weekday: 3, Hours: 21, Minutes: 30, Seconds: 45, Format: clock.H24}
	if got != want {
		t.Errorf("decode = %+v, want %+v", got, want)
	}
}

func TestDecode12hIgnoresClockHalt(t *testing.T) {
	regs := [burstLen]byte{0x80 | 0x07, 0x05, 0x80 | 0x20 | 0x11, 0x01, 0x12, 0x07, 0x99, 0}
	got := decode(regs)
	want := clock.DateTime{Year: 99, Month: 12, Day: 1, Weekday: 7, Hours: 11, Minutes: 5, Seconds: 7, Format: clock.H12, PM: true}
	if got != want {
		t.Errorf("decode = %+v, want %+v", got, want)
	}
}

func TestEncode(t *testing.T) {
	dt := clock.DateTime{Year: 26, Month: 10, Day: 19, Weekday: 1, Hours: 9, Minutes: 41, Seconds: 0, Format: clock.H12, PM: true}
	got := encode(dt)
	want := [burstLen]byte{0x00, 0x41, 0x80 | 0x20 | 0x09, 0x19, 0x10, 0x01, 0x26, 0x00}
	if got != want {
		t.Errorf("encode = % x, want % x", got, want)
	}

	for _, dt := range []clock.DateTime{
		clock.Default(),
		{Year: 5, Month: 2, Day: 28, Weekday: 6, Hours: 23, Minutes: 59, Seconds: 59},
		{Year: 5, Month: 2, Day: 28, Weekday: 6, Hours: 12, Minutes: 0, Seconds: 1, Format: clock.H12},
	} {
		if back := decode(encode(dt)); back != dt {
			t.Errorf("round trip %+v -> %+v", dt, back)
		}
	}
}

func TestDS1302WriteThenRead(t *testing.T) {
	sim := newChipSim()
	d := NewDS1302(sim)

	if err := d.SetWriteProtection(false); err != nil {
		t.Fatalf("SetWriteProtection: %v", err)
	}
	dt := clock.DateTime{Year: 26, Month: 10, Day: 19, Weekday: 1, Hours: 12, Minutes: 0, Seconds: 0, Format: clock.H24}
	if err := d.Write(dt); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := d.SetWriteProtection(true); err != nil {
		t.Fatalf("SetWriteProtection: %v", err)
	}

	if sim.regs[2] != 0x12 || sim.regs[1] != 0x00 || sim.regs[3] != 0x19 {
		t.Errorf("unexpected registers % x", sim.regs)
	}
	if sim.regs[7] != bitWriteProtect {
		t.Errorf("control = %#x, want WP set", sim.regs[7])
	}

	got, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != dt {
		t.Errorf("Read = %+v, want %+v", got, dt)
	}
	if !sim.ioOut {
		t.Error("IO should be returned to output after a read")
	}
	if sim.ce {
		t.Error("CE should be low after a transfer")
	}
}

func TestDS1302RefusesWriteWhileProtected(t *testing.T) {
	sim := newChipSim()
	d := NewDS1302(sim)

	err := d.Write(clock.Default())
	if !errors.Is(err, ErrWriteProtected) {
		t.Fatalf("expected ErrWriteProtected, got %v", err)
	}
	if sim.transfers != 0 {
		t.Errorf("expected no bus traffic, got %d transfers", sim.transfers)
	}
}

func TestDS1302RejectsInvalidDateTime(t *testing.T) {
	d := NewDS1302(newChipSim())
	d.protected = false

	dt := clock.Default()
	dt.Month = 13
	if err := d.Write(dt); !errors.Is(err, clock.ErrInvalidDateTime) {
		t.Fatalf("expected ErrInvalidDateTime, got %v", err)
	}
}

func TestDS1302ConfigureClearsClockHalt(t *testing.T) {
	sim := newChipSim()
	sim.regs[0] = bitClockHalt | 0x42
	sim.regs[7] = bitWriteProtect
	d := NewDS1302(sim)

	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if sim.regs[0] != 0x42 {
		t.Errorf("seconds = %#x, want 0x42 with CH cleared", sim.regs[0])
	}
	if sim.regs[7] != bitWriteProtect {
		t.Error("write protection should be restored")
	}
	if !d.protected {
		t.Error("driver should mirror the restored protection")
	}
}

func TestDS1302ConfigureLeavesRunningClock(t *testing.T) {
	sim := newChipSim()
	sim.regs[0] = 0x10
	d := NewDS1302(sim)

	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if d.protected {
		t.Error("WP clear on the chip should be mirrored")
	}
	if sim.writeCount != 0 {
		t.Errorf("expected no register writes, got %d", sim.writeCount)
	}
}

func TestDS1302ReadError(t *testing.T) {
	sim := newChipSim()
	sim.failRead = true
	d := NewDS1302(sim)

	if _, err := d.Read(); err == nil {
		t.Fatal("expected error")
	}
	if sim.ce {
		t.Error("CE should be released after a failed transfer")
	}
}

func TestDS1302Range(t *testing.T) {
	d := NewDS1302(newChipSim())
	if min, max := d.Range(clock.Hours, clock.H12); min != 1 || max != 12 {
		t.Errorf("Range(hours, 12h) = %d..%d", min, max)
	}
	if min, max := d.Range(clock.Day, clock.H24); min != 1 || max != 30 {
		t.Errorf("Range(day) = %d..%d", min, max)
	}
}
