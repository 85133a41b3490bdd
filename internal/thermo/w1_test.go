package thermo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleOK = "72 01 4b 46 7f ff 0e 10 57 : crc=57 YES\n72 01 4b 46 7f ff 0e 10 57 t=23125\n"

// writeSlave creates BaseDir/<id>/w1_slave with content.
func writeSlave(t *testing.T, base, id, content string) string {
	t.Helper()
	dir := filepath.Join(base, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "w1_slave"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseW1Slave(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		checkCRC bool
		want     int
		wantErr  bool
	}{
		{"valid", sampleOK, true, 23125, false},
		{"negative", "ff ff : crc=aa YES\nff ff t=-10125\n", true, -10125, false},
		{"crc failure", "72 01 : crc=00 NO\n72 01 t=23125\n", true, 0, true},
		{"crc failure ignored", "72 01 : crc=00 NO\n72 01 t=23125\n", false, 23125, false},
		{"missing t", "72 01 : crc=57 YES\n72 01 4b 46\n", true, 0, true},
		{"garbled t", "72 01 : crc=57 YES\n72 01 t=2x\n", true, 0, true},
		{"short", "72 01 : crc=57 YES\n", true, 0, true},
		{"empty", "", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseW1Slave([]byte(tt.data), tt.checkCRC)
			if tt.wantErr {
				if !errors.Is(err, ErrSensorFault) {
					t.Fatalf("expected ErrSensorFault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMilliToScaled(t *testing.T) {
	tests := []struct {
		milli int
		want  int16
	}{
		{23125, 370},
		{15625, 250},
		{0, 0},
		{500, 8},
		{-10125, -162},
		{-55000, -880},
		{125000, 2000},
		{31, 0},
		{32, 1},
	}
	for _, tt := range tests {
		if got := milliToScaled(tt.milli); got != tt.want {
			t.Errorf("milliToScaled(%d) = %d, want %d", tt.milli, got, tt.want)
		}
	}
}

func TestW1SensorDiscoversFirstSlave(t *testing.T) {
	base := t.TempDir()
	dir := writeSlave(t, base, "28-000005e2fdc3", sampleOK)
	writeSlave(t, base, "10-000000000001", sampleOK)

	s, err := NewW1Sensor(W1Config{BaseDir: base, CheckCRC: true})
	if err != nil {
		t.Fatalf("NewW1Sensor: %v", err)
	}
	if s.Device() != dir {
		t.Errorf("Device = %s, want %s", s.Device(), dir)
	}

	v, err := s.ReadScaledCelsius()
	if err != nil {
		t.Fatalf("ReadScaledCelsius: %v", err)
	}
	if v != 370 {
		t.Errorf("got %d, want 370", v)
	}
}

func TestW1SensorMissingDevice(t *testing.T) {
	if _, err := NewW1Sensor(W1Config{BaseDir: t.TempDir()}); err == nil {
		t.Error("expected error with no slaves")
	}
	if _, err := NewW1Sensor(W1Config{BaseDir: t.TempDir(), Device: "28-missing"}); err == nil {
		t.Error("expected error for a missing named slave")
	}
}

func TestW1SensorPowerOnValue(t *testing.T) {
	base := t.TempDir()
	writeSlave(t, base, "28-1", "50 05 : crc=aa YES\n50 05 t=85000\n")

	s, err := NewW1Sensor(W1Config{BaseDir: base, Device: "28-1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadScaledCelsius(); !errors.Is(err, ErrSensorFault) {
		t.Errorf("expected ErrSensorFault for 85 °C, got %v", err)
	}

	s.cfg.AllowPowerOnValue = true
	v, err := s.ReadScaledCelsius()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1360 {
		t.Errorf("got %d, want 1360", v)
	}
}

func TestW1SensorRejectsOverflow(t *testing.T) {
	for _, line := range []string{"t=4100000", "t=-4100000", "t=200001"} {
		base := t.TempDir()
		writeSlave(t, base, "28-1", "50 05 : crc=aa YES\n50 05 "+line+"\n")

		s, err := NewW1Sensor(W1Config{BaseDir: base, Device: "28-1"})
		if err != nil {
			t.Fatal(err)
		}
		if v, err := s.ReadScaledCelsius(); !errors.Is(err, ErrSensorFault) {
			t.Errorf("%s: got %d, %v; want ErrSensorFault", line, v, err)
		}
	}

	base := t.TempDir()
	writeSlave(t, base, "28-1", "50 05 : crc=aa YES\n50 05 t=-55000\n")
	s, err := NewW1Sensor(W1Config{BaseDir: base, Device: "28-1"})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := s.ReadScaledCelsius(); err != nil || v != -880 {
		t.Errorf("got %d, %v; want -880", v, err)
	}
}

func TestW1SensorReadFailure(t *testing.T) {
	base := t.TempDir()
	dir := writeSlave(t, base, "28-1", sampleOK)
	s, err := NewW1Sensor(W1Config{BaseDir: base})
	if err != nil {
		t.Fatal(err)
	}

	os.Remove(filepath.Join(dir, "w1_slave"))
	if _, err := s.ReadScaledCelsius(); !errors.Is(err, ErrSensorFault) {
		t.Errorf("expected ErrSensorFault, got %v", err)
	}
}

func TestW1SensorConfigure(t *testing.T) {
	base := t.TempDir()
	dir := writeSlave(t, base, "28-1", sampleOK)

	s, err := NewW1Sensor(W1Config{BaseDir: base, Resolution: 9})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "resolution"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "9" {
		t.Errorf("resolution = %q, want 9", got)
	}

	s.cfg.Resolution = 14
	if err := s.Configure(); err == nil {
		t.Error("expected error for 14-bit resolution")
	}

	s.cfg.Resolution = 0
	if err := s.Configure(); err != nil {
		t.Errorf("zero resolution should be a no-op, got %v", err)
	}
}

func TestFakeSensor(t *testing.T) {
	f := NewFake(250, -16)

	for _, want := range []int16{250, -16, -16} {
		got, err := f.ReadScaledCelsius()
		if err != nil || got != want {
			t.Errorf("got (%d, %v), want %d", got, err, want)
		}
	}

	f.ReadError = errors.New("bus reset")
	if _, err := f.ReadScaledCelsius(); !errors.Is(err, ErrSensorFault) {
		t.Errorf("expected ErrSensorFault, got %v", err)
	}
	if f.Reads != 4 {
		t.Errorf("Reads = %d, want 4", f.Reads)
	}

	if _, err := NewFake().ReadScaledCelsius(); !errors.Is(err, ErrSensorFault) {
		t.Errorf("expected ErrSensorFault with no readings, got %v", err)
	}
}
