package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []Sample{
		{Minus: true, Plus: false},
		{Minus: false, Plus: true},
		{Minus: true, Plus: true},
	}

	f := NewFakeReader(samples)

	for i, want := range append(samples, samples[2]) {
		minus, plus, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if minus != want.Minus || plus != want.Plus {
			t.Errorf("sample %d: expected (%v, %v), got (%v, %v)", i, want.Minus, want.Plus, minus, plus)
		}
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]Sample{{Minus: true}})
	f.ReadError = errors.New("simulated error")

	_, _, err := f.Read()
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderCloseAndReset(t *testing.T) {
	f := NewFakeReader([]Sample{{Minus: true}, {Plus: true}})

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Read()
	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	minus, plus, _ := f.Read()
	if !minus || plus {
		t.Errorf("after reset: expected (true, false), got (%v, %v)", minus, plus)
	}
}

func TestFakeBank(t *testing.T) {
	b := NewFakeBank(3)

	if err := b.SetValues([]int{1, 0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.SetValues([]int{0, 0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := b.Values; got[0] != 0 || got[1] != 0 || got[2] != 1 {
		t.Errorf("Values = %v, want [0 0 1]", got)
	}
	if len(b.History) != 2 {
		t.Errorf("History has %d entries, want 2", len(b.History))
	}
	if b.History[0][0] != 1 {
		t.Error("History must hold copies, not the caller's slice")
	}

	if err := b.SetValues([]int{1}); err == nil {
		t.Error("expected width mismatch error")
	}

	b.SetError = errors.New("line busy")
	if err := b.SetValues([]int{1, 1, 1}); err == nil {
		t.Error("expected SetError to be returned")
	}
}
