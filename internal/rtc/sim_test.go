package rtc

import "errors"

// chipSim models the DS1302 side of the 3-wire bus closely enough to
// exercise the driver's bit ordering and burst handling.
type chipSim struct {
	regs [burstLen]byte // seconds..year, control

	ce, clk    bool
	ioOut      bool // master drives IO
	ioLevel    bool // level driven by the master
	transfers  int
	writeCount int

	phase    simPhase
	shift    byte
	bits     int
	addr     int
	burst    bool
	stream   []byte
	readPos  int
	failRead bool
}

type simPhase int

const (
	simIdle simPhase = iota
	simCommand
	simWrite
	simReadPending
	simRead
)

func newChipSim() *chipSim {
	return &chipSim{ioOut: true}
}

func (s *chipSim) SetCE(high bool) error {
	if high && !s.ce {
		s.phase = simCommand
		s.shift, s.bits = 0, 0
		s.transfers++
	}
	if !high {
		s.phase = simIdle
	}
	s.ce = high
	return nil
}

func (s *chipSim) SetClock(high bool) error {
	rising := high && !s.clk
	falling := !high && s.clk
	s.clk = high
	if !s.ce {
		return nil
	}

	switch {
	case rising && (s.phase == simCommand || s.phase == simWrite):
		if s.ioLevel {
			s.shift |= 1 << s.bits
		}
		s.bits++
		if s.bits == 8 {
			s.byteIn(s.shift)
			s.shift, s.bits = 0, 0
		}
	case falling && s.phase == simReadPending:
		s.phase = simRead
		s.readPos = 0
	case falling && s.phase == simRead:
		s.readPos++
	}
	return nil
}

func (s *chipSim) byteIn(b byte) {
	if s.phase == simCommand {
		s.addr = int(b>>1) & 0x1F
		s.burst = s.addr == 31
		if s.burst {
			s.addr = 0
		}
		if b&1 == 1 {
			s.phase = simReadPending
			if s.burst {
				s.stream = append([]byte(nil), s.regs[:]...)
			} else {
				s.stream = []byte{s.regs[s.addr]}
			}
			return
		}
		s.phase = simWrite
		return
	}

	// Data byte. With WP set only the control register accepts writes.
	if s.addr < burstLen && (s.regs[7]&bitWriteProtect == 0 || s.addr == 7) {
		s.regs[s.addr] = b
		s.writeCount++
	}
	if s.burst {
		s.addr++
	}
}

func (s *chipSim) SetIO(high bool) error {
	if !s.ioOut {
		return errors.New("sim: IO is an input")
	}
	s.ioLevel = high
	return nil
}

func (s *chipSim) ReadIO() (bool, error) {
	if s.ioOut {
		return false, errors.New("sim: IO is an output")
	}
	if s.failRead {
		return false, errors.New("sim: read failure")
	}
	if s.phase != simRead {
		return false, nil
	}
	i := s.readPos / 8
	if i >= len(s.stream) {
		return false, nil
	}
	return s.stream[i]&(1<<(s.readPos%8)) != 0, nil
}

func (s *chipSim) SetIOOutput(output bool) error {
	s.ioOut = output
	return nil
}

func (s *chipSim) Close() error { return nil }
