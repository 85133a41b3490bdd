package display

// Segment bit order: bit 0 = a, bit 1 = b ... bit 6 = g.
const segmentCount = 7

var segmentTable = [...]uint8{
	Glyph0:  0x3F,
	Glyph1:  0x06,
	Glyph2:  0x5B,
	Glyph3:  0x4F,
	Glyph4:  0x66,
	Glyph5:  0x6D,
	Glyph6:  0x7D,
	Glyph7:  0x07,
	Glyph8:  0x7F,
	Glyph9:  0x6F,
	Blank:   0x00,
	Minus:   0x40,
	LetterC: 0x39,
	LetterF: 0x71,
	LetterA: 0x77,
	LetterP: 0x73,
	Letterh: 0x74,
	LetterE: 0x79,
	Letterr: 0x50,
}

// Segments returns the lit segments of g.
func Segments(g Glyph) uint8 {
	if int(g) < len(segmentTable) {
		return segmentTable[g]
	}
	return 0
}
