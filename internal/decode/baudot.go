package decode

// charset is the Baudot shift state: which of the two five-bit code tables
// is currently selected.
type charset int

const (
	charsetUnknown charset = iota
	charsetLetters
	charsetFigures
)

const (
	baudotLTRS  = 0x1F
	baudotFIGS  = 0x1B
	baudotSpace = 0x04
)

// ita2Letters and ita2Figures are the 32-entry US-TTY Baudot/ITA2 code
// tables. Index 0 is unused (NUL in both); LTRS/FIGS/SPACE entries are
// control codes handled specially by Baudot.Decode and never looked up
// here.
var ita2Letters = [32]byte{
	0x00, 'E', '\n', 'A', ' ', 'S', 'I', 'U',
	'\r', 'D', 'R', 'J', 'N', 'F', 'C', 'K',
	'T', 'Z', 'L', 'W', 'H', 'Y', 'P', 'Q',
	'O', 'B', 'G', 0x00, 'M', 'X', 'V', 0x00,
}

var ita2Figures = [32]byte{
	0x00, '3', '\n', '-', ' ', '*', '8', '7',
	'\r', '$', '4', '\'', ',', '!', ':', '(',
	'5', '"', ')', '2', '#', '6', '0', '1',
	'9', '?', '&', 0x00, '.', '/', ';', 0x00,
}

// Baudot decodes 5-bit RTTY/TDD words with LTRS/FIGS shift state and
// RX-unshift-on-space, per spec §4.6.
type Baudot struct {
	shift charset
}

func NewBaudot() *Baudot {
	return &Baudot{shift: charsetLetters}
}

func (b *Baudot) Decode(nbits int, bits uint32) []byte {
	code := bits & 0x1F

	switch code {
	case baudotLTRS:
		b.shift = charsetLetters
		return nil
	case baudotFIGS:
		b.shift = charsetFigures
		return nil
	case baudotSpace:
		b.shift = charsetLetters
		return []byte{' '}
	}

	var c byte
	if b.shift == charsetFigures {
		c = ita2Figures[code]
	} else {
		c = ita2Letters[code]
	}
	if c == 0x00 {
		return nil
	}
	return []byte{c}
}

func (b *Baudot) Reset() {
	b.shift = charsetLetters
}
