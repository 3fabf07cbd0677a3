package decode

import "testing"

func TestBaudotUnshiftOnSpace(t *testing.T) {
	b := NewBaudot()
	b.shift = charsetFigures
	out := b.Decode(5, baudotSpace)
	if string(out) != " " {
		t.Fatalf("space emitted %q, want \" \"", out)
	}
	if b.shift != charsetLetters {
		t.Errorf("shift after SPACE = %v, want Letters", b.shift)
	}
}

func TestBaudotLTRSFIGSSilent(t *testing.T) {
	b := NewBaudot()
	if out := b.Decode(5, baudotFIGS); out != nil {
		t.Errorf("FIGS emitted %q, want nil", out)
	}
	if b.shift != charsetFigures {
		t.Errorf("shift after FIGS = %v, want Figures", b.shift)
	}
	if out := b.Decode(5, baudotLTRS); out != nil {
		t.Errorf("LTRS emitted %q, want nil", out)
	}
	if b.shift != charsetLetters {
		t.Errorf("shift after LTRS = %v, want Letters", b.shift)
	}
}

func TestBaudotDecodesABSpace12(t *testing.T) {
	b := NewBaudot()
	var out []byte
	seq := []uint32{baudotLTRS, 0x03, 0x19, baudotSpace, baudotFIGS, 0x17, 0x13}
	for _, code := range seq {
		out = append(out, b.Decode(5, code)...)
	}
	if string(out) != "AB 12" {
		t.Errorf("decoded %q, want %q", out, "AB 12")
	}
}

func TestBaudotResetRestoresLetters(t *testing.T) {
	b := NewBaudot()
	b.Decode(5, baudotFIGS)
	b.Reset()
	if b.shift != charsetLetters {
		t.Errorf("shift after Reset = %v, want Letters", b.shift)
	}
}
