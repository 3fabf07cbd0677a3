package modem

import (
	"io"
	"testing"
)

func TestMinCapacity(t *testing.T) {
	if got := MinCapacity(40, 10); got != 40*11 {
		t.Errorf("MinCapacity(40,10) = %d, want %d", got, 40*11)
	}
	if got := MinCapacity(40.4, 10); got != 41*11 {
		t.Errorf("MinCapacity(40.4,10) = %d, want %d (ceil)", got, 41*11)
	}
}

func TestSampleBufferFillAndAdvance(t *testing.T) {
	b := NewSampleBuffer(10)
	if b.Capacity() < 20 {
		t.Fatalf("capacity = %d, want at least doubled (>=20)", b.Capacity())
	}

	source := []float64{1, 2, 3, 4, 5}
	idx := 0
	read := func(dst []float64) (int, error) {
		n := copy(dst, source[idx:])
		idx += n
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}

	n, err := b.Fill(read)
	if err != nil || n != 5 {
		t.Fatalf("Fill = (%d, %v), want (5, nil)", n, err)
	}
	if b.Valid() != 5 {
		t.Fatalf("Valid() = %d, want 5", b.Valid())
	}

	b.Advance(2)
	if b.Valid() != 3 {
		t.Fatalf("Valid() after Advance(2) = %d, want 3", b.Valid())
	}
	if got := b.Samples(); got[0] != 3 {
		t.Errorf("Samples()[0] = %v, want 3", got[0])
	}

	b.Advance(b.Capacity())
	if b.Valid() != 0 {
		t.Errorf("Valid() after full-capacity Advance = %d, want 0", b.Valid())
	}
}

func TestSampleBufferAdvanceClampsToValid(t *testing.T) {
	b := NewSampleBuffer(5)
	b.valid = 2
	b.Advance(5) // past valid (2) but below capacity (10): clamps to valid
	if b.Valid() != 0 {
		t.Errorf("Valid() = %d, want 0", b.Valid())
	}
}
