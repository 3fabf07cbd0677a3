package decode

import "testing"

func TestUIC751GroundToTrainMeaning(t *testing.T) {
	u := NewUIC751()
	// trainID = 0x123456, message byte (pre-reverse) must reverse to 0x00 ("Test").
	// Printed nibbles run low-to-high (bits 0-3 first), so 0x123456 reads as "654321".
	word := uint32(0x123456) | uint32(reverseBits8(0x00))<<24
	out := string(u.Decode(39, word))
	want := "Train ID: 654321 - Message: 00 (Test)\n"
	if out != want {
		t.Errorf("Decode = %q, want %q", out, want)
	}
}

func TestUIC751UnknownMeaning(t *testing.T) {
	u := NewUIC751()
	word := uint32(0x000000) | uint32(reverseBits8(0xFE))<<24
	out := string(u.Decode(39, word))
	if out != "Train ID: 000000 - Message: FE (Unknown)\n" {
		t.Errorf("Decode = %q", out)
	}
}

func TestReverseBits8(t *testing.T) {
	if got := reverseBits8(0b10000000); got != 0b00000001 {
		t.Errorf("reverseBits8(0x80) = %#02x, want 0x01", got)
	}
	if got := reverseBits8(0b11110010); got != 0b01001111 {
		t.Errorf("reverseBits8(0xF2) = %#02x, want 0x4F", got)
	}
}
