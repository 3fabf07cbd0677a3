package modem

import "testing"

func TestModesTableCompleteness(t *testing.T) {
	want := []string{"1200", "300", "rtty", "tdd", "same", "callerid", "uic-train", "uic-ground"}
	for _, name := range want {
		m, ok := Modes[name]
		if !ok {
			t.Errorf("missing mode %q", name)
			continue
		}
		if m.Decoder == "" {
			t.Errorf("mode %q has no decoder", name)
		}
		if m.FMark == m.FSpace {
			t.Errorf("mode %q has FMark == FSpace", name)
		}
	}
}

func TestConfigExpectNBits(t *testing.T) {
	cfg := FromMode(Modes["1200"], 48000)
	if got := cfg.ExpectNBits(); got != 11 { // 1 prev-stop + 1 start + 8 data + 1 stop
		t.Errorf("ExpectNBits() = %d, want 11", got)
	}

	rtty := FromMode(Modes["rtty"], 48000)
	if got := rtty.ExpectNBits(); got != 9 { // 1 + 1 + 5 + round(1.5)=2
		t.Errorf("rtty ExpectNBits() = %d, want 9", got)
	}
}

func TestBuildPatternsSyncByte(t *testing.T) {
	cfg := FromMode(Modes["same"], 48000)
	data, sync := buildPatterns(cfg)
	if len(data) != cfg.ExpectNBits() {
		t.Fatalf("data pattern length = %d, want %d", len(data), cfg.ExpectNBits())
	}
	if sync == "" {
		t.Fatal("expected non-empty sync pattern for same mode")
	}
	if len(sync) != len(data) {
		t.Fatalf("sync pattern length = %d, want %d", len(sync), len(data))
	}
}
