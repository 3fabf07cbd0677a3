package modem

import (
	"strings"
	"testing"
)

func TestLoadModesFileMergesAndOverrides(t *testing.T) {
	doc := `
modes:
  custom:
    baud: 100
    f_mark: 1000
    f_space: 2000
    bandwidth: 50
    start_bits: 1
    data_bits: 8
    stop_bits: 1
    decoder: ascii8
  "1200":
    baud: 1234
    f_mark: 1200
    f_space: 2200
    bandwidth: 200
    start_bits: 1
    data_bits: 8
    stop_bits: 1
    decoder: ascii8
`
	merged, err := LoadModesFile(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadModesFile: %v", err)
	}

	custom, ok := merged["custom"]
	if !ok {
		t.Fatal("expected custom mode to be present")
	}
	if custom.Baud != 100 || custom.Decoder != "ascii8" {
		t.Fatalf("custom mode not parsed correctly: %+v", custom)
	}

	overridden, ok := merged["1200"]
	if !ok || overridden.Baud != 1234 {
		t.Fatalf("expected built-in 1200 mode to be overridden, got %+v", overridden)
	}

	if _, ok := merged["rtty"]; !ok {
		t.Fatal("expected untouched built-in modes to survive the merge")
	}
}
