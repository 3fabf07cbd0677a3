package modem

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/vk2mod/fskmodem/internal/audio"
	"github.com/vk2mod/fskmodem/internal/decode"
)

func tone(f, sr float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * f * float64(i) / sr)
	}
	return out
}

// renderByte renders one async frame (start + 8 data bits LSB-first + stop)
// plus the given number of trailing idle (mark) bit periods.
func renderFrame(sampleRate, fMark, fSpace, samplesPerBit float64, dataBits []int, trailingIdleBits int) []float64 {
	spb := int(math.Round(samplesPerBit))
	var out []float64
	bit := func(v int) {
		f := fSpace
		if v == 1 {
			f = fMark
		}
		out = append(out, tone(f, sampleRate, spb)...)
	}
	bit(0) // start
	for _, v := range dataBits {
		bit(v)
	}
	bit(1) // stop
	for i := 0; i < trailingIdleBits; i++ {
		bit(1)
	}
	return out
}

func TestReceiverDecodesSingleByte(t *testing.T) {
	const sampleRate = 48000
	cfg := FromMode(Modes["1200"], sampleRate)

	// Leading idle line, then 'A' = 0x41 = 0b01000001, LSB-first: 1,0,0,0,0,0,1,0
	samplesPerBit := cfg.SamplesPerBit()
	idle := make([]float64, 0)
	for i := 0; i < 10; i++ {
		idle = append(idle, tone(cfg.FMark, sampleRate, int(math.Round(samplesPerBit)))...)
	}
	frame := renderFrame(sampleRate, cfg.FMark, cfg.FSpace, samplesPerBit, []int{1, 0, 0, 0, 0, 0, 1, 0}, 20)

	samples := append(idle, frame...)
	src := audio.NewBenchSource(sampleRate, samples)

	var events, out bytes.Buffer
	dec, err := decode.NewRegistry().Create(cfg.DecoderName)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReceiver(cfg, src, dec, &events, &out)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte{'A'}) {
		t.Errorf("decoded output = %q, want it to contain 'A'", out.String())
	}
	if !strings.Contains(events.String(), "CARRIER") {
		t.Errorf("events = %q, want a CARRIER report", events.String())
	}
}
