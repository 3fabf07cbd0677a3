package modem

import (
	"context"
	"testing"

	"github.com/vk2mod/fskmodem/internal/audio"
)

func TestTransmitterSendAppendsFlushTail(t *testing.T) {
	cfg := FromMode(Modes["1200"], 48000)
	sink := audio.NewBenchSink(cfg.SampleRate)
	tx := NewTransmitter(cfg, sink)

	if err := tx.Send(context.Background(), []byte("A")); err != nil {
		t.Fatal(err)
	}

	samplesPerBit := cfg.SamplesPerBit()
	frameBits := cfg.NStartBits + cfg.NDataBits + int(cfg.NStopBits+0.5)
	wantFrameSamples := int(samplesPerBit+0.5) * frameBits
	wantTailSamples := int(cfg.SampleRate * 0.5)

	if len(sink.Samples) != wantFrameSamples+wantTailSamples {
		t.Errorf("total samples = %d, want %d (frame) + %d (tail)", len(sink.Samples), wantFrameSamples, wantTailSamples)
	}

	tail := sink.Samples[wantFrameSamples:]
	for i, s := range tail {
		if s != 0 {
			t.Fatalf("tail sample %d = %v, want 0", i, s)
			break
		}
	}
}
