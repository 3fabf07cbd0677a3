package dsp

import "testing"

func TestAnalyzeBitMarkSpace(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	samplesPerBit := int(p.SampleRate / 300)

	markSamples := tone(p.FMark, p.SampleRate, samplesPerBit)
	bit := p.AnalyzeBit(markSamples, samplesPerBit)
	if bit.Value != 1 {
		t.Errorf("mark tone classified as %d, want 1", bit.Value)
	}
	if bit.SignalMag <= bit.NoiseMag {
		t.Errorf("mark SignalMag=%v <= NoiseMag=%v", bit.SignalMag, bit.NoiseMag)
	}

	spaceSamples := tone(p.FSpace, p.SampleRate, samplesPerBit)
	bit = p.AnalyzeBit(spaceSamples, samplesPerBit)
	if bit.Value != 0 {
		t.Errorf("space tone classified as %d, want 0", bit.Value)
	}
	if bit.SignalMag <= bit.NoiseMag {
		t.Errorf("space SignalMag=%v <= NoiseMag=%v", bit.SignalMag, bit.NoiseMag)
	}
}

func TestAnalyzeBitVaryingWindowSize(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}

	for _, spb := range []int{160, 200, 120} {
		samples := tone(p.FMark, p.SampleRate, spb)
		bit := p.AnalyzeBit(samples, spb)
		if bit.Value != 1 {
			t.Errorf("samplesPerBit=%d: mark tone classified as %d, want 1", spb, bit.Value)
		}
	}
}

func TestAnalyzeBitPanicsOnOversizeWindow(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic when bitNSamples exceeds FFTSize")
		}
	}()
	samples := make([]float64, p.FFTSize+10)
	p.AnalyzeBit(samples, p.FFTSize+10)
}
