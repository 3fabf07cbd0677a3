package dsp

import "testing"

func TestFindFrameLocatesOffsetFrame(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	const samplesPerBit = 160
	const pattern = "0dddddddd1"
	frameNSamples := samplesPerBit * len(pattern)

	bits := []int{0, 1, 0, 0, 0, 0, 0, 1, 0, 1}
	silence := make([]float64, 500)
	frame := p.bitstream(bits, samplesPerBit)
	samples := append(append([]float64{}, silence...), frame...)

	// maxNSamples is exclusive, so +1 keeps the true offset (500) in range.
	res := p.FindFrame(samples, frameNSamples, 0, len(samples)-frameNSamples+1, 20, 1e9, pattern)
	if res.Confidence <= 0 {
		t.Fatalf("FindFrame failed to locate frame, confidence=%v", res.Confidence)
	}
	if diff := res.StartOffset - 500; diff < -30 || diff > 30 {
		t.Errorf("StartOffset = %d, want close to 500", res.StartOffset)
	}
}

func TestDetectCarrierFindsStrongestBand(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	samples := tone(p.FMark, p.SampleRate, p.FFTSize)

	band, ok := p.DetectCarrier(samples, p.FFTSize, 0.01)
	if !ok {
		t.Fatal("expected carrier to be detected")
	}
	if band != p.BMark {
		t.Errorf("detected band = %d, want %d (mark band)", band, p.BMark)
	}
}

func TestDetectCarrierNoSignal(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]float64, p.FFTSize)

	_, ok := p.DetectCarrier(samples, p.FFTSize, 0.01)
	if ok {
		t.Error("expected no carrier detected in silence")
	}
}
