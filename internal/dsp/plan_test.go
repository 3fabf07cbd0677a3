package dsp

import (
	"math"
	"testing"
)

func TestNewPlanBandInvariants(t *testing.T) {
	tests := []struct {
		name                     string
		sampleRate, fm, fs, bw   float64
		wantErr                  bool
	}{
		{"bell202", 48000, 1200, 2200, 200, false},
		{"bell103", 48000, 1270, 1070, 50, false},
		{"rtty", 48000, 1585, 1415, 10, false},
		{"mark equals space band", 48000, 1200, 1200, 200, true},
		{"space band out of range", 48000, 1200, 1e9, 200, true},
		{"zero band width", 48000, 1200, 2200, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(tt.sampleRate, tt.fm, tt.fs, tt.bw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPlan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if p.BMark < 1 || p.BMark >= p.NBands {
				t.Errorf("b_mark=%d out of [1,%d)", p.BMark, p.NBands)
			}
			if p.BSpace < 1 || p.BSpace >= p.NBands {
				t.Errorf("b_space=%d out of [1,%d)", p.BSpace, p.NBands)
			}
			if p.BMark == p.BSpace {
				t.Errorf("b_mark == b_space == %d", p.BMark)
			}
			wantFFTSize := int(math.Floor((tt.sampleRate+tt.bw/2)/tt.bw + 0.5))
			if p.FFTSize != wantFFTSize {
				t.Errorf("FFTSize = %d, want %d", p.FFTSize, wantFFTSize)
			}
			if p.NBands != p.FFTSize/2+1 {
				t.Errorf("NBands = %d, want %d", p.NBands, p.FFTSize/2+1)
			}
		})
	}
}

func TestSetTonesByBand(t *testing.T) {
	p, err := NewPlan(48000, 1200, 2200, 200)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetTonesByBand(6, 5); err != nil {
		t.Fatal(err)
	}
	if p.BMark != 6 || p.BSpace != 11 {
		t.Errorf("bands = (%d,%d), want (6,11)", p.BMark, p.BSpace)
	}
	if err := p.SetTonesByBand(p.NBands-1, 5); err == nil {
		t.Error("expected out-of-range b_space to be rejected")
	}
}
