// Package dsp implements the spectral analysis core of the FSK receiver:
// the per-bit tone analyzer (C1), the frame analyzer (C2) and the frame
// finder plus carrier detector (C3/C4-aux). None of it touches audio I/O
// or decoder state; it only turns sample windows into bit/frame judgements.
package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan holds everything needed to analyze sample windows at one carrier
// placement: the sample rate, mark/space tone frequencies, the DFT band
// width, and the scratch buffers the FFT runs over. A Plan is not safe for
// concurrent use; the receive stream driver owns exactly one and drives it
// from a single goroutine, matching the rest of the receive pipeline's
// single-threaded model.
type Plan struct {
	SampleRate float64
	FMark      float64
	FSpace     float64
	BandWidth  float64

	FFTSize int
	NBands  int
	BMark   int
	BSpace  int

	fft    *fourier.FFT
	fftIn  []float64
	fftOut []complex128
}

// band maps a frequency to its DFT bin index: round((f + bw/2) / bw).
func band(f, bandWidth float64) int {
	return int(math.Floor((f+bandWidth/2)/bandWidth + 0.5))
}

// NewPlan constructs a Plan for the given sample rate, mark/space tones and
// analysis band width. It fails if the resulting mark/space bands don't
// land inside [1, nbands) or coincide, mirroring minimodem's fsk_plan_new
// rejection of an invalid b_mark/b_space placement.
func NewPlan(sampleRate, fMark, fSpace, bandWidth float64) (*Plan, error) {
	if bandWidth <= 0 {
		return nil, fmt.Errorf("dsp: band width must be positive, got %v", bandWidth)
	}

	fftSize := int(math.Floor((sampleRate+bandWidth/2)/bandWidth + 0.5))
	if fftSize < 2 {
		return nil, fmt.Errorf("dsp: band width %v too coarse for sample rate %v", bandWidth, sampleRate)
	}
	nBands := fftSize/2 + 1

	bMark := band(fMark, bandWidth)
	bSpace := band(fSpace, bandWidth)
	if bMark < 1 || bMark >= nBands {
		return nil, fmt.Errorf("dsp: b_mark=%d is invalid (nbands=%d)", bMark, nBands)
	}
	if bSpace < 1 || bSpace >= nBands {
		return nil, fmt.Errorf("dsp: b_space=%d is invalid (nbands=%d)", bSpace, nBands)
	}
	if bMark == bSpace {
		return nil, fmt.Errorf("dsp: b_mark and b_space both map to band %d", bMark)
	}

	p := &Plan{
		SampleRate: sampleRate,
		FMark:      fMark,
		FSpace:     fSpace,
		BandWidth:  bandWidth,
		FFTSize:    fftSize,
		NBands:     nBands,
		BMark:      bMark,
		BSpace:     bSpace,
		fft:        fourier.NewFFT(fftSize),
		fftIn:      make([]float64, fftSize),
		fftOut:     make([]complex128, nBands),
	}
	return p, nil
}

// SetTonesByBand repoints mark/space at two explicit band indices, updating
// FMark/FSpace to match. Used by auto-carrier acquisition once a candidate
// band has been accepted. shift is b_space - b_mark and may be negative.
func (p *Plan) SetTonesByBand(bMark, shift int) error {
	bSpace := bMark + shift
	if bMark < 1 || bMark >= p.NBands {
		return fmt.Errorf("dsp: b_mark=%d out of range [1,%d)", bMark, p.NBands)
	}
	if bSpace < 1 || bSpace >= p.NBands {
		return fmt.Errorf("dsp: b_space=%d out of range [1,%d)", bSpace, p.NBands)
	}
	p.BMark = bMark
	p.BSpace = bSpace
	p.FMark = float64(bMark) * p.BandWidth
	p.FSpace = float64(bSpace) * p.BandWidth
	return nil
}

// bandMagnitudes runs the plan's DFT over nsamples of samples (zero-padded
// into the fftSize scratch) and leaves the coefficients of every band in
// p.fftOut. Used by both AnalyzeBit and DetectCarrier.
func (p *Plan) bandMagnitudes(samples []float64, nsamples int) {
	for i := 0; i < nsamples; i++ {
		p.fftIn[i] = samples[i]
	}
	for i := nsamples; i < p.FFTSize; i++ {
		p.fftIn[i] = 0
	}
	p.fftOut = p.fft.Coefficients(p.fftOut, p.fftIn)
}

func magnitude(c complex128, scalar float64) float64 {
	return math.Hypot(real(c), imag(c)) * scalar
}
