package dsp

// Bit is a single demodulated bit together with the winning and losing
// tone magnitudes that produced it.
type Bit struct {
	Value     int // 1 for mark, 0 for space
	SignalMag float64
	NoiseMag  float64
}

// AnalyzeBit runs the plan's DFT over samples[0:bitNSamples] and classifies
// the window as mark (1) or space (0) by comparing the two tone bins.
//
// bitNSamples must not exceed p.FFTSize; passing a larger window is a
// programming fault and panics, same as the original's assert.
//
// The original C implementation ("fsk_bit_analyze") copies only
// bit_nsamples into its FFT input scratch and deliberately never re-zeroes
// the trailing fftSize-bit_nsamples samples, relying on bit_nsamples being
// constant across calls within one frame analysis — a behavior its own
// comment calls "sketchy". This port always zero-pads the tail instead
// (clarity over the micro-optimization); AnalyzeBit is correct to call
// with a varying bitNSamples from one invocation to the next, unlike the
// original.
func (p *Plan) AnalyzeBit(samples []float64, bitNSamples int) Bit {
	if bitNSamples > p.FFTSize {
		panic("dsp: AnalyzeBit: bitNSamples exceeds plan FFT size")
	}

	p.bandMagnitudes(samples, bitNSamples)

	magScalar := 2.0 / float64(bitNSamples)
	magMark := magnitude(p.fftOut[p.BMark], magScalar)
	magSpace := magnitude(p.fftOut[p.BSpace], magScalar)

	if magMark > magSpace {
		return Bit{Value: 1, SignalMag: magMark, NoiseMag: magSpace}
	}
	return Bit{Value: 0, SignalMag: magSpace, NoiseMag: magMark}
}
