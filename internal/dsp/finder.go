package dsp

// FrameSearchResult is the winning candidate from FindFrame, plus the
// sample offset at which it was found.
type FrameSearchResult struct {
	FrameResult
	StartOffset int
}

// FindFrame implements C3: it scans candidate frame-start offsets around
// firstSample, starting at firstSample itself and then alternating a step
// above and a step below it (t_j = firstSample + s_j * floor((j+1)/2) *
// stepNSamples, with s_j = +1 for odd j and -1 for even j), analyzing
// each with AnalyzeFrame and keeping the best-confidence result. The scan
// stops once a candidate offset reaches maxNSamples, or as soon as a
// candidate's confidence reaches searchLimit (early termination).
//
// frameNSamples is the total duration, in samples, of one hypothesis frame
// (len(expectPattern) bits at samplesPerBit each); samples-per-bit is
// derived from it exactly as the original does: frameNSamples/len(pattern).
func (p *Plan) FindFrame(samples []float64, frameNSamples, firstSample, maxNSamples, stepNSamples int, searchLimit float64, expectPattern string) FrameSearchResult {
	samplesPerBit := float64(frameNSamples) / float64(len(expectPattern))

	var best FrameSearchResult
	for j := 0; ; j++ {
		up := -1
		if j%2 == 1 {
			up = 1
		}
		t := firstSample + up*((j+1)/2)*stepNSamples
		if t >= maxNSamples {
			break
		}
		if t < 0 {
			continue
		}
		if t >= len(samples) {
			continue
		}

		fr := p.AnalyzeFrame(samples[t:], samplesPerBit, expectPattern)
		if fr.Confidence > best.Confidence {
			best = FrameSearchResult{FrameResult: fr, StartOffset: t}
			if best.Confidence >= searchLimit {
				break
			}
		}
	}
	return best
}

// DetectCarrier implements the auxiliary carrier-band scan of C4: it runs
// the plan's DFT over samples[0:nsamples] (nsamples must not exceed
// p.FFTSize) and returns the index of the strongest band at or above
// minMagThreshold, skipping the DC band. ok is false if no band clears
// the threshold.
func (p *Plan) DetectCarrier(samples []float64, nsamples int, minMagThreshold float64) (band int, ok bool) {
	if nsamples > p.FFTSize {
		panic("dsp: DetectCarrier: nsamples exceeds plan FFT size")
	}

	p.bandMagnitudes(samples, nsamples)
	magScalar := 2.0 / float64(nsamples)

	bestBand := -1
	bestMag := 0.0
	for i := 1; i < p.NBands; i++ {
		mag := magnitude(p.fftOut[i], magScalar)
		if mag < minMagThreshold {
			continue
		}
		if mag > bestMag {
			bestMag = mag
			bestBand = i
		}
	}
	if bestBand < 0 {
		return 0, false
	}
	return bestBand, true
}
