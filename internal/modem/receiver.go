package modem

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/vk2mod/fskmodem/internal/audio"
	"github.com/vk2mod/fskmodem/internal/decode"
	"github.com/vk2mod/fskmodem/internal/dsp"
	"github.com/vk2mod/fskmodem/internal/telemetry"
)

// Receiver is the stream driver (C4): it owns the sample buffer and
// carrier state, drives internal/dsp's frame finder, and dispatches
// recovered data words to a decode.Decoder. One Receiver handles exactly
// one audio source from a single goroutine, per spec §5's scheduling model.
type Receiver struct {
	cfg     Config
	plan    *dsp.Plan
	buf     *SampleBuffer
	carrier CarrierState
	decoder decode.Decoder
	src     audio.Source

	events io.Writer
	out    io.Writer

	dataPattern string
	syncPattern string

	justAcquired bool

	metrics   *telemetry.Metrics
	modeLabel string
}

// SetMetrics attaches a Prometheus collector set, labeled by modeLabel, that
// Run keeps updated as carrier state changes. Optional: a Receiver with no
// metrics attached behaves exactly as before.
func (r *Receiver) SetMetrics(m *telemetry.Metrics, modeLabel string) {
	r.metrics = m
	r.modeLabel = modeLabel
}

// NewReceiver builds a Receiver over src, decoding with decoder and
// writing recovered bytes to out and CARRIER/NOCARRIER reports to events
// (matching the teacher's convention of writing status lines directly with
// fmt.Fprintf rather than through the structured logger).
func NewReceiver(cfg Config, src audio.Source, decoder decode.Decoder, events, out io.Writer) (*Receiver, error) {
	plan, err := dsp.NewPlan(cfg.SampleRate, cfg.FMark, cfg.FSpace, cfg.BandWidth)
	if err != nil {
		return nil, fmt.Errorf("modem: %w", err)
	}

	samplesPerBit := cfg.SamplesPerBit()
	minCap := MinCapacity(samplesPerBit, cfg.ExpectNBits())
	dataPattern, syncPattern := buildPatterns(cfg)

	return &Receiver{
		cfg:         cfg,
		plan:        plan,
		buf:         NewSampleBuffer(minCap),
		decoder:     decoder,
		src:         src,
		events:      events,
		out:         out,
		dataPattern: dataPattern,
		syncPattern: syncPattern,
	}, nil
}

// Run drives the main decode loop until ctx is cancelled, the source hits
// end-of-stream, or a hard read error occurs. It returns nil for normal
// termination (including cancellation and clean EOF) and a non-nil error
// only for audio.Source read failures (spec §7's AudioReadError, exit -1).
func (r *Receiver) Run(ctx context.Context) error {
	samplesPerBit := r.cfg.SamplesPerBit()
	frameNSamplesExact := samplesPerBit * (float64(r.cfg.NDataBits+r.cfg.NStartBits) + r.cfg.NStopBits)

	advance := 0
	for {
		select {
		case <-ctx.Done():
			r.finish()
			return nil
		default:
		}

		// 1. Advance.
		if advance > r.buf.Valid() {
			advance = r.buf.Valid()
		}
		r.buf.Advance(advance)
		advance = 0

		// 2. Refill.
		if r.buf.Valid() < r.buf.Capacity()/2 {
			target := r.buf.Capacity() / 2
			n, err := r.buf.FillTo(target, func(dst []float64) (int, error) {
				return r.src.Read(ctx, dst)
			})
			if err != nil && err != io.EOF && err != context.Canceled && err != context.DeadlineExceeded {
				return fmt.Errorf("modem: audio read: %w", err)
			}
			if n == 0 && r.buf.Valid() == 0 {
				r.finish()
				return nil
			}
		}

		// 3. Auto-carrier.
		if r.cfg.AutoCarrier && !r.carrier.HaveCarrierBand {
			scanned, ok := r.autoCarrierScan(samplesPerBit)
			if !ok {
				advance = scanned
				continue
			}
			r.carrier.HaveCarrierBand = true
			r.carrier.CarrierBand = r.plan.BMark
		}

		// 4. Build search pattern.
		searchPattern := r.dataPattern
		if r.cfg.HasSyncByte && r.carrier.Lifecycle == Idle {
			searchPattern = r.syncPattern
		}

		// 5. Search bounds.
		haveCarrier := r.carrier.Lifecycle == Acquired
		base := samplesPerBit
		if haveCarrier {
			base = 0.75 * samplesPerBit
		}
		overscan := math.Round(0.5 * samplesPerBit)
		if overscan > 0 && overscan < 1 {
			overscan = 1
		}
		maxNSamples := base + overscan
		coarseStep := maxNSamples / 3
		if coarseStep < 1 {
			coarseStep = 1
		}
		firstSample := 0.0
		if haveCarrier {
			firstSample = overscan
		}

		frameNSamples := int(math.Round(samplesPerBit * float64(len(searchPattern))))
		result := r.plan.FindFrame(r.buf.Samples(), frameNSamples, int(firstSample), int(maxNSamples), int(coarseStep), r.cfg.SearchLimit, searchPattern)

		// 6. Two-pass refine.
		triggered := r.justAcquired || (!math.IsInf(result.Confidence, 0) && result.Confidence < 0.75*r.carrier.PeakConfidence)
		r.justAcquired = false
		if triggered && !math.IsInf(result.Confidence, 0) && coarseStep > 1 {
			fineStep := maxNSamples / 8
			if fineStep < 1 {
				fineStep = 1
			}
			fine := r.plan.FindFrame(r.buf.Samples(), frameNSamples, int(firstSample), int(maxNSamples), int(fineStep), math.Inf(1), searchPattern)
			if fine.Confidence > result.Confidence {
				result = fine
			}
			r.carrier.PeakConfidence = 0
		}

		// 7. Amplitude squelch.
		if haveCarrier && result.Amplitude < 0.25*r.carrier.TrackAmplitude {
			result.Confidence = 0
		}

		// 8. Classify.
		if result.Confidence <= r.cfg.MinConfidence {
			r.carrier.NoconfidenceBits++
			if r.carrier.NoconfidenceBits > NoconfidenceLimit {
				if r.carrier.Lifecycle == Acquired {
					r.emitNoCarrier()
				}
				r.carrier.Release()
				r.reportMetrics()
				if r.cfg.RxOne {
					return nil
				}
			}
			advance = int(maxNSamples)
			continue
		}

		if r.carrier.Lifecycle == Idle {
			r.carrier.Acquire()
			r.justAcquired = true
			fmt.Fprintf(r.events, "### CARRIER %v @ %v ###\n", r.cfg.Baud, r.plan.FMark)
			r.decoder.Reset()
		}
		r.carrier.NoconfidenceBits = 0
		frameNSamplesForAdvance := int(math.Round(frameNSamplesExact))
		r.carrier.RecordFrame(result.Confidence, result.Amplitude, frameNSamplesForAdvance)
		r.reportMetrics()
		advance = result.StartOffset + frameNSamplesForAdvance - int(overscan)

		// 9. Extract data bits.
		bits := result.Bits
		if r.cfg.NStopBits != 0 {
			bits >>= 1
		}
		bits >>= uint(r.cfg.NStartBits)
		mask := uint64(1)<<uint(r.cfg.NDataBits) - 1
		bits &= mask
		word := uint32(bits)
		if r.cfg.MSBFirst {
			word = reverseBitsN(word, r.cfg.NDataBits)
		}

		// 10. Suppress sync bytes.
		if r.cfg.HasSyncByte && r.carrier.Lifecycle == Acquired && uint32(r.cfg.SyncByte) == word {
			continue
		}

		// 11. Decode.
		out := r.decoder.Decode(r.cfg.NDataBits, word)
		if len(out) > 0 {
			_, _ = r.out.Write(out)
			if r.metrics != nil {
				r.metrics.BytesEmitted.WithLabelValues(r.modeLabel).Add(float64(len(out)))
			}
		}
	}
}

func reverseBitsN(v uint32, n int) uint32 {
	var r uint32
	for i := 0; i < n; i++ {
		r <<= 1
		r |= v & 1
		v >>= 1
	}
	return r
}

// autoCarrierScan implements the selection policy of spec §4.4: scan
// non-overlapping windows until one yields a candidate band whose implied
// b_space lands in range, per the configured shift.
func (r *Receiver) autoCarrierScan(samplesPerBit float64) (advance int, ok bool) {
	winSize := int(math.Min(samplesPerBit, float64(r.plan.FFTSize)))
	if winSize < 1 {
		winSize = 1
	}
	samples := r.buf.Samples()

	offset := 0
	for offset+winSize <= len(samples) {
		band, found := r.plan.DetectCarrier(samples[offset:], winSize, r.cfg.AutoMinMagThreshold)
		offset += winSize
		if !found {
			continue
		}
		if err := r.plan.SetTonesByBand(band, r.cfg.AutoShift); err == nil {
			return offset, true
		}
	}
	return offset, false
}

// reportMetrics pushes the current carrier/confidence/amplitude state to
// the attached telemetry.Metrics, if any.
func (r *Receiver) reportMetrics() {
	if r.metrics == nil {
		return
	}
	acquired := 0.0
	if r.carrier.Lifecycle == Acquired {
		acquired = 1.0
	}
	r.metrics.CarrierAcquired.WithLabelValues(r.modeLabel).Set(acquired)
	r.metrics.AverageConfidence.WithLabelValues(r.modeLabel).Set(r.carrier.AverageConfidence())
	r.metrics.AverageAmplitude.WithLabelValues(r.modeLabel).Set(r.carrier.AverageAmplitude())
	r.metrics.NoconfidenceBits.WithLabelValues(r.modeLabel).Set(float64(r.carrier.NoconfidenceBits))
	if acquired == 1.0 {
		r.metrics.FramesDecoded.WithLabelValues(r.modeLabel).Add(1)
	}
}

// finish emits a final NOCARRIER report if the receiver was mid-signal,
// per spec §4.5's cancellation semantics.
func (r *Receiver) finish() {
	if r.carrier.Lifecycle == Acquired {
		r.emitNoCarrier()
	}
}

func (r *Receiver) emitNoCarrier() {
	throughput := 0.0
	if r.carrier.CarrierNSamples > 0 {
		frameNBits := r.cfg.NDataBits + r.cfg.NStartBits + int(r.cfg.NStopBits+0.5)
		throughput = float64(r.carrier.NFramesDecoded) * float64(frameNBits) * r.cfg.SampleRate / float64(r.carrier.CarrierNSamples)
	}

	frameNBits := r.cfg.NDataBits + r.cfg.NStartBits + int(r.cfg.NStopBits+0.5)
	rateLabel := "rate perfect"
	lhs := math.Round(float64(r.carrier.NFramesDecoded) * float64(frameNBits) * r.cfg.SampleRate)
	rhs := math.Round(r.cfg.Baud * float64(r.carrier.CarrierNSamples))
	if lhs != rhs {
		pct := 0.0
		if r.cfg.Baud > 0 {
			pct = (throughput - r.cfg.Baud) / r.cfg.Baud * 100
		}
		if pct >= 0 {
			rateLabel = fmt.Sprintf("%.1f%% fast", pct)
		} else {
			rateLabel = fmt.Sprintf("%.1f%% slow", -pct)
		}
	}

	fmt.Fprintf(r.events, "### NOCARRIER ndata=%d confidence=%.3f ampl=%.3f bps=%.2f (%s) ###\n",
		r.carrier.NFramesDecoded, r.carrier.AverageConfidence(), r.carrier.AverageAmplitude(), throughput, rateLabel)
}
