package audio

import (
	"context"
	"io"
	"math"
)

// BenchSource replays an in-memory sample stream: the benchmark
// sink/source spec §1 names as an external collaborator for TX→RX
// round-trip testing without real audio I/O.
type BenchSource struct {
	sampleRate float64
	samples    []float64
	pos        int
}

// NewBenchSource wraps a precomputed sample sequence (for example a
// BenchSink's Samples after Transmitter.Send) as a Source.
func NewBenchSource(sampleRate float64, samples []float64) *BenchSource {
	return &BenchSource{sampleRate: sampleRate, samples: samples}
}

func (b *BenchSource) SampleRate() float64 { return b.sampleRate }

func (b *BenchSource) Read(ctx context.Context, dst []float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if b.pos >= len(b.samples) {
		return 0, io.EOF
	}
	n := copy(dst, b.samples[b.pos:])
	b.pos += n
	return n, nil
}

func (b *BenchSource) Close() error { return nil }

// BenchSink accumulates written samples in memory for inspection by tests.
type BenchSink struct {
	sampleRate float64
	Samples    []float64
}

func NewBenchSink(sampleRate float64) *BenchSink {
	return &BenchSink{sampleRate: sampleRate}
}

func (b *BenchSink) SampleRate() float64 { return b.sampleRate }

func (b *BenchSink) Write(ctx context.Context, samples []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.Samples = append(b.Samples, samples...)
	return nil
}

func (b *BenchSink) Close() error { return nil }

// ToneSeconds is a small helper mirroring the transmitter's tone rendering,
// for fabricating a pure mark or space window without pulling in the full
// Transmitter. No test in this module calls it.
func ToneSeconds(freq, sampleRate float64, seconds float64) []float64 {
	n := int(math.Round(sampleRate * seconds))
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}
