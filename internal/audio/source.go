// Package audio implements the RX/TX audio device backends named in
// spec §6 as external collaborators: file-backed WAV, a live portaudio
// default device, an RTP multicast ingest (grounded on the teacher's own
// radiod audio receiver), a synthetic benchmark source/sink, and an
// optional gzip capture wrapper.
package audio

import "context"

// Source is the RX audio backend contract of spec §6: mono, 32-bit float
// samples in [-1, +1], a known sample rate, and a blocking Read.
type Source interface {
	SampleRate() float64
	// Read fills dst with up to len(dst) samples, blocking until at least
	// one is available. It returns (0, io.EOF) at end of stream and
	// (n, err) on a hard read failure (spec's AudioReadError).
	Read(ctx context.Context, dst []float64) (int, error)
	Close() error
}

// Sink is the TX audio backend contract: write a block of float samples.
type Sink interface {
	SampleRate() float64
	Write(ctx context.Context, samples []float64) error
	Close() error
}
