// Package modem implements the receive stream driver (C4) and the
// symmetric transmitter: the sample ring buffer, carrier state machine,
// mode defaults table, and the main decode loop that ties internal/dsp,
// internal/decode and internal/audio together.
package modem

import "math"

// SampleBuffer is a fixed-capacity, growable ring of float64 samples with a
// valid-prefix length. It grows by appending at the tail (Fill) and shrinks
// by discarding a left prefix (Advance), matching the stream driver's
// single producer / single consumer usage.
type SampleBuffer struct {
	data  []float64
	valid int
}

// MinCapacity returns the smallest buffer capacity the driver requires for
// a frame of frameNBits bits at samplesPerBit samples/bit:
// ceil(samplesPerBit) * (frameNBits + 1).
func MinCapacity(samplesPerBit float64, frameNBits int) int {
	return int(math.Ceil(samplesPerBit)) * (frameNBits + 1)
}

// NewSampleBuffer allocates a buffer whose capacity is at least minCapacity,
// doubled to amortize subsequent reads.
func NewSampleBuffer(minCapacity int) *SampleBuffer {
	cap := minCapacity * 2
	if cap < 1 {
		cap = 1
	}
	return &SampleBuffer{data: make([]float64, cap)}
}

// Capacity returns the buffer's fixed allocation size.
func (b *SampleBuffer) Capacity() int { return len(b.data) }

// Valid returns the number of samples currently holding data.
func (b *SampleBuffer) Valid() int { return b.valid }

// Samples returns the valid prefix of the buffer. The returned slice aliases
// internal storage and is invalidated by the next Fill or Advance call.
func (b *SampleBuffer) Samples() []float64 { return b.data[:b.valid] }

// Advance discards the first n samples, left-shifting the remainder. It
// refuses to advance past valid: a larger n is clamped to Valid(). An n of
// Capacity() or more is a full restart that resets valid to 0 without
// shifting.
func (b *SampleBuffer) Advance(n int) {
	if n <= 0 {
		return
	}
	if n >= b.Capacity() {
		b.valid = 0
		return
	}
	if n > b.valid {
		n = b.valid
	}
	copy(b.data, b.data[n:b.valid])
	b.valid -= n
}

// Fill reads up to len(b.data)-b.valid samples from read into the tail of
// the buffer and reports how many were appended. read must behave like
// io.Reader.Read over a float64 destination: return (n, nil) for a partial
// or full read, (0, io.EOF) at end of stream, or (n, err) on failure.
func (b *SampleBuffer) Fill(read func(dst []float64) (int, error)) (int, error) {
	return b.FillTo(len(b.data), read)
}

// FillTo reads from read into the tail of the buffer until Valid reaches
// target (clamped to Capacity), reporting how many samples were appended.
func (b *SampleBuffer) FillTo(target int, read func(dst []float64) (int, error)) (int, error) {
	if target > len(b.data) {
		target = len(b.data)
	}
	room := target - b.valid
	if room <= 0 {
		return 0, nil
	}
	n, err := read(b.data[b.valid : b.valid+room])
	b.valid += n
	return n, err
}
