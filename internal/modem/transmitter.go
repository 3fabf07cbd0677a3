package modem

import (
	"context"
	"fmt"
	"math"

	"github.com/vk2mod/fskmodem/internal/audio"
)

// Transmitter renders a byte stream as an FSK tone sequence: the symmetric
// counterpart to Receiver, named in spec §1/§6.
type Transmitter struct {
	cfg Config
	snk audio.Sink
}

func NewTransmitter(cfg Config, snk audio.Sink) *Transmitter {
	return &Transmitter{cfg: cfg, snk: snk}
}

// Send frames and transmits each byte of data, then writes the 0.5s
// flush-to-zero tail spec §9 calls out as observable behavior ("lame" in
// the original, but part of the wire contract nonetheless).
func (t *Transmitter) Send(ctx context.Context, data []byte) error {
	samplesPerBit := t.cfg.SamplesPerBit()

	for _, b := range data {
		frame := t.renderByteFrame(b, samplesPerBit)
		if err := t.snk.Write(ctx, frame); err != nil {
			return fmt.Errorf("modem: tx write: %w", err)
		}
	}

	tail := make([]float64, int(math.Round(t.cfg.SampleRate*0.5)))
	if err := t.snk.Write(ctx, tail); err != nil {
		return fmt.Errorf("modem: tx flush tail: %w", err)
	}
	return nil
}

func (t *Transmitter) renderByteFrame(b byte, samplesPerBit float64) []float64 {
	startChar, stopChar := 0, 1
	if t.cfg.InvertStartStop {
		startChar, stopChar = 1, 0
	}

	var bits []int
	for i := 0; i < t.cfg.NStartBits; i++ {
		bits = append(bits, startChar)
	}

	data := uint32(b)
	if t.cfg.MSBFirst {
		data = reverseBitsN(data, t.cfg.NDataBits)
	}
	for i := 0; i < t.cfg.NDataBits; i++ {
		bits = append(bits, int((data>>uint(i))&1))
	}

	nStopBits := int(t.cfg.NStopBits + 0.5)
	for i := 0; i < nStopBits; i++ {
		bits = append(bits, stopChar)
	}

	spb := int(math.Round(samplesPerBit))
	out := make([]float64, 0, len(bits)*spb)
	for _, v := range bits {
		f := t.cfg.FSpace
		if v == 1 {
			f = t.cfg.FMark
		}
		out = append(out, t.tone(f, spb)...)
	}
	return out
}

func (t *Transmitter) tone(freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / t.cfg.SampleRate)
	}
	return out
}
