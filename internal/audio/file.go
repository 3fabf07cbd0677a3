package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// FileSource reads mono float samples from a WAV file via go-audio/wav,
// the same backend family the teacher links against its file-ingest paths.
type FileSource struct {
	dec        *wav.Decoder
	rc         io.ReadCloser
	sampleRate float64
	maxValue   float64
	intBuf     *audio.IntBuffer
}

// NewFileSource reads a WAV stream from rc for RX; rc must also be an
// io.ReadSeeker. Only mono files are accepted, per
// spec §6's "channels = 1 enforced".
func NewFileSource(rc io.ReadCloser) (*FileSource, error) {
	rs, ok := rc.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("audio: file source requires a seekable reader")
	}
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		rc.Close()
		return nil, fmt.Errorf("audio: not a valid WAV file")
	}
	dec.ReadInfo()
	if dec.NumChans != 1 {
		rc.Close()
		return nil, fmt.Errorf("audio: expected mono WAV, got %d channels", dec.NumChans)
	}

	maxValue := float64(int(1)<<(dec.BitDepth-1)) - 1
	return &FileSource{
		dec:        dec,
		rc:         rc,
		sampleRate: float64(dec.SampleRate),
		maxValue:   maxValue,
		intBuf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: int(dec.SampleRate)},
			SourceBitDepth: int(dec.BitDepth),
		},
	}, nil
}

func (f *FileSource) SampleRate() float64 { return f.sampleRate }

func (f *FileSource) Read(ctx context.Context, dst []float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.intBuf.Data = make([]int, len(dst))
	n, err := f.dec.PCMBuffer(f.intBuf)
	if err != nil {
		return 0, fmt.Errorf("audio: file read: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		dst[i] = float64(f.intBuf.Data[i]) / f.maxValue
	}
	return n, nil
}

func (f *FileSource) Close() error { return f.rc.Close() }

// FileSink writes mono 16-bit PCM via go-audio/wav, flushing a proper RIFF
// header on Close.
type FileSink struct {
	enc        *wav.Encoder
	wc         io.WriteCloser
	sampleRate float64
}

// NewFileSink writes TX output to wc, which must also be an io.WriteSeeker,
// at the given sample rate.
func NewFileSink(wc io.WriteCloser, sampleRate int) (*FileSink, error) {
	ws, ok := wc.(io.WriteSeeker)
	if !ok {
		return nil, fmt.Errorf("audio: file sink requires a seekable writer")
	}
	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)
	return &FileSink{enc: enc, wc: wc, sampleRate: float64(sampleRate)}, nil
}

func (f *FileSink) SampleRate() float64 { return f.sampleRate }

func (f *FileSink) Write(ctx context.Context, samples []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		v := int(s * 32767)
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		data[i] = v
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(f.sampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}
	return f.enc.Write(buf)
}

func (f *FileSink) Close() error {
	if err := f.enc.Close(); err != nil {
		return err
	}
	return f.wc.Close()
}
