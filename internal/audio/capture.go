package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/gzip"
)

// CaptureSink wraps a Source and duplicates every sample it reads into a
// gzip-compressed raw float32 dump, for the --capture file.raw.gz flag.
// It implements Source itself so the receiver can use it as a drop-in
// replacement for the underlying source.
type CaptureSink struct {
	Source
	gz  *gzip.Writer
	buf []byte
}

// NewCaptureSink tees src's reads through a gzip writer over w.
func NewCaptureSink(src Source, w io.Writer) *CaptureSink {
	return &CaptureSink{Source: src, gz: gzip.NewWriter(w), buf: make([]byte, 4)}
}

func (c *CaptureSink) Read(ctx context.Context, dst []float64) (int, error) {
	n, err := c.Source.Read(ctx, dst)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(c.buf, math.Float32bits(float32(dst[i])))
		if _, werr := c.gz.Write(c.buf); werr != nil {
			return n, fmt.Errorf("audio: capture write: %w", werr)
		}
	}
	return n, err
}

func (c *CaptureSink) Close() error {
	if err := c.gz.Close(); err != nil {
		return fmt.Errorf("audio: capture close: %w", err)
	}
	return c.Source.Close()
}
