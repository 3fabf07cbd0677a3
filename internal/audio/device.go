package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceSource streams RX samples from the system default input device via
// gordonklaus/portaudio, the live-device backend the teacher's own
// clients/go tooling links against (device enumeration in
// api_handlers.go) though the teacher never drives an actual stream;
// this backend adds the missing Start/Read/Close streaming loop.
type DeviceSource struct {
	stream     *portaudio.Stream
	buf        []float32
	sampleRate float64
}

// NewDeviceSource opens the default input device at sampleRate with a
// framesPerBuffer-sized blocking read buffer.
func NewDeviceSource(sampleRate float64, framesPerBuffer int) (*DeviceSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", err)
	}
	buf := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, framesPerBuffer, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open default input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: start input stream: %w", err)
	}
	return &DeviceSource{stream: stream, buf: buf, sampleRate: sampleRate}, nil
}

func (d *DeviceSource) SampleRate() float64 { return d.sampleRate }

func (d *DeviceSource) Read(ctx context.Context, dst []float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := len(dst)
	if n > len(d.buf) {
		n = len(d.buf)
	}
	if err := d.stream.Read(); err != nil {
		return 0, fmt.Errorf("audio: device read: %w", err)
	}
	for i := 0; i < n; i++ {
		dst[i] = float64(d.buf[i])
	}
	return n, nil
}

func (d *DeviceSource) Close() error {
	defer portaudio.Terminate()
	return d.stream.Close()
}

// DeviceSink plays TX samples through the default output device.
type DeviceSink struct {
	stream     *portaudio.Stream
	buf        []float32
	sampleRate float64
}

func NewDeviceSink(sampleRate float64, framesPerBuffer int) (*DeviceSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", err)
	}
	buf := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open default output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: start output stream: %w", err)
	}
	return &DeviceSink{stream: stream, buf: buf, sampleRate: sampleRate}, nil
}

func (d *DeviceSink) SampleRate() float64 { return d.sampleRate }

func (d *DeviceSink) Write(ctx context.Context, samples []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for len(samples) > 0 {
		n := len(d.buf)
		if n > len(samples) {
			n = len(samples)
			for i := n; i < len(d.buf); i++ {
				d.buf[i] = 0
			}
		}
		for i := 0; i < n; i++ {
			d.buf[i] = float32(samples[i])
		}
		if err := d.stream.Write(); err != nil {
			return fmt.Errorf("audio: device write: %w", err)
		}
		samples = samples[n:]
	}
	return nil
}

func (d *DeviceSink) Close() error {
	defer portaudio.Terminate()
	return d.stream.Close()
}
