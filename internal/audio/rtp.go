package audio

import (
	"context"
	"fmt"
	"net"

	"github.com/pion/rtp"
	"github.com/thesyncim/gopus"
	"golang.org/x/net/ipv4"
)

// RTPSource ingests a mono Opus-over-RTP multicast feed, the same shape as
// the teacher's radiod audio receiver (audio.go: UDP multicast join, pion/rtp
// unmarshal, per-SSRC routing) but decoded with a pure-Go Opus decoder
// instead of forwarded as raw PCM, and exposed as a blocking audio.Source
// instead of being fanned out over per-session channels.
type RTPSource struct {
	conn       *net.UDPConn
	decoder    *gopus.Decoder
	sampleRate float64
	ssrc       uint32
	haveSSRC   bool

	pcm     []int16
	pending []float64
}

// NewRTPSource joins addr on iface (nil for the default interface) and
// decodes the first SSRC seen as mono Opus at sampleRate.
func NewRTPSource(addr *net.UDPAddr, iface *net.Interface, sampleRate float64) (*RTPSource, error) {
	conn, err := net.ListenMulticastUDP("udp4", iface, addr)
	if err != nil {
		return nil, fmt.Errorf("audio: rtp multicast listen: %w", err)
	}
	if err := conn.SetReadBuffer(1024 * 1024); err != nil {
		conn.Close()
		return nil, fmt.Errorf("audio: rtp set read buffer: %w", err)
	}
	if iface != nil {
		p := ipv4.NewPacketConn(conn)
		if err := p.JoinGroup(iface, addr); err != nil {
			conn.Close()
			return nil, fmt.Errorf("audio: rtp join group: %w", err)
		}
	}

	dec, err := gopus.NewDecoder(int(sampleRate), 1)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("audio: opus decoder init: %w", err)
	}

	return &RTPSource{
		conn:       conn,
		decoder:    dec,
		sampleRate: sampleRate,
		pcm:        make([]int16, 4096),
	}, nil
}

func (r *RTPSource) SampleRate() float64 { return r.sampleRate }

func (r *RTPSource) Read(ctx context.Context, dst []float64) (int, error) {
	n := 0
	for n < len(dst) {
		if len(r.pending) > 0 {
			c := copy(dst[n:], r.pending)
			r.pending = r.pending[c:]
			n += c
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}

		buf := make([]byte, 65536)
		m, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			return n, fmt.Errorf("audio: rtp read: %w", err)
		}
		if m < 12 {
			continue
		}
		packet := &rtp.Packet{}
		if err := packet.Unmarshal(buf[:m]); err != nil {
			continue
		}
		if !r.haveSSRC {
			r.ssrc = packet.SSRC
			r.haveSSRC = true
		}
		if packet.SSRC != r.ssrc {
			continue
		}

		decoded, err := r.decoder.DecodeInt16(packet.Payload, r.pcm)
		if err != nil {
			continue
		}
		for i := 0; i < decoded; i++ {
			r.pending = append(r.pending, float64(r.pcm[i])/32768.0)
		}
	}
	return n, nil
}

func (r *RTPSource) Close() error {
	return r.conn.Close()
}
