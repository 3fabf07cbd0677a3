// Package telemetry exposes the modem's running state as Prometheus
// gauges and counters plus a gopsutil-backed host snapshot, grounded on the
// teacher's own prometheus.go / decoder_health.go conventions.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the modem's Prometheus collectors, one GaugeVec or
// CounterVec per carrier/throughput statistic, labeled by mode the same way the teacher
// labels its noise-floor and digital-decode gauges by band.
type Metrics struct {
	CarrierAcquired  *prometheus.GaugeVec // 1 while a carrier is held, 0 otherwise
	FramesDecoded    *prometheus.CounterVec
	BytesEmitted     *prometheus.CounterVec
	AverageConfidence *prometheus.GaugeVec
	AverageAmplitude  *prometheus.GaugeVec
	ThroughputBps     *prometheus.GaugeVec
	NoconfidenceBits  *prometheus.GaugeVec
}

// NewMetrics registers all collectors against the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		CarrierAcquired: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fskmodem_carrier_acquired",
				Help: "1 while the receiver holds a carrier, 0 otherwise.",
			},
			[]string{"mode"},
		),
		FramesDecoded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fskmodem_frames_decoded_total",
				Help: "Total frames decoded above the confidence threshold.",
			},
			[]string{"mode"},
		),
		BytesEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fskmodem_bytes_emitted_total",
				Help: "Total output bytes emitted by databit decoders.",
			},
			[]string{"mode"},
		),
		AverageConfidence: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fskmodem_average_confidence",
				Help: "Average frame confidence over the current carrier lifetime.",
			},
			[]string{"mode"},
		),
		AverageAmplitude: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fskmodem_average_amplitude",
				Help: "Average frame amplitude over the current carrier lifetime.",
			},
			[]string{"mode"},
		),
		ThroughputBps: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fskmodem_throughput_bps",
				Help: "Measured decode throughput in bits per second.",
			},
			[]string{"mode"},
		),
		NoconfidenceBits: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fskmodem_noconfidence_bits",
				Help: "Consecutive low-confidence bit-width iterations since last carrier.",
			},
			[]string{"mode"},
		),
	}
}
