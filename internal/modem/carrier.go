package modem

// CarrierLifecycle distinguishes whether the driver currently believes it
// is tracking a live signal.
type CarrierLifecycle int

const (
	Idle CarrierLifecycle = iota
	Acquired
)

func (s CarrierLifecycle) String() string {
	if s == Acquired {
		return "acquired"
	}
	return "idle"
}

// CarrierState is the stream driver's running view of signal quality and
// accumulated decode statistics, per spec §3/§4.5. NoconfidenceLimit
// (20 in spec) triggers the Acquired→Idle transition.
type CarrierState struct {
	Lifecycle CarrierLifecycle

	CarrierBand     int
	HaveCarrierBand bool

	TrackAmplitude    float64
	PeakConfidence    float64
	NoconfidenceBits  int
	NFramesDecoded    int
	CarrierNSamples   int
	ConfidenceTotal   float64
	AmplitudeTotal    float64
}

const NoconfidenceLimit = 20

// Acquire transitions Idle→Acquired: resets accumulators and clears
// peak confidence, per spec §4.5's Idle row.
func (c *CarrierState) Acquire() {
	c.Lifecycle = Acquired
	c.PeakConfidence = 0
	c.NoconfidenceBits = 0
	c.NFramesDecoded = 0
	c.CarrierNSamples = 0
	c.ConfidenceTotal = 0
	c.AmplitudeTotal = 0
}

// Release transitions Acquired→Idle: clears the carrier band and resets
// all accumulators, per spec §4.5's NOCARRIER row.
func (c *CarrierState) Release() {
	c.Lifecycle = Idle
	c.HaveCarrierBand = false
	c.TrackAmplitude = 0
	c.PeakConfidence = 0
	c.NoconfidenceBits = 0
	c.NFramesDecoded = 0
	c.CarrierNSamples = 0
	c.ConfidenceTotal = 0
	c.AmplitudeTotal = 0
}

// RecordFrame folds one decoded frame's statistics into the running
// accumulators and updates track amplitude / peak confidence per spec
// §4.5 step 8.
func (c *CarrierState) RecordFrame(confidence, amplitude float64, frameNSamples int) {
	c.TrackAmplitude = (c.TrackAmplitude + amplitude) / 2
	if confidence > c.PeakConfidence {
		c.PeakConfidence = confidence
	}
	c.ConfidenceTotal += confidence
	c.AmplitudeTotal += amplitude
	c.NFramesDecoded++
	c.CarrierNSamples += frameNSamples
}

// AverageConfidence and AverageAmplitude back the NOCARRIER report; both
// return 0 if no frames were decoded this carrier lifetime.
func (c *CarrierState) AverageConfidence() float64 {
	if c.NFramesDecoded == 0 {
		return 0
	}
	return c.ConfidenceTotal / float64(c.NFramesDecoded)
}

func (c *CarrierState) AverageAmplitude() float64 {
	if c.NFramesDecoded == 0 {
		return 0
	}
	return c.AmplitudeTotal / float64(c.NFramesDecoded)
}
