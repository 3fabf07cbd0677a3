package modem

// Config is the fully-resolved receiver configuration: a mode's defaults
// plus any flag overrides, per spec §6's CLI surface.
type Config struct {
	SampleRate float64
	Baud       float64
	FMark      float64
	FSpace     float64
	BandWidth  float64

	NStartBits      int
	NDataBits       int
	NStopBits       float64
	InvertStartStop bool
	MSBFirst        bool

	SyncByte    byte
	HasSyncByte bool

	MinConfidence float64 // threshold, default 1.5
	SearchLimit   float64 // default 2.3

	AutoCarrier        bool
	AutoShift          int // b_space - b_mark for auto-detect acceptance
	AutoMinMagThreshold float64

	RxOne bool

	DecoderName string
}

// FromMode builds a Config from a ModeDefaults, ready for flag overrides.
func FromMode(m ModeDefaults, sampleRate float64) Config {
	return Config{
		SampleRate:      sampleRate,
		Baud:            m.Baud,
		FMark:           m.FMark,
		FSpace:          m.FSpace,
		BandWidth:       m.BandWidth,
		NStartBits:      m.NStartBits,
		NDataBits:       m.NDataBits,
		NStopBits:       m.NStopBits,
		InvertStartStop: m.InvertStartStop,
		MSBFirst:        m.MSBFirst,
		SyncByte:        m.SyncByte,
		HasSyncByte:     m.HasSyncByte,
		MinConfidence:   1.5,
		SearchLimit:     2.3,
		DecoderName:     m.Decoder,
	}
}

// ExpectNBits is the frame pattern length: data bits + start bits + stop
// bits (rounded) + the inherited prev-stop/idle bit. A framing with no stop
// bits has no prev-stop bit either.
func (c Config) ExpectNBits() int {
	n := c.NDataBits + c.NStartBits + int(c.NStopBits+0.5)
	if c.NStopBits != 0 {
		n++
	}
	return n
}

// SamplesPerBit is the nominal bit period in samples at the configured baud.
func (c Config) SamplesPerBit() float64 {
	return c.SampleRate / c.Baud
}

// buildPatterns renders the data and (if a sync byte is configured) sync
// expect-bit patterns for this config, per spec §4.5 step 4.
func buildPatterns(c Config) (dataPattern, syncPattern string) {
	n := c.ExpectNBits()
	pattern := make([]byte, n)

	startChar, stopChar := byte('0'), byte('1')
	if c.InvertStartStop {
		startChar, stopChar = '1', '0'
	}

	idx := 0
	if c.NStopBits != 0 {
		pattern[0] = stopChar // inherited prev-stop/idle bit
		idx = 1
	}
	for i := 0; i < c.NStartBits; i++ {
		pattern[idx] = startChar
		idx++
	}
	dataStart := idx
	for i := 0; i < c.NDataBits; i++ {
		pattern[idx] = 'd'
		idx++
	}
	nStopChars := int(c.NStopBits + 0.5)
	for i := 0; i < nStopChars; i++ {
		pattern[idx] = stopChar
		idx++
	}

	dataPattern = string(pattern)
	if !c.HasSyncByte {
		return dataPattern, ""
	}

	sync := []byte(dataPattern)
	for i := 0; i < c.NDataBits; i++ {
		if (c.SyncByte>>uint(i))&1 == 1 {
			sync[dataStart+i] = '1'
		} else {
			sync[dataStart+i] = '0'
		}
	}
	return dataPattern, string(sync)
}
