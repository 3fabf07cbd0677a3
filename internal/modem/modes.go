package modem

// ModeDefaults is one named modem configuration from spec §6's defaults
// table: tone placement, framing shape and the decoder that should consume
// its recovered data words.
type ModeDefaults struct {
	Name string

	Baud      float64
	FMark     float64
	FSpace    float64
	BandWidth float64

	NStartBits    int
	NDataBits     int
	NStopBits     float64 // fractional stop bits (e.g. RTTY's 1.5)
	InvertStartStop bool
	MSBFirst      bool

	SyncByte    byte
	HasSyncByte bool

	Decoder string
}

// Modes is the fixed set of named modem presets from spec §6.
var Modes = map[string]ModeDefaults{
	"1200": {
		Name: "1200", Baud: 1200, FMark: 1200, FSpace: 2200, BandWidth: 200,
		NStartBits: 1, NDataBits: 8, NStopBits: 1, Decoder: "ascii8",
	},
	"300": {
		Name: "300", Baud: 300, FMark: 1270, FSpace: 1070, BandWidth: 50,
		NStartBits: 1, NDataBits: 8, NStopBits: 1, Decoder: "ascii8",
	},
	"rtty": {
		Name: "rtty", Baud: 45.45, FMark: 1585, FSpace: 1415, BandWidth: 10,
		NStartBits: 1, NDataBits: 5, NStopBits: 1.5, Decoder: "baudot",
	},
	"tdd": {
		Name: "tdd", Baud: 45.45, FMark: 1400, FSpace: 1800, BandWidth: 10,
		NStartBits: 1, NDataBits: 5, NStopBits: 2, Decoder: "baudot",
	},
	"same": {
		Name: "same", Baud: 520.833333, FMark: 2083.333333, FSpace: 1562.5, BandWidth: 520.833333,
		NStartBits: 0, NDataBits: 8, NStopBits: 0,
		SyncByte: 0xAB, HasSyncByte: true, Decoder: "rawbinary",
	},
	"callerid": {
		Name: "callerid", Baud: 1200, FMark: 1200, FSpace: 2200, BandWidth: 200,
		NStartBits: 1, NDataBits: 8, NStopBits: 1, Decoder: "callerid",
	},
	// uic-train decodes telegrams sent train->ground; uic-ground decodes
	// telegrams sent ground->train. Each names the decoder holding the
	// matching meaning table.
	"uic-train": {
		Name: "uic-train", Baud: 600, FMark: 1300, FSpace: 1700, BandWidth: 200,
		NStartBits: 8, NDataBits: 39, NStopBits: 0, Decoder: "uic751-train",
	},
	"uic-ground": {
		Name: "uic-ground", Baud: 600, FMark: 1300, FSpace: 1700, BandWidth: 200,
		NStartBits: 8, NDataBits: 39, NStopBits: 0, Decoder: "uic751-ground",
	},
}
