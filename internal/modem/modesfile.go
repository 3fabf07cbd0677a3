package modem

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// modesFile is the on-disk shape for --modes-file: a map of mode name to
// the same fields ModeDefaults carries, so custom presets can be added or
// overridden without a rebuild.
type modesFile struct {
	Modes map[string]struct {
		Baud            float64 `yaml:"baud"`
		FMark           float64 `yaml:"f_mark"`
		FSpace          float64 `yaml:"f_space"`
		BandWidth       float64 `yaml:"bandwidth"`
		NStartBits      int     `yaml:"start_bits"`
		NDataBits       int     `yaml:"data_bits"`
		NStopBits       float64 `yaml:"stop_bits"`
		InvertStartStop bool    `yaml:"invert_start_stop"`
		MSBFirst        bool    `yaml:"msb_first"`
		SyncByte        byte    `yaml:"sync_byte"`
		HasSyncByte     bool    `yaml:"has_sync_byte"`
		Decoder         string  `yaml:"decoder"`
	} `yaml:"modes"`
}

// LoadModesFile parses a --modes-file YAML document and merges its entries
// into a copy of Modes, letting custom presets add to or override the
// built-in table by name.
func LoadModesFile(r io.Reader) (map[string]ModeDefaults, error) {
	merged := make(map[string]ModeDefaults, len(Modes))
	for name, m := range Modes {
		merged[name] = m
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("modem: read modes file: %w", err)
	}

	var doc modesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("modem: parse modes file: %w", err)
	}

	for name, m := range doc.Modes {
		merged[name] = ModeDefaults{
			Name:            name,
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
			Decoder:         m.Decoder,
		}
	}
	return merged, nil
}
