package config

import (
	"time"

	"github.com/tempohq/takt/audio"
	"github.com/tempohq/takt/rhythm"
)

// Playback defaults.
const (
	DefaultTempoBPM      = 120.0
	DefaultTimeSignature = "4/4"
)

// GetTaktConfig returns the current configuration
func GetTaktConfig() TaktConfig {
	val, _ := NewTaktConfig()
	return val
}

// TaktConfig represents options that configure the global behavior of the program
type TaktConfig struct {
	// Playback configuration
	TempoBPM      float64
	TimeSignature rhythm.TimeSignature

	// GraceDelay postpones the first click after start to let the audio
	// device settle. Optional; zero clicks immediately.
	GraceDelay time.Duration

	// Click timbre profiles
	RegularTone audio.Tone
	AccentTone  audio.Tone

	// MIDI output instead of the local speaker
	MIDI        bool
	MIDIPort    string
	MIDIChannel uint8
}

// Create a new TaktConfig object with reasonable defaults for real usage
func NewTaktConfig() (TaktConfig, error) {
	sig, err := rhythm.ParseTimeSignature(DefaultTimeSignature)
	if err != nil {
		return TaktConfig{}, err
	}

	return TaktConfig{
		TempoBPM:      DefaultTempoBPM,
		TimeSignature: sig,
		RegularTone:   audio.DefaultRegularTone(),
		AccentTone:    audio.DefaultAccentTone(),
	}, nil
}
