package audio

import (
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Tone is one click timbre: a pitch in scientific notation ("C6"), a
// note-length duration token ("32n") and a gain offset in dB applied to the
// base click level. The metronome carries two of these, one for regular
// beats and one for the accented downbeat.
type Tone struct {
	Pitch    string
	Duration string
	GainDB   float64
}

// DefaultRegularTone is the click used for beats 2..n of a measure.
func DefaultRegularTone() Tone {
	return Tone{Pitch: "G5", Duration: "32n", GainDB: -6}
}

// DefaultAccentTone is the click used for the downbeat.
func DefaultAccentTone() Tone {
	return Tone{Pitch: "C6", Duration: "32n", GainDB: 0}
}

// wholeNote is the reference length for duration tokens, a whole note at
// 120 bpm. Click lengths do not track the playing tempo; a "32n" click is
// 62.5ms whatever the session tempo is.
const wholeNote = 2 * time.Second

// NoteDuration resolves a note-length token such as "4n", "8n", "16n" or
// "32n" against the fixed whole note reference.
func NoteDuration(token string) (time.Duration, error) {
	if len(token) < 2 || token[len(token)-1] != 'n' {
		return 0, errors.Errorf("invalid duration token %q", token)
	}
	div, err := strconv.Atoi(token[:len(token)-1])
	if err != nil || div < 1 {
		return 0, errors.Errorf("invalid duration token %q", token)
	}
	return wholeNote / time.Duration(div), nil
}

// semitone offsets relative to A within the same scientific octave
var noteOffsets = map[byte]int{
	'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2,
}

// parsePitch converts scientific pitch notation to semitones from A4.
// Accepts an optional '#' or 'b' accidental between letter and octave.
func parsePitch(pitch string) (int, error) {
	if len(pitch) < 2 {
		return 0, errors.Errorf("invalid pitch %q", pitch)
	}

	offset, ok := noteOffsets[pitch[0]]
	if !ok {
		return 0, errors.Errorf("invalid pitch %q", pitch)
	}

	rest := pitch[1:]
	switch rest[0] {
	case '#':
		offset++
		rest = rest[1:]
	case 'b':
		offset--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, errors.Errorf("invalid pitch %q", pitch)
	}

	return offset + (octave-4)*12, nil
}

// Frequency converts scientific pitch notation to Hz using A4 = 440Hz.
func Frequency(pitch string) (float64, error) {
	semis, err := parsePitch(pitch)
	if err != nil {
		return 0, err
	}
	return 440.0 * math.Pow(2, float64(semis)/12.0), nil
}

// NoteNumber converts scientific pitch notation to a MIDI note number
// (A4 = 69). Pitches outside the MIDI range are an error.
func NoteNumber(pitch string) (uint8, error) {
	semis, err := parsePitch(pitch)
	if err != nil {
		return 0, err
	}
	n := semis + 69
	if n < 0 || n > 127 {
		return 0, errors.Errorf("pitch %q outside the MIDI note range", pitch)
	}
	return uint8(n), nil
}

// gainAmplitude converts a dB offset to a linear factor.
func gainAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}
