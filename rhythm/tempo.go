package rhythm

import (
	"math"
	"time"
)

// Tempo bounds in beats per minute. Requests outside this range are clamped,
// never rejected.
const (
	MinTempoBPM = 40.0
	MaxTempoBPM = 240.0
)

// ClampTempo forces bpm into the supported [MinTempoBPM, MaxTempoBPM] range.
func ClampTempo(bpm float64) float64 {
	return clamp(bpm, MinTempoBPM, MaxTempoBPM)
}

// BeatInterval returns the duration of a single beat at the given tempo.
// The tempo is clamped first, so the result is always derived from an
// in-range value.
func BeatInterval(bpm float64) time.Duration {
	return time.Duration(beatsToNanoseconds(1, ClampTempo(bpm)))
}

// beatsToNanoseconds calculates the nanoseconds covered by the given number
// of beats at a tempo.
func beatsToNanoseconds(beats int, tempo float64) float64 {
	return (float64(time.Minute) / tempo) * float64(beats)
}

func clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}
