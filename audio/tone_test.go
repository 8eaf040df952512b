package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency(t *testing.T) {
	t.Parallel()

	for pitch, want := range map[string]float64{
		"A4":  440.0,
		"C6":  1046.50,
		"G5":  783.99,
		"A#4": 466.16,
		"Bb4": 466.16,
		"C4":  261.63,
	} {
		got, err := Frequency(pitch)
		require.NoError(t, err, pitch)
		assert.InDelta(t, want, got, 0.01, pitch)
	}
}

func TestFrequencyInvalid(t *testing.T) {
	t.Parallel()

	for _, pitch := range []string{"", "A", "H4", "4A", "C#", "Cx4"} {
		_, err := Frequency(pitch)
		assert.Error(t, err, pitch)
	}
}

func TestNoteNumber(t *testing.T) {
	t.Parallel()

	for pitch, want := range map[string]uint8{
		"A4": 69,
		"C4": 60,
		"C6": 84,
		"G9": 127,
	} {
		got, err := NoteNumber(pitch)
		require.NoError(t, err, pitch)
		assert.Equal(t, want, got, pitch)
	}

	_, err := NoteNumber("C12")
	assert.Error(t, err)
}

func TestNoteDuration(t *testing.T) {
	t.Parallel()

	for token, want := range map[string]time.Duration{
		"1n":  2 * time.Second,
		"4n":  500 * time.Millisecond,
		"16n": 125 * time.Millisecond,
		"32n": 62500 * time.Microsecond,
	} {
		got, err := NoteDuration(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
}

func TestNoteDurationInvalid(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "n", "8", "0n", "-4n", "xn"} {
		_, err := NoteDuration(token)
		assert.Error(t, err, token)
	}
}

func TestVelocityFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint8(100), velocityFor(0))
	assert.Equal(t, uint8(127), velocityFor(12))
	assert.Equal(t, uint8(1), velocityFor(-60))
}

func TestRenderTone(t *testing.T) {
	t.Parallel()

	buf, err := renderTone(DefaultAccentTone())
	require.NoError(t, err)

	// a 32n click is 62.5ms of samples
	assert.Equal(t, sampleRate.N(62500*time.Microsecond), buf.Len())

	_, err = renderTone(Tone{Pitch: "??", Duration: "32n"})
	assert.Error(t, err)

	_, err = renderTone(Tone{Pitch: "C6", Duration: "??"})
	assert.Error(t, err)
}
