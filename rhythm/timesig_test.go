package rhythm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSignature(t *testing.T) {
	t.Parallel()

	sig, err := ParseTimeSignature("6/8")
	require.NoError(t, err)
	assert.Equal(t, 6, sig.BeatsPerMeasure)
	assert.Equal(t, 8, sig.NoteValue)
	assert.Equal(t, "6/8", sig.Label)
}

func TestParseTimeSignatureUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseTimeSignature("13/16")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTimeSignature))
}

func TestNextTimeSignatureCycles(t *testing.T) {
	t.Parallel()

	label := TimeSignatures[0].Label
	seen := map[string]bool{}
	for i := 0; i < len(TimeSignatures); i++ {
		next := NextTimeSignature(label)
		seen[next.Label] = true
		label = next.Label
	}

	// a full cycle visits every preset and ends up back at the start
	assert.Len(t, seen, len(TimeSignatures))
	assert.Equal(t, TimeSignatures[0].Label, label)
}

func TestNextTimeSignatureUnknownLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TimeSignatures[0], NextTimeSignature("nope"))
}

func TestPresetsAreSequenceable(t *testing.T) {
	t.Parallel()

	for _, sig := range TimeSignatures {
		assert.GreaterOrEqual(t, sig.BeatsPerMeasure, 1, sig.Label)
	}
}
