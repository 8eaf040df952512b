package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFourFour(t *testing.T) {
	t.Parallel()

	seq := NewSequencer()
	require.Equal(t, 1, seq.CurrentBeat())

	wantBeats := []int{2, 3, 4, 1, 2, 3}
	wantAccents := []bool{false, false, false, true, false, false}

	for i := range wantBeats {
		beat, accent := seq.Advance(4)
		assert.Equal(t, wantBeats[i], beat)
		assert.Equal(t, wantAccents[i], accent)
	}
}

func TestAdvanceThreeEight(t *testing.T) {
	t.Parallel()

	seq := NewSequencer()

	wantBeats := []int{2, 3, 1, 2}
	wantAccents := []bool{false, false, true, false}

	for i := range wantBeats {
		beat, accent := seq.Advance(3)
		assert.Equal(t, wantBeats[i], beat)
		assert.Equal(t, wantAccents[i], accent)
	}
}

func TestAdvanceWrapsWithoutLeavingRange(t *testing.T) {
	t.Parallel()

	for beats := 1; beats <= 9; beats++ {
		seq := NewSequencer()
		expected := 1
		for i := 0; i < beats*3; i++ {
			expected++
			if expected > beats {
				expected = 1
			}

			beat, accent := seq.Advance(beats)
			require.Equal(t, expected, beat, "beatsPerMeasure=%d step=%d", beats, i)
			require.GreaterOrEqual(t, beat, 1)
			require.LessOrEqual(t, beat, beats)
			require.Equal(t, beat == 1, accent)
			require.Equal(t, beat, seq.CurrentBeat())
		}
	}
}

func TestAdvanceSingleBeatMeasure(t *testing.T) {
	t.Parallel()

	seq := NewSequencer()
	for i := 0; i < 5; i++ {
		beat, accent := seq.Advance(1)
		assert.Equal(t, 1, beat)
		assert.True(t, accent)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	seq := NewSequencer()
	seq.Advance(4)
	seq.Advance(4)
	require.Equal(t, 3, seq.CurrentBeat())

	seq.Reset()
	assert.Equal(t, 1, seq.CurrentBeat())
}
