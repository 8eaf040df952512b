package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeatInterval(t *testing.T) {
	t.Parallel()

	// At 120 bpm a beat lasts 500ms.
	assert.Equal(t, 500*time.Millisecond, BeatInterval(120))

	// At 90 bpm a beat lasts roughly 666.67ms.
	assert.InDelta(t, 666.67, float64(BeatInterval(90))/float64(time.Millisecond), 0.01)
}

func TestBeatIntervalClampsTempo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BeatInterval(MaxTempoBPM), BeatInterval(500))
	assert.Equal(t, BeatInterval(MinTempoBPM), BeatInterval(10))
}

func TestClampTempo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40.0, ClampTempo(10))
	assert.Equal(t, 240.0, ClampTempo(500))
	assert.Equal(t, 120.0, ClampTempo(120))
	assert.Equal(t, 40.0, ClampTempo(40))
	assert.Equal(t, 240.0, ClampTempo(240))
}
