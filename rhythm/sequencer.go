package rhythm

// Sequencer tracks the current beat position within a measure. It is a pure
// counter: the playback engine drives it once per tick and uses the returned
// accent flag to pick the click tone.
type Sequencer struct {
	currentBeat int
}

// NewSequencer returns a sequencer positioned on the downbeat.
func NewSequencer() *Sequencer {
	return &Sequencer{currentBeat: 1}
}

// Advance moves the sequencer to the next beat of a measure with the given
// number of beats. The counter cycles through [1, beatsPerMeasure] and wraps
// from the last beat back to 1, never through 0. The returned accent flag is
// true exactly when the new beat is the downbeat.
func (s *Sequencer) Advance(beatsPerMeasure int) (beat int, accent bool) {
	next := s.currentBeat + 1
	if s.currentBeat >= beatsPerMeasure {
		next = 1
	}
	s.currentBeat = next
	return next, next == 1
}

// Reset moves the sequencer back to the downbeat. Called whenever playback
// stops, starts or restarts so every session begins on beat 1.
func (s *Sequencer) Reset() {
	s.currentBeat = 1
}

// CurrentBeat returns the beat the sequencer is currently on.
func (s *Sequencer) CurrentBeat() int {
	return s.currentBeat
}
