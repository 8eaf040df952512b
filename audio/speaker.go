package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const sampleRate beep.SampleRate = 44100

// peak amplitude of a click at 0dB gain offset, headroom for overlap
const baseAmplitude = 0.6

// ErrSpeakerNotReady is returned when Emit is called before Resume has
// warmed up the output device.
var ErrSpeakerNotReady = errors.New("speaker not ready")

// Speaker plays click tones through the system audio device. Resume performs
// the one-time device warm-up and may be retried on failure; Emit is
// fire-and-forget. Tone buffers are rendered once and cached.
type Speaker struct {
	mu      sync.Mutex
	ready   bool
	buffers map[Tone]*beep.Buffer
}

// NewSpeaker returns a Speaker that still needs Resume before it can emit.
func NewSpeaker() *Speaker {
	return &Speaker{buffers: make(map[Tone]*beep.Buffer)}
}

// Ready reports whether the output device has been warmed up.
func (s *Speaker) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Resume initializes the output device. Idempotent: once the speaker is
// ready further calls are no-ops.
func (s *Speaker) Resume(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}
	s.ready = true
	return nil
}

// Close releases the output device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.ready = false
}

// Emit plays one short click with the given timbre. The tone's sample buffer
// is rendered on first use and reused afterwards.
func (s *Speaker) Emit(tone Tone) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrSpeakerNotReady
	}
	buf, ok := s.buffers[tone]
	if !ok {
		var err error
		buf, err = renderTone(tone)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.buffers[tone] = buf
	}
	s.mu.Unlock()

	speaker.Play(buf.Streamer(0, buf.Len()))
	return nil
}

// renderTone synthesizes a sine burst with a linear decay envelope into a
// reusable buffer.
func renderTone(tone Tone) (*beep.Buffer, error) {
	freq, err := Frequency(tone.Pitch)
	if err != nil {
		return nil, err
	}
	dur, err := NoteDuration(tone.Duration)
	if err != nil {
		return nil, err
	}

	amp := baseAmplitude * gainAmplitude(tone.GainDB)
	total := sampleRate.N(dur)
	step := freq / float64(sampleRate)

	var phase float64
	pos := 0
	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			envelope := 1 - float64(pos)/float64(total)
			v := amp * envelope * math.Sin(2*math.Pi*phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase >= 1 {
				phase--
			}
			pos++
			n++
		}
		return n, true
	})

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(gen)
	return buf, nil
}
