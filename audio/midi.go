package audio

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// velocity of a click at 0dB gain offset
const baseVelocity = 100

// MIDIOut clicks an external sound module instead of the local speaker. The
// tone pitch maps to the MIDI note number and the gain offset scales the
// velocity.
type MIDIOut struct {
	mu      sync.Mutex
	port    string
	channel uint8
	send    func(msg gomidi.Message) error
}

// NewMIDIOut returns a MIDI emitter for the named output port. An empty port
// name selects the first available port.
func NewMIDIOut(port string, channel uint8) *MIDIOut {
	return &MIDIOut{port: port, channel: channel}
}

// Ready reports whether the output port has been opened.
func (m *MIDIOut) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.send != nil
}

// Resume opens the output port. Idempotent and retryable on failure.
func (m *MIDIOut) Resume(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send != nil {
		return nil
	}

	outPort, err := gomidi.FindOutPort(m.port)
	if err != nil {
		return errors.Wrapf(err, "finding MIDI out port %q", m.port)
	}
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return errors.Wrapf(err, "opening MIDI out port %q", m.port)
	}

	m.send = send
	return nil
}

// Close releases the MIDI driver.
func (m *MIDIOut) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send == nil {
		return
	}
	m.send = nil
	gomidi.CloseDriver()
}

// Emit sends a NoteOn for the tone and schedules the matching NoteOff after
// the tone's duration.
func (m *MIDIOut) Emit(tone Tone) error {
	m.mu.Lock()
	send := m.send
	m.mu.Unlock()

	if send == nil {
		return errors.New("MIDI out not ready")
	}

	key, err := NoteNumber(tone.Pitch)
	if err != nil {
		return err
	}
	dur, err := NoteDuration(tone.Duration)
	if err != nil {
		return err
	}

	if err := send(gomidi.NoteOn(m.channel, key, velocityFor(tone.GainDB))); err != nil {
		return errors.Wrap(err, "sending NoteOn")
	}
	time.AfterFunc(dur, func() {
		m.mu.Lock()
		send := m.send
		m.mu.Unlock()
		if send != nil {
			send(gomidi.NoteOff(m.channel, key))
		}
	})
	return nil
}

func velocityFor(gainDB float64) uint8 {
	v := int(baseVelocity * gainAmplitude(gainDB))
	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}
