package engine

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/tempohq/takt/audio"
	"github.com/tempohq/takt/logger"
	"github.com/tempohq/takt/rhythm"
)

// State is the playback lifecycle state.
type State int

const (
	// StateUninitialized means the audio engine has not been warmed up yet.
	StateUninitialized State = iota
	// StateStopped means the engine is ready but silent.
	StateStopped
	// StateRunning means a tick timer is armed.
	StateRunning
)

// ErrNotInitialized is returned by Start before Initialize has succeeded.
var ErrNotInitialized = errors.New("playback engine not initialized")

// AudioEngine gates sound output. Resume performs the one-time warm-up of
// the output path and may be retried on failure.
type AudioEngine interface {
	Ready() bool
	Resume(ctx context.Context) error
}

// SoundEmitter produces one short click with the given timbre.
type SoundEmitter interface {
	Emit(tone audio.Tone) error
}

// Config holds the externally supplied playback configuration. The engine
// clamps the tempo into the supported range before using it.
type Config struct {
	TempoBPM      float64
	TimeSignature rhythm.TimeSignature

	// GraceDelay postpones the first click of a session to let the audio
	// engine settle. Zero means click immediately.
	GraceDelay time.Duration

	// Timbre profiles for regular beats and the accented downbeat.
	RegularTone audio.Tone
	AccentTone  audio.Tone
}

// Snapshot is the read-only projection of the engine state exposed for
// rendering. The UI observes it; it never owns beat state.
type Snapshot struct {
	CurrentBeat        int
	BeatsPerMeasure    int
	Running            bool
	Initialized        bool
	TempoBPM           float64
	TimeSignatureLabel string

	// Ticks counts clicks emitted since the engine was created, across
	// sessions. Lets observers detect ticks that land on the same beat
	// number.
	Ticks int64
}

// session carries everything one playback run needs so that a restart never
// shares timer state with its predecessor.
type session struct {
	interval time.Duration
	beats    int
	grace    time.Duration
	regular  audio.Tone
	accent   audio.Tone
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Engine owns the single periodic timer driving beat ticks. It translates
// the tempo into an inter-beat interval, restarts the timer when the tempo
// or time signature changes while running, and reports each tick's accent
// decision to the sound emitter.
type Engine struct {
	mu    sync.Mutex
	state State
	cfg   Config
	seq   *rhythm.Sequencer
	ticks int64

	// stopCh/doneCh belong to the active session; nil while not running
	stopCh chan struct{}
	doneCh chan struct{}

	clock   clock.WithTicker
	audio   AudioEngine
	emitter SoundEmitter
	log     *logrus.Entry
}

// New creates a stopped, uninitialized engine. Pass clock.RealClock{} for
// real playback; tests inject a fake clock.
func New(cfg Config, audioEngine AudioEngine, emitter SoundEmitter, clk clock.WithTicker) *Engine {
	cfg.TempoBPM = rhythm.ClampTempo(cfg.TempoBPM)
	return &Engine{
		state:   StateUninitialized,
		cfg:     cfg,
		seq:     rhythm.NewSequencer(),
		clock:   clk,
		audio:   audioEngine,
		emitter: emitter,
		log:     logger.GetProjectLogger(),
	}
}

// Initialize warms up the audio engine. On failure the engine stays
// uninitialized and the caller may retry. Calling it again once initialized
// is a no-op.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateUninitialized {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	if !e.audio.Ready() {
		if err := e.audio.Resume(ctx); err != nil {
			return errors.Wrap(err, "audio engine unavailable")
		}
	}

	e.mu.Lock()
	if e.state == StateUninitialized {
		e.state = StateStopped
	}
	e.mu.Unlock()
	return nil
}

// Start resets the sequencer to the downbeat and arms the tick timer. The
// first click of a session is always the accented downbeat and does not go
// through the sequencer. Calling Start while running tears the old timer
// down first, so at most one timer is ever armed.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotInitialized
	}
	running := e.state == StateRunning
	e.mu.Unlock()

	if running {
		e.Stop()
	}

	e.mu.Lock()
	e.seq.Reset()
	s := session{
		interval: rhythm.BeatInterval(e.cfg.TempoBPM),
		beats:    e.cfg.TimeSignature.BeatsPerMeasure,
		grace:    e.cfg.GraceDelay,
		regular:  e.cfg.RegularTone,
		accent:   e.cfg.AccentTone,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	e.stopCh, e.doneCh = s.stopCh, s.doneCh
	e.state = StateRunning
	e.mu.Unlock()

	go e.run(s)
	return nil
}

// Stop cancels the tick timer and resets the sequencer to the downbeat. When
// Stop returns the old timer can never fire again.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return
	}
	e.state = StateStopped
	close(e.stopCh)
	done := e.doneCh
	e.stopCh, e.doneCh = nil, nil
	e.mu.Unlock()

	<-done

	e.mu.Lock()
	e.seq.Reset()
	e.mu.Unlock()
}

// SetTempo clamps the requested tempo into the supported range and, if
// playback is running, restarts it so the timer picks up the recomputed
// interval. The accent cycle restarts on the downbeat.
func (e *Engine) SetTempo(bpm float64) {
	bpm = rhythm.ClampTempo(bpm)

	e.mu.Lock()
	e.cfg.TempoBPM = bpm
	running := e.state == StateRunning
	e.mu.Unlock()

	if running {
		e.restart()
	}
}

// SetTimeSignature switches to another preset signature, restarting playback
// if running so the accent cycle realigns to beat 1.
func (e *Engine) SetTimeSignature(sig rhythm.TimeSignature) {
	e.mu.Lock()
	e.cfg.TimeSignature = sig
	running := e.state == StateRunning
	e.mu.Unlock()

	if running {
		e.restart()
	} else {
		e.mu.Lock()
		e.seq.Reset()
		e.mu.Unlock()
	}
}

// Snapshot returns the current read-only view of the engine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		CurrentBeat:        e.seq.CurrentBeat(),
		BeatsPerMeasure:    e.cfg.TimeSignature.BeatsPerMeasure,
		Running:            e.state == StateRunning,
		Initialized:        e.state != StateUninitialized,
		TempoBPM:           e.cfg.TempoBPM,
		TimeSignatureLabel: e.cfg.TimeSignature.Label,
		Ticks:              e.ticks,
	}
}

func (e *Engine) restart() {
	e.Stop()
	if err := e.Start(); err != nil {
		e.log.Errorf("restarting playback: %v", err)
	}
}

// run is the tick loop of one session. It emits the opening downbeat, then
// advances the sequencer on every timer fire until the session is stopped or
// a tick fails hard.
func (e *Engine) run(s session) {
	defer close(s.doneCh)

	if s.grace > 0 {
		t := e.clock.NewTimer(s.grace)
		defer t.Stop()
		select {
		case <-s.stopCh:
			return
		case <-t.C():
		}
	}

	if !e.tick(s, true) {
		e.forceStop(s)
		return
	}

	ticker := e.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C():
			if !e.tick(s, false) {
				e.forceStop(s)
				return
			}
		}
	}
}

// tick emits one click and reports whether the session may continue. An
// emitter error is logged and ticking continues; a panic anywhere in the
// tick path stops the session rather than leaving a malfunctioning timer
// armed.
func (e *Engine) tick(s session, opening bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("tick panicked: %v, stopping playback", r)
			ok = false
		}
	}()

	beat, accent := 1, true
	if !opening {
		e.mu.Lock()
		beat, accent = e.seq.Advance(s.beats)
		e.mu.Unlock()
	}

	tone := s.regular
	if accent {
		tone = s.accent
	}
	if err := e.emitter.Emit(tone); err != nil {
		e.log.Warnf("beat %d: click emission failed: %v", beat, err)
	}

	e.mu.Lock()
	e.ticks++
	e.mu.Unlock()
	return true
}

// forceStop transitions to Stopped from inside the run goroutine. Only the
// session that is still current may do so; a racing Stop/Start has already
// replaced the channels.
func (e *Engine) forceStop(s session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopCh == s.stopCh {
		e.state = StateStopped
		e.stopCh, e.doneCh = nil, nil
		e.seq.Reset()
	}
}
