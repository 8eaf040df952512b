package main

import (
	"context"
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/utils/clock"

	"github.com/tempohq/takt/audio"
	"github.com/tempohq/takt/config"
	"github.com/tempohq/takt/engine"
	"github.com/tempohq/takt/logger"
	"github.com/tempohq/takt/rhythm"
	"github.com/tempohq/takt/tui"
)

var (
	tempo    = flag.Float64("tempo", config.DefaultTempoBPM, "beats per minute, clamped to [40, 240]")
	timesig  = flag.String("timesig", config.DefaultTimeSignature, "time signature preset (2/4, 3/4, 4/4, 5/4, 7/4, 6/8, 3/8)")
	grace    = flag.Duration("grace", 0, "delay before the first click of a session, e.g. 30ms")
	useMIDI  = flag.Bool("midi", false, "click an external MIDI sound module instead of the speaker")
	midiPort = flag.String("midi-port", "", "MIDI output port name (first available if empty)")
)

func main() {
	flag.Parse()
	ctx := context.Background()
	Run(ctx)
}

// Run wires the metronome together and hands control to the TUI.
func Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// initialize the logger
	logger := logger.GetProjectLogger()

	// initialize the global config
	cfg, err := config.NewTaktConfig()
	if err != nil {
		logger.Fatalf("error creating config. err='%v'", err)
	}

	sig, err := rhythm.ParseTimeSignature(*timesig)
	if err != nil {
		logger.Fatalf("invalid time signature. err='%v'", err)
	}
	cfg.TempoBPM = rhythm.ClampTempo(*tempo)
	cfg.TimeSignature = sig
	cfg.GraceDelay = *grace
	cfg.MIDI = *useMIDI
	cfg.MIDIPort = *midiPort

	// pick the sound output
	var (
		audioEngine engine.AudioEngine
		emitter     engine.SoundEmitter
	)
	if cfg.MIDI {
		logger.Infof("Using MIDI output, port=%q", cfg.MIDIPort)
		out := audio.NewMIDIOut(cfg.MIDIPort, cfg.MIDIChannel)
		defer out.Close()
		audioEngine, emitter = out, out
	} else {
		sp := audio.NewSpeaker()
		defer sp.Close()
		audioEngine, emitter = sp, sp
	}

	eng := engine.New(engine.Config{
		TempoBPM:      cfg.TempoBPM,
		TimeSignature: cfg.TimeSignature,
		GraceDelay:    cfg.GraceDelay,
		RegularTone:   cfg.RegularTone,
		AccentTone:    cfg.AccentTone,
	}, audioEngine, emitter, clock.RealClock{})

	if err := eng.Initialize(ctx); err != nil {
		// not fatal, the user can retry from the TUI
		logger.Errorf("audio engine unavailable: %v (press i to retry)", err)
	}

	if err := tea.NewProgram(tui.NewModel(eng)).Start(); err != nil {
		logger.Errorf("error running program: %v", err)
		eng.Stop()
		os.Exit(1)
	}

	eng.Stop()
	logger.Println("shutting down takt")
}
