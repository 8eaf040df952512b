package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempohq/takt/engine"
	"github.com/tempohq/takt/rhythm"
)

const uiFPS = 30

// Model renders the engine's read-only snapshot. It is a pure observer: the
// engine owns beat position and the running flag, the model only issues
// commands and polls.
type Model struct {
	engine   *engine.Engine
	progress progress.Model

	snapshot   engine.Snapshot
	lastBeatAt time.Time
	err        error
	quitting   bool
}

func NewModel(eng *engine.Engine) Model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return Model{
		engine:   eng,
		progress: p,
		snapshot: eng.Snapshot(),
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/uiFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.engine.Stop()
			return m, tea.Quit
		case " ":
			if m.snapshot.Running {
				m.engine.Stop()
			} else {
				m.err = m.engine.Start()
			}
		case "[":
			m.engine.SetTempo(m.snapshot.TempoBPM - 1)
		case "]":
			m.engine.SetTempo(m.snapshot.TempoBPM + 1)
		case "left":
			m.engine.SetTempo(m.snapshot.TempoBPM - 5)
		case "right":
			m.engine.SetTempo(m.snapshot.TempoBPM + 5)
		case "t":
			m.engine.SetTimeSignature(rhythm.NextTimeSignature(m.snapshot.TimeSignatureLabel))
		case "i":
			m.err = m.engine.Initialize(context.Background())
		}
		m.snapshot = m.engine.Snapshot()
		return m, nil

	case tickMsg:
		snap := m.engine.Snapshot()
		if snap.Ticks != m.snapshot.Ticks {
			m.lastBeatAt = time.Time(msg)
		}
		m.snapshot = snap
		return m, tickCmd()
	}
	return m, nil
}
