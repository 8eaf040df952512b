package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/ease"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tempohq/takt/engine"
	"github.com/tempohq/takt/rhythm"
)

var (
	appStyle    = lipgloss.NewStyle().Margin(1, 2, 0, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	accentFlash, _  = colorful.Hex("#ff5f87")
	regularFlash, _ = colorful.Hex("#5fafff")
	idleColor, _    = colorful.Hex("#585858")
)

func (m Model) View() string {
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(titleStyle.Render("takt") + "\n\n")
	b.WriteString(fmt.Sprintf("BPM: %.0f    Time: %s    %s\n\n",
		snap.TempoBPM, snap.TimeSignatureLabel, statusStyle.Render(statusWord(snap))))
	b.WriteString(m.beatStrip() + "\n\n")
	b.WriteString(m.progress.ViewAs(measurePhase(snap.CurrentBeat, snap.BeatsPerMeasure)) + "\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("\n%v", m.err)) + "\n")
	}

	b.WriteString(helpStyle.Render("space start/stop · [ ] and arrows tempo · (t)ime signature · (i)nit audio · (q)uit"))
	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}

func (m Model) beatStrip() string {
	snap := m.snapshot
	cells := make([]string, 0, snap.BeatsPerMeasure)
	for beat := 1; beat <= snap.BeatsPerMeasure; beat++ {
		glyph, color := "○", idleColor
		if snap.Running && beat == snap.CurrentBeat {
			glyph, color = "●", m.pulseColor()
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))
		cells = append(cells, style.Render(fmt.Sprintf("%s %d", glyph, beat)))
	}
	return strings.Join(cells, "  ")
}

// pulseColor fades the current beat marker from its flash color back toward
// idle over one beat interval.
func (m Model) pulseColor() colorful.Color {
	flash := regularFlash
	if m.snapshot.CurrentBeat == 1 {
		flash = accentFlash
	}

	interval := rhythm.BeatInterval(m.snapshot.TempoBPM)
	t := float64(time.Since(m.lastBeatAt)) / float64(interval)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return flash.BlendLuv(idleColor, ease.OutQuad(t))
}

func measurePhase(beat, beats int) float64 {
	if beats <= 1 {
		return 1
	}
	return float64(beat-1) / float64(beats-1)
}

func statusWord(snap engine.Snapshot) string {
	switch {
	case !snap.Initialized:
		return "audio not ready"
	case snap.Running:
		return "playing"
	default:
		return "stopped"
	}
}
