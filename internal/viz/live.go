// Package viz renders a live terminal view of a running simulation.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/argonmd/internal/md"
)

const historyCapacity = 120

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the system between frames and plots observable history.
type Model struct {
	sys           *md.System
	stepsPerFrame int
	fps           int

	tempHist  []float64
	totalHist []float64

	paused bool
	err    error
}

func NewModel(sys *md.System, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{sys: sys, stepsPerFrame: stepsPerFrame, fps: fps}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			m.paused = !m.paused

		case "e":
			// Switching the ensemble reinitializes the run.
			if m.sys.Ensemble() == md.NVT {
				m.sys.SetEnsemble(md.NVE)
			} else {
				m.sys.SetEnsemble(md.NVT)
			}
			m.tempHist = nil
			m.totalHist = nil
			m.err = nil

		case "+", "=":
			m.err = m.sys.SetTemperature(m.sys.TargetTemperature() + 10.0)

		case "-":
			if t := m.sys.TargetTemperature() - 10.0; t > 0 {
				m.err = m.sys.SetTemperature(t)
			}
		}
		return m, nil

	case TickMsg:
		if !m.paused && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				if err := m.sys.Step(); err != nil {
					m.err = err
					break
				}
			}
			m.tempHist = appendCapped(m.tempHist, m.sys.Temperature())
			m.totalHist = appendCapped(m.totalHist, m.sys.TotalEnergy())
		}
		return m, m.tick()
	}

	return m, nil
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[len(hist)-historyCapacity:]
	}
	return hist
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("argonmd live"))
	b.WriteString("\n")

	if len(m.tempHist) >= 2 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(
			m.tempHist,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("temperature (K)"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(
			m.totalHist,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("total energy (Ha)"),
		)))
		b.WriteString("\n")
	}

	stats := []struct {
		label string
		value string
	}{
		{"ensemble", m.sys.Ensemble().String()},
		{"particles", fmt.Sprintf("%d", m.sys.ParticleCount())},
		{"step", fmt.Sprintf("%d", m.sys.StepIndex())},
		{"time", fmt.Sprintf("%.4f ps", m.sys.ElapsedPicoseconds())},
		{"T", fmt.Sprintf("%.2f K", m.sys.Temperature())},
		{"T target", fmt.Sprintf("%.2f K", m.sys.TargetTemperature())},
		{"E total", fmt.Sprintf("%.6g Ha", m.sys.TotalEnergy())},
		{"pressure", fmt.Sprintf("%.4g atm", m.sys.Pressure())},
		{"box", fmt.Sprintf("%.4f nm", m.sys.PeriodicLength())},
	}

	var lines []string
	for _, st := range stats {
		lines = append(lines, labelStyle.Render(st.label)+valueStyle.Render(st.value))
	}
	b.WriteString(statsStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.paused {
		b.WriteString(valueStyle.Render("paused"))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause | e toggle ensemble | +/- target temperature | q quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(sys *md.System, stepsPerFrame, fps int) error {
	p := tea.NewProgram(NewModel(sys, stepsPerFrame, fps))
	_, err := p.Run()
	return err
}
