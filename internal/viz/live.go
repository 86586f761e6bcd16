// Package viz is the terminal front end: a live orbit view consuming the
// registry's telemetry snapshots.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/orbitlab/orbitsim/internal/config"
	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	frameRate    = 30
	historyCap   = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).Width(40)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	orbitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	escapingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	crashedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the live view: one registry tick per frame, then a
// redraw from the returned telemetry.
type Model struct {
	reg       *sim.Registry
	cfg       *config.Config
	scenario  string
	canvas    *Canvas
	telemetry []sim.BodyTelemetry
	tracked   int
	timeScale float64
	running   bool
	altitudes []float64
}

func NewModel(cfg *config.Config, scenario string) Model {
	reg := sim.New(cfg.RegistryConfig())
	cfg.Populate(reg)

	return Model{
		reg:       reg,
		cfg:       cfg,
		scenario:  scenario,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		timeScale: cfg.TimeScale,
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reg.Reset()
			m.cfg.Populate(m.reg)
			m.telemetry = nil
			m.altitudes = nil
			m.tracked = 0
		case "tab":
			if n := m.reg.Len(); n > 0 {
				m.tracked = (m.tracked + 1) % n
			}
		case "+", "=":
			m.timeScale *= 2
		case "-":
			if m.timeScale > 0.25 {
				m.timeScale /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.telemetry = m.reg.Tick(1.0/frameRate, m.timeScale)
			m.trackAltitude()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) trackAltitude() {
	if m.tracked >= len(m.telemetry) {
		return
	}
	m.altitudes = append(m.altitudes, m.telemetry[m.tracked].Altitude/1000)
	if len(m.altitudes) > historyCap {
		m.altitudes = m.altitudes[1:]
	}
}

func (m Model) View() string {
	m.drawOrbits()

	left := headerStyle.Render(fmt.Sprintf("orbitsim — %s", m.scenario)) + "\n" + m.canvas.String()
	right := statsStyle.Render(m.statsPane())

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("space pause · r reset · tab body · +/- time scale · q quit")
	return view + "\n" + help + "\n"
}

// drawOrbits projects the X/Y orbital plane onto the canvas: Earth as a
// filled disc at the centre, then each trail and body.
func (m Model) drawOrbits() {
	m.canvas.Clear()

	pxW, pxH := canvasWidth*2, canvasHeight*4
	cx, cy := pxW/2, pxH/2

	// Fit the widest orbit with some margin, never tighter than 2.5
	// Earth radii.
	extent := 2.5 * orbit.EarthRadius
	for _, t := range m.telemetry {
		if r := t.Position.Norm() * 1.2; r > extent {
			extent = r
		}
	}
	scale := float64(pxH) / (2 * extent)

	m.canvas.FillCircle(cx, cy, int(orbit.EarthRadius*scale))

	for i := range m.telemetry {
		for _, p := range m.reg.Trail(i) {
			m.canvas.Set(cx+int(p.X*scale), cy-int(p.Y*scale))
		}
	}
	for _, t := range m.telemetry {
		x := cx + int(t.Position.X*scale)
		y := cy - int(t.Position.Y*scale)
		m.canvas.FillCircle(x, y, 1)
	}
}

func (m Model) statsPane() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("telemetry") + "\n")

	if m.tracked < len(m.telemetry) {
		t := m.telemetry[m.tracked]
		row := func(label, value string) {
			b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
		}
		row("body", fmt.Sprintf("%d of %d", t.ID+1, len(m.telemetry)))
		row("altitude", fmt.Sprintf("%.1f km", t.Altitude/1000))
		row("speed", fmt.Sprintf("%.1f m/s", t.Speed))
		row("v_escape", fmt.Sprintf("%.1f m/s", t.EscapeVelocity))
		row("density", fmt.Sprintf("%.3e kg/m³", t.Density))
		row("status", statusStyle(t.Status).Render(t.Status.String()))
		row("time", fmt.Sprintf("%.0f s", m.reg.Elapsed()))
		row("scale", fmt.Sprintf("%.2gx", m.timeScale))
	} else {
		b.WriteString(valueStyle.Render("no bodies") + "\n")
	}

	if len(m.altitudes) > 2 {
		b.WriteString("\n" + asciigraph.Plot(m.altitudes,
			asciigraph.Height(7),
			asciigraph.Width(32),
			asciigraph.Caption("altitude (km)"),
		))
	}
	return b.String()
}

func statusStyle(s orbit.Status) lipgloss.Style {
	switch s {
	case orbit.StatusEscaping:
		return escapingStyle
	case orbit.StatusCrashed:
		return crashedStyle
	default:
		return orbitingStyle
	}
}
