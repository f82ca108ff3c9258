package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/laplace"
)

const (
	liveWidth    = 72
	liveHeight   = 22
	stepsPerTick = 4
	liveStep     = 5e-3
)

var (
	liveCanvasStyle = lipgloss.NewStyle().Padding(1, 2)
	liveStatsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveModel animates a single profile trace marching out from the apex.
type LiveModel struct {
	ode          *laplace.YoungLaplace
	integ        *integrators.RK4
	state        laplace.State
	s            float64
	apexRadius   float64
	contactAngle float64
	profile      []laplace.ProfilePoint
	canvas       *Canvas
	done         bool
	paused       bool
}

func NewLiveModel(bond, apexRadius, contactAngle float64) LiveModel {
	return LiveModel{
		ode:          laplace.NewYoungLaplace(bond),
		integ:        integrators.NewRK4(),
		state:        laplace.ApexState(),
		apexRadius:   apexRadius,
		contactAngle: contactAngle,
		profile:      []laplace.ProfilePoint{{}},
		canvas:       NewCanvas(liveWidth, liveHeight),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.state = laplace.ApexState()
			m.s = 0
			m.profile = []laplace.ProfilePoint{{}}
			m.done = false
		}
		return m, nil

	case TickMsg:
		if !m.paused && !m.done {
			for i := 0; i < stepsPerTick && !m.done; i++ {
				m.state = m.integ.Step(m.ode, m.state, m.s, liveStep)
				m.s += liveStep
				p := laplace.ProfilePoint{
					S:   m.s,
					R:   m.state[laplace.IdxR],
					Z:   m.state[laplace.IdxZ],
					Phi: m.state[laplace.IdxPhi],
				}
				m.profile = append(m.profile, p)
				if p.Phi >= m.contactAngle || !m.state.IsValid() {
					m.done = true
				}
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m LiveModel) View() string {
	m.canvas.Clear()
	DrawDrop(m.canvas, m.profile)

	last := m.profile[len(m.profile)-1]

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("young-laplace trace"))
	stats.WriteString("\n\n")
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("bond"), valueStyle.Render(fmt.Sprintf("%.4g", m.ode.Bond)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("apex radius"), valueStyle.Render(fmt.Sprintf("%.4g mm", m.apexRadius*1e3)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("arclength"), valueStyle.Render(fmt.Sprintf("%.4f", last.S)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("phi"), valueStyle.Render(fmt.Sprintf("%.1f deg", last.Phi*180/math.Pi)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("radius"), valueStyle.Render(fmt.Sprintf("%.4f", last.R)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("depth"), valueStyle.Render(fmt.Sprintf("%.4f", last.Z)))
	if m.done {
		stats.WriteString("\n")
		stats.WriteString(headerStyle.Render("contact angle reached"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		liveCanvasStyle.Render(m.canvas.String()),
		liveStatsStyle.Render(stats.String()),
	)

	return body + "\n" + helpStyle.Render("space: pause  r: restart  q: quit")
}
