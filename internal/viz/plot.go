package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shoot"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// ProfilePlot renders r(s) and z(s) line charts for a profile.
func ProfilePlot(prof []laplace.ProfilePoint, width, height int) string {
	if len(prof) == 0 {
		return "empty profile"
	}

	rs := make([]float64, len(prof))
	zs := make([]float64, len(prof))
	for i, p := range prof {
		rs[i] = p.R * 1e3
		zs[i] = p.Z * 1e3
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(rs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("radius r(s), mm"),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(zs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("depth z(s), mm"),
	))
	return graphStyle.Render(sb.String())
}

// Summary renders a styled block of the solution's headline numbers.
func Summary(sol *shoot.Solution) string {
	rows := []struct {
		label string
		value string
	}{
		{"apex radius", fmt.Sprintf("%.6g mm", sol.ApexRadius*1e3)},
		{"Bond number", fmt.Sprintf("%.6g", sol.Bond)},
		{"contact angle", fmt.Sprintf("%.2f deg", sol.ContactAngle*180/math.Pi)},
		{"volume", fmt.Sprintf("%.6g uL", sol.Volume()*1e9)},
		{"surface area", fmt.Sprintf("%.6g mm2", sol.SurfaceArea()*1e6)},
		{"height", fmt.Sprintf("%.6g mm", sol.Height()*1e3)},
		{"max radius", fmt.Sprintf("%.6g mm", sol.MaxRadius()*1e3)},
		{"residual", fmt.Sprintf("%.3g", sol.Residual)},
		{"iterations", fmt.Sprintf("%d", sol.Iterations)},
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("solution"))
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(row.label))
		sb.WriteString(valueStyle.Render(row.value))
		sb.WriteByte('\n')
	}
	return sb.String()
}
