package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/viz"
)

// ProfileToSVG renders a drop profile as a closed, mirrored SVG outline
// resting on a baseline. The profile is the right half of the drop from
// the apex down; the left half is its reflection across the symmetry
// axis. Coordinates may be dimensionless or scaled, the drawing is
// normalized to the given pixel size either way.
func ProfileToSVG(prof []laplace.ProfilePoint, width, height int, strokeColor string) string {
	if len(prof) < 2 {
		return ""
	}

	maxR := 0.0
	maxZ := 0.0
	for _, p := range prof {
		if p.R > maxR {
			maxR = p.R
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	if maxR == 0 || maxZ == 0 {
		return ""
	}

	// Uniform scale so the drop keeps its aspect ratio, with a 10% margin.
	pad := 0.1
	sx := float64(width) * (1 - 2*pad) / (2 * maxR)
	sy := float64(height) * (1 - 2*pad) / maxZ
	scale := sx
	if sy < scale {
		scale = sy
	}

	cx := float64(width) / 2
	baseY := float64(height) * (1 - pad)

	// z grows downward from the apex, so the apex sits at baseY - maxZ*scale
	// and the contact line on the baseline.
	toPx := func(r, z float64) (float64, float64) {
		return cx + r*scale, baseY - (maxZ-z)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Baseline under the drop.
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444444" stroke-width="1"/>
`, baseY, width, baseY))

	// Right half apex-to-contact, then left half contact-to-apex.
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))
	for i, p := range prof {
		x, y := toPx(p.R, p.Z)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	for i := len(prof) - 1; i >= 0; i-- {
		x, y := toPx(-prof[i].R, prof[i].Z)
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
	}
	sb.WriteString(` Z"/>
</svg>`)
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						px := baseX + float64(dx)*scale + scale/2
						py := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, px, py, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
