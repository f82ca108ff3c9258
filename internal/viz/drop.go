package viz

import (
	"github.com/san-kum/dropsim/internal/laplace"
)

// RenderDrop draws the mirrored drop outline on a Braille canvas, apex
// at the top, contact line at the bottom.
func RenderDrop(prof []laplace.ProfilePoint, width, height int) string {
	canvas := NewCanvas(width, height)
	DrawDrop(canvas, prof)
	return canvas.String()
}

// DrawDrop rasterizes the profile onto an existing canvas, fitting the
// full drop width and height with a small margin.
func DrawDrop(canvas *Canvas, prof []laplace.ProfilePoint) {
	if len(prof) < 2 {
		return
	}

	maxR, maxZ := 0.0, 0.0
	for _, p := range prof {
		if p.R > maxR {
			maxR = p.R
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	if maxR == 0 || maxZ == 0 {
		return
	}

	subW := canvas.Width * 2
	subH := canvas.Height * 4
	margin := 2

	scaleX := float64(subW-2*margin) / (2 * maxR)
	scaleY := float64(subH-2*margin) / maxZ
	// Preserve aspect ratio; braille cells are half as wide as tall.
	if scaleX < scaleY {
		scaleY = scaleX
	} else {
		scaleX = scaleY
	}

	cx := subW / 2
	for _, p := range prof {
		x := int(p.R * scaleX)
		y := margin + int(p.Z*scaleY)
		canvas.Set(cx+x, y)
		canvas.Set(cx-x, y)
	}

	// Contact line.
	baseY := margin + int(maxZ*scaleY)
	halfBase := int(float64(subW) * 0.45)
	for x := cx - halfBase; x <= cx+halfBase; x += 3 {
		canvas.Set(x, baseY+2)
	}
}
