// Package shape computes physical quantities from droplet profiles.
//
// All functions are pure transformations of profile samples; they apply
// surface-of-revolution integrals about the symmetry axis and introduce
// no new error categories.
package shape

import (
	"math"

	"github.com/san-kum/dropsim/internal/laplace"
)

// Scale converts a dimensionless profile (scaled by the apex radius of
// curvature) into dimensional coordinates.
func Scale(prof []laplace.ProfilePoint, r0 float64) []laplace.ProfilePoint {
	out := make([]laplace.ProfilePoint, len(prof))
	for i, p := range prof {
		out[i] = laplace.ProfilePoint{S: p.S * r0, R: p.R * r0, Z: p.Z * r0, Phi: p.Phi}
	}
	return out
}

// Volume integrates pi*r^2 dz along the profile (disk method). Units
// follow the profile coordinates: a profile in meters gives m^3.
func Volume(prof []laplace.ProfilePoint) float64 {
	vol := 0.0
	for i := 1; i < len(prof); i++ {
		r0, r1 := prof[i-1].R, prof[i].R
		dz := prof[i].Z - prof[i-1].Z
		vol += 0.5 * (r0*r0 + r1*r1) * dz
	}
	return math.Pi * vol
}

// SurfaceArea integrates 2*pi*r ds along the profile, the liquid-vapour
// interface area excluding the contact disk.
func SurfaceArea(prof []laplace.ProfilePoint) float64 {
	area := 0.0
	for i := 1; i < len(prof); i++ {
		ds := prof[i].S - prof[i-1].S
		area += 0.5 * (prof[i-1].R + prof[i].R) * ds
	}
	return 2 * math.Pi * area
}

// MaxRadius is the largest radial extent, the equatorial radius for
// profiles that pass phi = pi/2.
func MaxRadius(prof []laplace.ProfilePoint) float64 {
	max := 0.0
	for _, p := range prof {
		if p.R > max {
			max = p.R
		}
	}
	return max
}

// Height is the apex-to-end vertical extent of the profile.
func Height(prof []laplace.ProfilePoint) float64 {
	if len(prof) == 0 {
		return 0
	}
	return prof[len(prof)-1].Z
}

// ContactRadius is the radial coordinate at the end of the profile,
// where the drop meets the substrate.
func ContactRadius(prof []laplace.ProfilePoint) float64 {
	if len(prof) == 0 {
		return 0
	}
	return prof[len(prof)-1].R
}

// ContactAngle is the tangent angle at the end of the profile, radians.
func ContactAngle(prof []laplace.ProfilePoint) float64 {
	if len(prof) == 0 {
		return 0
	}
	return prof[len(prof)-1].Phi
}

// EstimateVolume approximates the volume of a full drop from the Bond
// number and apex radius using the Rekhviashvili-Sokurov fit. Useful as
// an initial shooting guess; not a substitute for the profile integral.
func EstimateVolume(bond, r0, tolman float64) float64 {
	return 4.73 * math.Pow(r0, 3) / (math.Pow(bond, 0.941) + 1.028) *
		math.Exp(-2.513*math.Pow(bond, 0.398)*tolman)
}

// EstimateApexRadius inverts EstimateVolume for a target volume.
func EstimateApexRadius(bond, volume, tolman float64) float64 {
	return math.Cbrt(volume * (math.Pow(bond, 0.941) + 1.028) /
		(4.73 * math.Exp(-2.513*math.Pow(bond, 0.398)*tolman)))
}
