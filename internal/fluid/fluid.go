// Package fluid defines the physical parameters of a droplet system and
// the derived capillary quantities.
package fluid

import (
	"fmt"
	"math"

	"github.com/san-kum/dropsim/internal/laplace"
)

// Standard conditions, SI units.
const (
	StandardGravity = 9.81      // m/s^2
	DensityWater    = 997.0474  // kg/m^3 at 25 C
	DensityAir      = 1.1839    // kg/m^3 at 25 C
	DensityMercury  = 13534.0   // kg/m^3
	DensityEthanol  = 789.0     // kg/m^3
	TensionWater    = 72.8e-3   // N/m at 25 C
	TensionMercury  = 486.5e-3  // N/m
	TensionEthanol  = 22.39e-3  // N/m
)

// Parameters describes the two-phase system a droplet sits in.
// SurfaceTension is the planar surface tension of the liquid.
type Parameters struct {
	SurfaceTension float64 // N/m
	DensityLiquid  float64 // kg/m^3
	DensityVapour  float64 // kg/m^3
	Gravity        float64 // m/s^2
}

func Water() Parameters {
	return Parameters{
		SurfaceTension: TensionWater,
		DensityLiquid:  DensityWater,
		DensityVapour:  DensityAir,
		Gravity:        StandardGravity,
	}
}

func Mercury() Parameters {
	return Parameters{
		SurfaceTension: TensionMercury,
		DensityLiquid:  DensityMercury,
		DensityVapour:  DensityAir,
		Gravity:        StandardGravity,
	}
}

func Ethanol() Parameters {
	return Parameters{
		SurfaceTension: TensionEthanol,
		DensityLiquid:  DensityEthanol,
		DensityVapour:  DensityAir,
		Gravity:        StandardGravity,
	}
}

// ByName returns a named preset fluid against air.
func ByName(name string) (Parameters, error) {
	switch name {
	case "water":
		return Water(), nil
	case "mercury":
		return Mercury(), nil
	case "ethanol":
		return Ethanol(), nil
	}
	return Parameters{}, fmt.Errorf("%w: unknown fluid %q", laplace.ErrBadParameters, name)
}

// Names lists the preset fluids.
func Names() []string {
	return []string{"water", "mercury", "ethanol"}
}

func (p Parameters) Validate() error {
	if p.SurfaceTension <= 0 {
		return fmt.Errorf("%w: surface tension must be positive, got %g", laplace.ErrBadParameters, p.SurfaceTension)
	}
	if p.DeltaRho() == 0 {
		return fmt.Errorf("%w: density difference must be nonzero", laplace.ErrBadParameters)
	}
	if p.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %g", laplace.ErrBadParameters, p.Gravity)
	}
	if math.IsNaN(p.SurfaceTension) || math.IsNaN(p.DensityLiquid) || math.IsNaN(p.DensityVapour) || math.IsNaN(p.Gravity) {
		return fmt.Errorf("%w: non-finite parameter", laplace.ErrBadParameters)
	}
	return nil
}

// DeltaRho is the density difference between liquid and vapour phases.
func (p Parameters) DeltaRho() float64 {
	return p.DensityLiquid - p.DensityVapour
}

// CapillaryLength is sqrt(sigma/(drho*g)), the scale at which surface
// tension and gravity balance (~2.7 mm for water in air).
func (p Parameters) CapillaryLength() float64 {
	return math.Sqrt(p.SurfaceTension / (math.Abs(p.DeltaRho()) * p.Gravity))
}

// BondNumber is the dimensionless gravity parameter for a drop with apex
// radius of curvature r0, drho*g*r0^2/sigma. Also known as the Eotvos
// number.
func (p Parameters) BondNumber(r0 float64) float64 {
	return p.DeltaRho() * p.Gravity * r0 * r0 / p.SurfaceTension
}
