package shoot

import (
	"fmt"

	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shape"
)

// Target is the boundary condition the shooting solver drives to zero.
// Residual receives the dimensional profile of a candidate drop and its
// apex radius, and must be increasing in the apex radius near the root
// (all drop measures grow with the drop).
type Target interface {
	Name() string
	Residual(prof []laplace.ProfilePoint, apexRadius float64) float64
	Validate() error
}

// VolumeTarget matches the enclosed drop volume, m^3.
type VolumeTarget struct {
	Volume float64
}

func (t VolumeTarget) Name() string { return "volume" }

func (t VolumeTarget) Residual(prof []laplace.ProfilePoint, apexRadius float64) float64 {
	return (shape.Volume(prof) - t.Volume) / t.Volume
}

func (t VolumeTarget) Validate() error {
	if t.Volume <= 0 {
		return fmt.Errorf("%w: target volume must be positive, got %g", laplace.ErrBadParameters, t.Volume)
	}
	return nil
}

// HeightTarget matches the apex-to-contact height of the drop, m.
type HeightTarget struct {
	Height float64
}

func (t HeightTarget) Name() string { return "height" }

func (t HeightTarget) Residual(prof []laplace.ProfilePoint, apexRadius float64) float64 {
	return (shape.Height(prof) - t.Height) / t.Height
}

func (t HeightTarget) Validate() error {
	if t.Height <= 0 {
		return fmt.Errorf("%w: target height must be positive, got %g", laplace.ErrBadParameters, t.Height)
	}
	return nil
}

// ContactRadiusTarget matches the radius of the contact line, m.
type ContactRadiusTarget struct {
	Radius float64
}

func (t ContactRadiusTarget) Name() string { return "contact_radius" }

func (t ContactRadiusTarget) Residual(prof []laplace.ProfilePoint, apexRadius float64) float64 {
	return (shape.ContactRadius(prof) - t.Radius) / t.Radius
}

func (t ContactRadiusTarget) Validate() error {
	if t.Radius <= 0 {
		return fmt.Errorf("%w: target radius must be positive, got %g", laplace.ErrBadParameters, t.Radius)
	}
	return nil
}
