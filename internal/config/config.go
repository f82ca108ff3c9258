// Package config loads and saves solve settings from YAML and provides
// named presets for common droplet scenarios.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dropsim/internal/fluid"
	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shoot"
)

const (
	DefaultContactAngleDeg = 90.0
	DefaultTargetKind      = "volume"
	DefaultTargetValue     = 2e-9 // 2 microliters
)

type Config struct {
	Fluid           string       `yaml:"fluid"`
	Physical        FluidConfig  `yaml:"physical"`
	ContactAngleDeg float64      `yaml:"contact_angle_deg"`
	Target          TargetConfig `yaml:"target"`
	Solver          SolverConfig `yaml:"solver"`
	Sweep           SweepConfig  `yaml:"sweep"`
}

// FluidConfig overrides individual physical parameters of the named
// fluid; zero fields keep the preset value.
type FluidConfig struct {
	SurfaceTension float64 `yaml:"surface_tension"`
	DensityLiquid  float64 `yaml:"density_liquid"`
	DensityVapour  float64 `yaml:"density_vapour"`
	Gravity        float64 `yaml:"gravity"`
}

type TargetConfig struct {
	Kind  string  `yaml:"kind"` // volume, height, contact_radius, apex_radius
	Value float64 `yaml:"value"`
}

type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	ResidualTol   float64 `yaml:"residual_tolerance"`
	StepTol       float64 `yaml:"step_tolerance"`
	MaxPhiDeg     float64 `yaml:"max_phi_deg"`
	ODETolerance  float64 `yaml:"ode_tolerance"`
	InitialGuess  float64 `yaml:"initial_guess"`
}

type SweepConfig struct {
	ApexRadiusMM Range `yaml:"apex_radius_mm"`
	ContactDeg   Range `yaml:"contact_angle_deg"`
	Workers      int   `yaml:"workers"`
}

// Range is an inclusive from/to sweep with a fixed step.
type Range struct {
	From float64 `yaml:"from"`
	Step float64 `yaml:"step"`
	To   float64 `yaml:"to"`
}

// Values expands the range; a zero Step yields the single From value.
func (r Range) Values() []float64 {
	if r.Step <= 0 || r.To < r.From {
		return []float64{r.From}
	}
	// Round the count so an endpoint that lands a few ulps short of To
	// (0.2 steps, say) is not truncated away.
	n := int(math.Floor((r.To-r.From)/r.Step+0.5)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := r.From + float64(i)*r.Step
		if v > r.To {
			v = r.To
		}
		out = append(out, v)
	}
	return out
}

func DefaultConfig() *Config {
	sc := shoot.DefaultConfig()
	return &Config{
		Fluid:           "water",
		ContactAngleDeg: DefaultContactAngleDeg,
		Target: TargetConfig{
			Kind:  DefaultTargetKind,
			Value: DefaultTargetValue,
		},
		Solver: SolverConfig{
			MaxIterations: sc.MaxIterations,
			ResidualTol:   sc.ResidualTol,
			StepTol:       sc.StepTol,
			MaxPhiDeg:     sc.MaxPhi * 180 / math.Pi,
			ODETolerance:  sc.ODETolerance,
		},
		Sweep: SweepConfig{
			ApexRadiusMM: Range{From: 1.0, Step: 0.5, To: 3.0},
			ContactDeg:   Range{From: 60, Step: 30, To: 150},
			Workers:      4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetFluid resolves the named fluid with any physical overrides applied.
func (c *Config) GetFluid() (fluid.Parameters, error) {
	p, err := fluid.ByName(c.Fluid)
	if err != nil {
		return fluid.Parameters{}, err
	}
	if c.Physical.SurfaceTension != 0 {
		p.SurfaceTension = c.Physical.SurfaceTension
	}
	if c.Physical.DensityLiquid != 0 {
		p.DensityLiquid = c.Physical.DensityLiquid
	}
	if c.Physical.DensityVapour != 0 {
		p.DensityVapour = c.Physical.DensityVapour
	}
	if c.Physical.Gravity != 0 {
		p.Gravity = c.Physical.Gravity
	}
	return p, nil
}

// GetTarget builds the shooting target from the config.
func (c *Config) GetTarget() (shoot.Target, error) {
	switch c.Target.Kind {
	case "volume":
		return shoot.VolumeTarget{Volume: c.Target.Value}, nil
	case "height":
		return shoot.HeightTarget{Height: c.Target.Value}, nil
	case "contact_radius":
		return shoot.ContactRadiusTarget{Radius: c.Target.Value}, nil
	}
	return nil, fmt.Errorf("%w: unknown target kind %q", laplace.ErrBadParameters, c.Target.Kind)
}

// GetSolverConfig maps the YAML solver section onto shoot.Config.
func (c *Config) GetSolverConfig() shoot.Config {
	sc := shoot.DefaultConfig()
	if c.Solver.MaxIterations > 0 {
		sc.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.ResidualTol > 0 {
		sc.ResidualTol = c.Solver.ResidualTol
	}
	if c.Solver.StepTol > 0 {
		sc.StepTol = c.Solver.StepTol
	}
	if c.Solver.MaxPhiDeg > 0 {
		sc.MaxPhi = c.Solver.MaxPhiDeg * math.Pi / 180
	}
	if c.Solver.ODETolerance > 0 {
		sc.ODETolerance = c.Solver.ODETolerance
	}
	if c.Solver.InitialGuess > 0 {
		sc.InitialGuess = c.Solver.InitialGuess
	}
	return sc
}

// ContactAngle returns the configured contact angle in radians.
func (c *Config) ContactAngle() float64 {
	return c.ContactAngleDeg * math.Pi / 180
}
