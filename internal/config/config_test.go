package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "water", cfg.Fluid)
	assert.Equal(t, DefaultContactAngleDeg, cfg.ContactAngleDeg)
	assert.Positive(t, cfg.Solver.MaxIterations)
	assert.Positive(t, cfg.Solver.ResidualTol)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drop.yaml")

	cfg := DefaultConfig()
	cfg.Fluid = "mercury"
	cfg.ContactAngleDeg = 135
	cfg.Target = TargetConfig{Kind: "height", Value: 1.2e-3}
	cfg.Solver.ResidualTol = 1e-10

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mercury", loaded.Fluid)
	assert.Equal(t, 135.0, loaded.ContactAngleDeg)
	assert.Equal(t, "height", loaded.Target.Kind)
	assert.Equal(t, 1.2e-3, loaded.Target.Value)
	assert.Equal(t, 1e-10, loaded.Solver.ResidualTol)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetFluidOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physical.Gravity = 1.62 // lunar

	p, err := cfg.GetFluid()
	require.NoError(t, err)

	assert.Equal(t, 1.62, p.Gravity)
	assert.Equal(t, 72.8e-3, p.SurfaceTension, "unset overrides keep the preset")
}

func TestGetFluidUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fluid = "slime"

	_, err := cfg.GetFluid()
	assert.Error(t, err)
}

func TestGetTarget(t *testing.T) {
	cfg := DefaultConfig()

	for _, kind := range []string{"volume", "height", "contact_radius"} {
		cfg.Target = TargetConfig{Kind: kind, Value: 1e-3}
		target, err := cfg.GetTarget()
		require.NoError(t, err, kind)
		assert.NotNil(t, target)
	}

	cfg.Target.Kind = "mass"
	_, err := cfg.GetTarget()
	assert.Error(t, err)
}

func TestContactAngleRadians(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContactAngleDeg = 180

	assert.InDelta(t, math.Pi, cfg.ContactAngle(), 1e-12)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sessile-water")
	require.NotNil(t, cfg)

	assert.Equal(t, "water", cfg.Fluid)
	assert.Equal(t, 90.0, cfg.ContactAngleDeg)
	assert.Positive(t, cfg.Solver.MaxIterations, "presets carry solver defaults")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i], "preset listing must be sorted")
	}

	for _, name := range names {
		assert.NotNil(t, GetPreset(name))
	}
}

func TestRangeValues(t *testing.T) {
	r := Range{From: 1.0, Step: 0.5, To: 2.5}
	assert.Equal(t, []float64{1.0, 1.5, 2.0, 2.5}, r.Values())

	// 0.2 is not exactly representable; the To endpoint must survive
	// the accumulated rounding of From + n*Step.
	grid := Range{From: 0.2, Step: 0.2, To: 3.0}.Values()
	assert.Len(t, grid, 15)
	assert.InDelta(t, 0.2, grid[0], 1e-12)
	assert.InDelta(t, 3.0, grid[len(grid)-1], 1e-12)

	tenth := Range{From: 0.1, Step: 0.1, To: 1.0}.Values()
	assert.Len(t, tenth, 10)
	assert.InDelta(t, 1.0, tenth[len(tenth)-1], 1e-12)

	single := Range{From: 2.0}
	assert.Equal(t, []float64{2.0}, single.Values())
}
