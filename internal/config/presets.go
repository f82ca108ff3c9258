package config

import "sort"

var Presets = map[string]*Config{
	"sessile-water": {
		Fluid:           "water",
		ContactAngleDeg: 90,
		Target:          TargetConfig{Kind: "volume", Value: 5e-9},
	},
	"bead-water": {
		Fluid:           "water",
		ContactAngleDeg: 150,
		Target:          TargetConfig{Kind: "volume", Value: 10e-9},
	},
	"spread-water": {
		Fluid:           "water",
		ContactAngleDeg: 30,
		Target:          TargetConfig{Kind: "contact_radius", Value: 2e-3},
	},
	"mercury-bead": {
		Fluid:           "mercury",
		ContactAngleDeg: 140,
		Target:          TargetConfig{Kind: "volume", Value: 2e-9},
	},
	"ethanol-film": {
		Fluid:           "ethanol",
		ContactAngleDeg: 20,
		Target:          TargetConfig{Kind: "contact_radius", Value: 3e-3},
	},
}

// GetPreset returns a copy of a named preset with solver defaults filled
// in, or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Fluid = p.Fluid
	cfg.ContactAngleDeg = p.ContactAngleDeg
	cfg.Target = p.Target
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
