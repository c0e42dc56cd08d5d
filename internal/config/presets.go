package config

import "sort"

// presets are named starting conditions covering the phases the model can
// reach. Values not set here keep their defaults.
var presets = map[string]*Config{
	"cold-solid": {
		Cells:       4,
		Scale:       1.0,
		Temperature: 20.0,
		Ensemble:    "nvt",
		Steps:       2000,
		SampleEvery: 20,
		Replicas:    DefaultReplicas,
	},
	"liquid": {
		Cells:       4,
		Scale:       1.05,
		Temperature: 100.0,
		Ensemble:    "nvt",
		Steps:       2000,
		SampleEvery: 20,
		Replicas:    DefaultReplicas,
	},
	"hot-gas": {
		Cells:       4,
		Scale:       1.3,
		Temperature: 300.0,
		Ensemble:    "nvt",
		Steps:       2000,
		SampleEvery: 20,
		Replicas:    DefaultReplicas,
	},
	"microcanonical": {
		Cells:       4,
		Scale:       1.0,
		Temperature: 50.0,
		Ensemble:    "nve",
		Steps:       5000,
		SampleEvery: 50,
		Replicas:    DefaultReplicas,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
