package config

import "sort"

var Presets = map[string]*Config{
	"bacteria": {
		Description:       "bacterial growth in a culture",
		GrowthRate:        0.5,
		CarryingCapacity:  1000,
		InitialPopulation: 10,
		MaxTime:           50,
		Dt:                0.1,
	},
	"city": {
		Description:       "population growth of a city",
		GrowthRate:        0.03,
		CarryingCapacity:  100000,
		InitialPopulation: 5000,
		MaxTime:           200,
		Dt:                0.1,
	},
	"fish": {
		Description:       "fish growth in a pond",
		GrowthRate:        0.2,
		CarryingCapacity:  500,
		InitialPopulation: 20,
		MaxTime:           50,
		Dt:                0.1,
	},
}

// GetPreset returns a copy of the named preset with default output
// settings, or nil if no such preset exists.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	cfg.Output = DefaultConfig().Output
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
