package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"single": func() *Config {
		c := DefaultConfig()
		c.Count = 1
		return c
	}(),
	"grid": func() *Config {
		c := DefaultConfig()
		c.Count = 100
		c.Layout.Spacing = 8
		return c
	}(),
	"stress": func() *Config {
		c := DefaultConfig()
		c.Count = 2000
		c.Workers = 4
		return c
	}(),
	"canonical": func() *Config {
		c := DefaultConfig()
		c.Variant = "hamiltonian"
		return c
	}(),
	"heavy-tip": func() *Config {
		c := DefaultConfig()
		c.Physics.M2 = 3
		c.Physics.L2 = 0.6
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
