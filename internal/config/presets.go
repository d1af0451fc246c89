package config

var Presets = map[string]*Config{
	"orbit": {
		Bodies: 2, Steps: 10000, Dt: 0.001, Backend: "single",
		G: 1.0, Softening: 1e-4, Theta: 0.5,
		Distribution: "binary", Scale: 1.0,
	},
	"binary": {
		Bodies: 2, Steps: 30000, Dt: 0.001, Backend: "single",
		G: 1.0, Softening: 1e-3, Theta: 0.5,
		Distribution: "binary", Scale: 2.0,
	},
	"cluster": {
		Bodies: 512, Steps: 2000, Dt: 0.001, Backend: "openmp",
		G: 1.0, Softening: 0.01, Theta: 0.5,
		Distribution: "sphere", Scale: 50.0,
	},
	"galaxy": {
		Bodies: 2048, Steps: 5000, Dt: 0.0005, Backend: "openmp",
		G: 1.0, Softening: 0.05, Theta: 0.7,
		Distribution: "galaxy", Scale: 100.0,
	},
	"collision": {
		Bodies: 256, Steps: 3000, Dt: 0.001, Backend: "openmp",
		G: 1.0, Softening: 0.1, Theta: 0.5, Collisions: true,
		Distribution: "sphere", Scale: 10.0,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if c.Distribution == "" {
		c.Distribution = DefaultDist
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
