package config

import (
	"math"
	"sort"
)

func sweep(dof int, from, to float64, steps int) SweepConfig {
	return SweepConfig{DOF: dof, From: from, To: to, Steps: steps}
}

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"horizontal": {
			Model: "pendulum", Gravity: DefaultGravity,
			Q:     []float64{math.Pi / 2},
			Sweep: sweep(0, -math.Pi, math.Pi, 61),
		},
		"spinning": {
			Model: "pendulum", Gravity: DefaultGravity,
			Q: []float64{0.1}, QDot: []float64{8},
			Sweep: sweep(0, 0, 2*math.Pi, 121),
		},
	},
	"double_pendulum": {
		"folded": {
			Model: "double_pendulum", Gravity: DefaultGravity,
			Q:     []float64{0.5, math.Pi},
			Sweep: sweep(1, 0, 2*math.Pi, 73),
		},
		"swing": {
			Model: "double_pendulum", Gravity: DefaultGravity,
			Q: []float64{1.5, 1.5}, QDot: []float64{2, -1},
			Sweep: sweep(0, -math.Pi/2, math.Pi/2, 41),
		},
	},
	"cartpole": {
		"tilted": {
			Model: "cartpole", Gravity: DefaultGravity,
			Q: []float64{0, 0.3}, QDot: []float64{0.5, 0},
			Sweep: sweep(1, -math.Pi/2, math.Pi/2, 41),
		},
		"rail": {
			Model: "cartpole", Gravity: DefaultGravity,
			Sweep: sweep(0, -2, 2, 21),
		},
	},
	"planar_arm": {
		"reach": {
			Model: "planar_arm", Gravity: DefaultGravity,
			Q:     []float64{0, 0, 0},
			Sweep: sweep(0, 0, 2*math.Pi, 73),
		},
		"curl": {
			Model: "planar_arm", Gravity: DefaultGravity,
			Q: []float64{0.4, 1.2, 1.2}, QDot: []float64{0, 1, 1},
			Sweep: sweep(2, -math.Pi, math.Pi, 61),
		},
	},
	"drone": {
		"hover": {
			Model: "drone", Gravity: DefaultGravity,
			Q:     []float64{0, 0, 5, 0, 0, 0, 1},
			Sweep: sweep(2, 0, 10, 21),
		},
		"tumble": {
			Model: "drone", Gravity: DefaultGravity,
			Q:     []float64{0, 0, 5, 0, 0, 0, 1},
			QDot:  []float64{0, 0, 0, 3, 0, 1},
			Sweep: sweep(2, 0, 10, 21),
		},
	},
	"humanoid_arm": {
		"raise": {
			Model: "humanoid_arm", Gravity: DefaultGravity,
			Q:     []float64{0, -math.Pi / 2, 0, 0, 0, 0},
			Sweep: sweep(0, -math.Pi, math.Pi, 61),
		},
		"wave": {
			Model: "humanoid_arm", Gravity: DefaultGravity,
			Q: []float64{0, -1.2, 0, -1.5, 0, 0}, QDot: []float64{0, 0, 0, 2, 0, 0},
			Sweep: sweep(3, -2.5, 0, 26),
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names of model in sorted order.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
