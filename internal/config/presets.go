package config

import "sort"

type Preset struct {
	Description string
	View        ViewConfig
}

var Presets = map[string]Preset{
	"home": {
		Description: "whole set",
		View:        ViewConfig{CenterX: -0.7, CenterY: 0.0, Scale: 0.005},
	},
	"seahorse": {
		Description: "seahorse valley",
		View:        ViewConfig{CenterX: -0.743643887037151, CenterY: 0.131825904205330, Scale: 2e-5},
	},
	"elephant": {
		Description: "elephant valley",
		View:        ViewConfig{CenterX: 0.2925, CenterY: 0.0149, Scale: 2e-5},
	},
	"spiral": {
		Description: "double spiral",
		View:        ViewConfig{CenterX: -0.761574, CenterY: -0.0847596, Scale: 1e-5},
	},
	"triple": {
		Description: "triple spiral valley",
		View:        ViewConfig{CenterX: -0.088, CenterY: 0.654, Scale: 1e-4},
	},
	"minibrot": {
		Description: "minibrot on the needle",
		View:        ViewConfig{CenterX: -1.7549, CenterY: 0.0, Scale: 5e-5},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
