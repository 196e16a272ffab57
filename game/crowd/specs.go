package crowd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// UnitSpecs is one unit-type stat preset. Presets feed AgentConfig at spawn
// time; they are never consulted again afterwards.
type UnitSpecs struct {
	UnitType string `yaml:"unit_type"`

	MaxHealth           float64 `yaml:"max_health"`
	Armor               float64 `yaml:"armor"`
	Speed               float64 `yaml:"speed"`
	Mass                float64 `yaml:"mass"`
	Friction            float64 `yaml:"friction"`
	CollisionRadius     float64 `yaml:"collision_radius"`
	DetectionRange      float64 `yaml:"detection_range"`
	AttackRange         float64 `yaml:"attack_range"`
	Damage              float64 `yaml:"damage"`
	AttackFrequency     float64 `yaml:"attack_frequency"`
	KnockbackResistance float64 `yaml:"knockback_resistance"`

	AnimationScale float64 `yaml:"animation_scale"`
	AnimationColor string  `yaml:"animation_color"`
}

type PresetsFile struct {
	Units []UnitSpecs `yaml:"units"`
}

// LoadPresets reads unit-type presets from a YAML file.
func LoadPresets(path string) (map[string]UnitSpecs, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file PresetsFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, err
	}

	presets := make(map[string]UnitSpecs, len(file.Units))
	for _, specs := range file.Units {
		presets[specs.UnitType] = specs
	}

	return presets, nil
}

// DefaultPresets are the built-in raider and militia archetypes, used when
// no presets file is given.
func DefaultPresets() map[string]UnitSpecs {
	return map[string]UnitSpecs{
		"raider": {
			UnitType:            "raider",
			MaxHealth:           60,
			Armor:               0,
			Speed:               3.5,
			Mass:                80,
			Friction:            4.0,
			CollisionRadius:     0.5,
			DetectionRange:      30,
			AttackRange:         1.6,
			Damage:              10,
			AttackFrequency:     1.0,
			KnockbackResistance: 0,
			AnimationScale:      1.0,
			AnimationColor:      "#b03a2e",
		},
		"militia": {
			UnitType:            "militia",
			MaxHealth:           100,
			Armor:               2,
			Speed:               3.0,
			Mass:                90,
			Friction:            4.0,
			CollisionRadius:     0.5,
			DetectionRange:      25,
			AttackRange:         1.8,
			Damage:              12,
			AttackFrequency:     1.2,
			KnockbackResistance: 0.2,
			AnimationScale:      1.0,
			AnimationColor:      "#2e86c1",
		},
	}
}

// MakeAgentConfig binds a preset to a faction and a spawn position.
func (specs UnitSpecs) MakeAgentConfig(faction string, position vector.Vector2) servertypes.AgentConfig {
	return servertypes.AgentConfig{
		Faction:  faction,
		UnitType: specs.UnitType,
		Position: position,

		Health:              specs.MaxHealth,
		MaxHealth:           specs.MaxHealth,
		Armor:               specs.Armor,
		Speed:               specs.Speed,
		Mass:                specs.Mass,
		Friction:            specs.Friction,
		CollisionRadius:     specs.CollisionRadius,
		DetectionRange:      specs.DetectionRange,
		AttackRange:         specs.AttackRange,
		Damage:              specs.Damage,
		AttackFrequency:     specs.AttackFrequency,
		KnockbackResistance: specs.KnockbackResistance,

		AnimationScale: specs.AnimationScale,
		AnimationColor: specs.AnimationColor,
	}
}
