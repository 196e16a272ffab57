package crowd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

const presetsFixture = `
units:
  - unit_type: brute
    max_health: 200
    armor: 5
    speed: 2.5
    mass: 150
    friction: 4.0
    collision_radius: 0.8
    detection_range: 20
    attack_range: 2.0
    damage: 25
    attack_frequency: 0.5
    knockback_resistance: 0.6
    animation_scale: 1.4
    animation_color: "#551111"
`

func TestLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(presetsFixture), 0644))

	presets, err := LoadPresets(path)
	assert.NoError(t, err)

	brute, found := presets["brute"]
	assert.True(t, found)
	assert.Equal(t, 200.0, brute.MaxHealth)
	assert.Equal(t, 5.0, brute.Armor)
	assert.Equal(t, 0.6, brute.KnockbackResistance)
	assert.Equal(t, "#551111", brute.AnimationColor)
}

func TestLoadPresetsMissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMakeAgentConfigBindsPreset(t *testing.T) {
	specs := DefaultPresets()["raider"]

	config := specs.MakeAgentConfig("hostile", vector.MakeVector2(3, -4))

	assert.Equal(t, "hostile", config.Faction)
	assert.Equal(t, "raider", config.UnitType)
	assert.Equal(t, specs.MaxHealth, config.Health)
	assert.Equal(t, specs.Damage, config.Damage)
	assert.Equal(t, 3.0, config.Position.GetX())
	assert.Equal(t, -4.0, config.Position.GetY())
}
