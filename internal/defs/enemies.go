// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
// Behaviour blocks (regen, revival, split, rage, pulse) are optional and
// compose freely; an archetype without them is a plain walker.
type EnemyDefinition struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"` // пикселей в секунду
	Reward int     `yaml:"reward"`
	Damage int     `yaml:"damage"` // сколько жизней снимает при прорыве

	DodgeChance     float64                    `yaml:"dodge_chance"`
	DamageReduction float64                    `yaml:"damage_reduction"`
	Immunities      []SourceCategory           `yaml:"immunities"`
	Resistances     map[SourceCategory]float64 `yaml:"resistances"` // >0 сопротивление, <0 уязвимость

	SlowImmune         bool    `yaml:"slow_immune"`
	SlowResistance     float64 `yaml:"slow_resistance"`      // factor + (1-factor)*r
	SlowFactorExponent float64 `yaml:"slow_factor_exponent"` // 0 = 1
	SlowDurationScale  float64 `yaml:"slow_duration_scale"`  // 0 = 1

	PathShortcut int `yaml:"path_shortcut"` // 0 = полный путь

	Regen   *RegenDef   `yaml:"regen,omitempty"`
	Revival *RevivalDef `yaml:"revival,omitempty"`
	Split   *SplitDef   `yaml:"split,omitempty"`
	Rage    *RageDef    `yaml:"rage,omitempty"`
	Pulse   *PulseDef   `yaml:"invulnerability_pulse,omitempty"`

	Visuals Visuals `yaml:"visuals"`
}

type RegenDef struct {
	Amount     float64 `yaml:"amount"`
	IntervalMs float64 `yaml:"interval_ms"`
}

type RevivalDef struct {
	Charges        int     `yaml:"charges"`
	HealthFraction float64 `yaml:"health_fraction"`
	SpeedBonus     float64 `yaml:"speed_bonus"`
	FreezeMs       float64 `yaml:"freeze_ms"` // 0 = без паузы
}

type SplitDef struct {
	Count         int     `yaml:"count"`
	MaxGeneration int     `yaml:"max_generation"`
	SpeedScale    float64 `yaml:"speed_scale"` // 0 = 0.9
}

type RageDef struct {
	MaxSpeedBonus float64 `yaml:"max_speed_bonus"`
}

type PulseDef struct {
	IntervalMs float64 `yaml:"interval_ms"`
	DurationMs float64 `yaml:"duration_ms"`
}

// IsImmune reports whether damage and effects of the category are ignored.
func (d *EnemyDefinition) IsImmune(category SourceCategory) bool {
	if category == SourceNone {
		return false
	}
	for _, c := range d.Immunities {
		if c == category {
			return true
		}
	}
	return false
}

// Resistance returns the signed modifier for the category.
func (d *EnemyDefinition) Resistance(category SourceCategory) float64 {
	if category == SourceNone || d.Resistances == nil {
		return 0
	}
	return d.Resistances[category]
}
