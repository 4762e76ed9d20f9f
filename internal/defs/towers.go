// internal/defs/towers.go
package defs

import "math"

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	Category        SourceCategory `yaml:"category"`
	Cost            int            `yaml:"cost"`
	UpgradeCost     int            `yaml:"upgrade_cost"`
	MaxUpgrades     int            `yaml:"max_upgrades"` // 0 = config.DefaultMaxUpgrades
	Damage          float64        `yaml:"damage"`
	AttackRate      float64        `yaml:"attack_rate"` // атак в секунду
	Range           float64        `yaml:"range"`
	ProjectileSpeed float64        `yaml:"projectile_speed"` // 0 = config.ProjectileSpeed
	AttackMode      AttackMode     `yaml:"attack_mode"`
	TargetPolicy    TargetPolicy   `yaml:"target_policy"`
	Payload         PayloadDef     `yaml:"payload"`
	Aura            *AuraDef       `yaml:"aura,omitempty"`
	UpgradeBonus    UpgradeBonus   `yaml:"upgrade_bonus"`
	Visuals         Visuals        `yaml:"visuals"`
}

// PayloadDef is what a hit carries besides raw damage.
type PayloadDef struct {
	Slow         *SlowDef   `yaml:"slow,omitempty"`
	Poison       *PoisonDef `yaml:"poison,omitempty"`
	Burn         *BurnDef   `yaml:"burn,omitempty"`
	SplashRadius float64    `yaml:"splash_radius"`
	SplashFactor float64    `yaml:"splash_factor"` // 0 = 1
	PierceCount  int        `yaml:"pierce_count"`
}

type SlowDef struct {
	Factor     float64 `yaml:"factor"`
	DurationMs float64 `yaml:"duration_ms"`
}

type PoisonDef struct {
	DamagePerTick float64 `yaml:"damage_per_tick"`
	DurationMs    float64 `yaml:"duration_ms"`
}

type BurnDef struct {
	DPS        float64 `yaml:"dps"`
	DurationMs float64 `yaml:"duration_ms"`
}

// AuraDef defines a passive slow applied to every enemy in tower range each cycle.
type AuraDef struct {
	SlowFactor float64 `yaml:"slow_factor"`
	DurationMs float64 `yaml:"duration_ms"`
}

// UpgradeBonus strengthens the payload on each upgrade on top of the generic scaling.
type UpgradeBonus struct {
	SlowFactorScale  float64 `yaml:"slow_factor_scale"` // множитель фактора, <1 замедляет сильнее
	PoisonDurationMs float64 `yaml:"poison_duration_ms"`
	PoisonDamage     float64 `yaml:"poison_damage"`
	BurnDPS          float64 `yaml:"burn_dps"`
	SplashRadius     float64 `yaml:"splash_radius"`
	PierceCount      int     `yaml:"pierce_count"`
}

// AttackIntervalMs converts the attack rate into a cooldown.
func (d TowerDefinition) AttackIntervalMs() float64 {
	return AttackInterval(d.AttackRate)
}

// AttackInterval — пауза между атаками в мс для rate атак в секунду.
// Без положительной скорости башня не стреляет никогда.
func AttackInterval(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return 1000 / rate
}
