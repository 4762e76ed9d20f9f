// internal/entity/tower.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/types"
	"geometric-td/internal/utils"
)

// Tower — стационарная башня. Владеет своими снарядами.
type Tower struct {
	ID        types.EntityID
	Archetype string
	Name      string
	Def       *defs.TowerDefinition
	GridX     int
	GridY     int
	Position  mgl64.Vec2

	Category        defs.SourceCategory
	Damage          float64
	Range           float64
	AttackRate      float64 // атак в секунду
	ProjectileSpeed float64
	Mode            defs.AttackMode
	Policy          defs.TargetPolicy
	Payload         defs.PayloadDef
	Aura            *defs.AuraDef

	Level        int
	UpgradeCount int
	MaxUpgrades  int
	UpgradeCost  int
	Invested     int     // стоимость постройки + оплаченные улучшения
	RefundRatio  float64 // доля Invested при продаже

	Target      *Enemy
	accumulator float64
	projectiles []*Projectile
}

// NewTower builds a level 1 tower. It is ready to fire on its first cycle.
func NewTower(id types.EntityID, def *defs.TowerDefinition, gridX, gridY int, position mgl64.Vec2) *Tower {
	t := &Tower{
		ID:              id,
		Archetype:       def.ID,
		Name:            def.Name,
		Def:             def,
		GridX:           gridX,
		GridY:           gridY,
		Position:        position,
		Category:        def.Category,
		Damage:          def.Damage,
		Range:           def.Range,
		AttackRate:      def.AttackRate,
		ProjectileSpeed: def.ProjectileSpeed,
		Mode:            def.AttackMode,
		Policy:          def.TargetPolicy,
		Payload:         clonePayload(def.Payload),
		Level:           1,
		MaxUpgrades:     def.MaxUpgrades,
		UpgradeCost:     def.UpgradeCost,
		Invested:        def.Cost,
		RefundRatio:     config.SellRefundRatio,
	}
	if t.ProjectileSpeed <= 0 {
		t.ProjectileSpeed = config.ProjectileSpeed
	}
	if t.Mode == "" {
		t.Mode = defs.AttackProjectile
	}
	if t.Policy == "" {
		t.Policy = defs.TargetFirst
	}
	if t.MaxUpgrades <= 0 {
		t.MaxUpgrades = config.DefaultMaxUpgrades
	}
	if def.Aura != nil {
		aura := *def.Aura
		t.Aura = &aura
	}
	t.accumulator = t.AttackIntervalMs()
	return t
}

// payload изменяется улучшениями, поэтому у каждой башни своя копия
func clonePayload(p defs.PayloadDef) defs.PayloadDef {
	out := p
	if p.Slow != nil {
		s := *p.Slow
		out.Slow = &s
	}
	if p.Poison != nil {
		s := *p.Poison
		out.Poison = &s
	}
	if p.Burn != nil {
		s := *p.Burn
		out.Burn = &s
	}
	return out
}

// AttackIntervalMs — пауза между атаками.
func (t *Tower) AttackIntervalMs() float64 {
	return defs.AttackInterval(t.AttackRate)
}

// Projectiles returns the in-flight projectiles. Callers must not mutate them.
func (t *Tower) Projectiles() []*Projectile {
	return t.projectiles
}

// DropProjectiles discards everything in flight.
func (t *Tower) DropProjectiles() {
	t.projectiles = nil
}

// Cycle advances owned projectiles, applies the aura, then retargets and
// fires once the cooldown has elapsed.
func (t *Tower) Cycle(deltaMs float64, enemies []*Enemy) {
	live := t.projectiles[:0]
	for _, p := range t.projectiles {
		p.Advance(deltaMs, enemies)
		if !p.Removed() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(t.projectiles); i++ {
		t.projectiles[i] = nil
	}
	t.projectiles = live

	if t.Aura != nil {
		t.applyAura(enemies)
	}

	t.accumulator += deltaMs
	if t.accumulator < t.AttackIntervalMs() {
		return
	}
	t.Target = t.FindTarget(enemies)
	if t.Target == nil {
		return
	}
	t.Fire(t.Target, enemies)
	t.accumulator = 0
}

func (t *Tower) applyAura(enemies []*Enemy) {
	for _, e := range enemies {
		if !e.Alive() || e.ImmuneTo(t.Category) {
			continue
		}
		if utils.Distance(t.Position, e.Position()) <= t.Range {
			e.ApplySlow(t.Aura.SlowFactor, t.Aura.DurationMs)
		}
	}
}

// FindTarget picks an alive enemy within range according to the policy.
// Ties keep the earlier enemy in the slice.
func (t *Tower) FindTarget(enemies []*Enemy) *Enemy {
	var best *Enemy
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		if utils.Distance(t.Position, e.Position()) > t.Range {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		switch t.Policy {
		case defs.TargetStrongest:
			if e.Health > best.Health {
				best = e
			}
		default:
			if e.PathRemaining() < best.PathRemaining() {
				best = e
			}
		}
	}
	return best
}

// Fire launches a projectile or, for instant area towers, resolves the
// impact at the target's position right away.
func (t *Tower) Fire(target *Enemy, enemies []*Enemy) {
	switch t.Mode {
	case defs.AttackInstantArea:
		ResolveImpact(target.Position(), target, t.Damage, t.Category, t.Payload, enemies)
	default:
		t.projectiles = append(t.projectiles,
			NewProjectile(t.Position, target, t.Damage, t.ProjectileSpeed, t.Category, clonePayload(t.Payload)))
	}
}

// CanUpgrade — остались ли улучшения.
func (t *Tower) CanUpgrade() bool {
	return t.UpgradeCount < t.MaxUpgrades
}

// Upgrade scales the stats and strengthens the payload. The caller charges
// UpgradeCost before calling; it is recorded in Invested.
func (t *Tower) Upgrade() bool {
	if !t.CanUpgrade() {
		return false
	}
	t.UpgradeCount++
	t.Level++
	t.Invested += t.UpgradeCost

	t.Damage *= config.UpgradeDamageScale
	t.Range *= config.UpgradeRangeScale
	t.AttackRate *= config.UpgradeRateScale
	t.UpgradeCost = int(math.Floor(float64(t.UpgradeCost) * config.UpgradeCostScale))

	bonus := t.Def.UpgradeBonus
	if bonus.SlowFactorScale > 0 {
		if t.Payload.Slow != nil {
			t.Payload.Slow.Factor *= bonus.SlowFactorScale
		}
		if t.Aura != nil {
			t.Aura.SlowFactor *= bonus.SlowFactorScale
		}
	}
	if p := t.Payload.Poison; p != nil {
		p.DurationMs += bonus.PoisonDurationMs
		p.DamagePerTick += bonus.PoisonDamage
	}
	if b := t.Payload.Burn; b != nil {
		b.DPS += bonus.BurnDPS
	}
	if t.Payload.SplashRadius > 0 {
		t.Payload.SplashRadius += bonus.SplashRadius
	}
	if t.Payload.PierceCount > 0 {
		t.Payload.PierceCount += bonus.PierceCount
	}
	return true
}

// SellValue — сколько вернётся при продаже.
func (t *Tower) SellValue() int {
	return int(math.Floor(float64(t.Invested) * t.RefundRatio))
}

// TowerInfo — проекция для информационной панели.
type TowerInfo struct {
	ID           types.EntityID `json:"id"`
	Archetype    string         `json:"archetype"`
	Name         string         `json:"name"`
	Level        int            `json:"level"`
	Damage       float64        `json:"damage"`
	Range        float64        `json:"range"`
	AttackRate   float64        `json:"attack_rate"`
	UpgradeCount int            `json:"upgrades"`
	MaxUpgrades  int            `json:"max_upgrades"`
	UpgradeCost  int            `json:"upgrade_cost"`
	SellValue    int            `json:"sell_value"`
	CanUpgrade   bool           `json:"can_upgrade"`
}

func (t *Tower) Info() TowerInfo {
	return TowerInfo{
		ID:           t.ID,
		Archetype:    t.Archetype,
		Name:         t.Name,
		Level:        t.Level,
		Damage:       t.Damage,
		Range:        t.Range,
		AttackRate:   t.AttackRate,
		UpgradeCount: t.UpgradeCount,
		MaxUpgrades:  t.MaxUpgrades,
		UpgradeCost:  t.UpgradeCost,
		SellValue:    t.SellValue(),
		CanUpgrade:   t.CanUpgrade(),
	}
}
