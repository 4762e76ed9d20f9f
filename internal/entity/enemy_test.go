// internal/entity/enemy_test.go
package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/defs"
	"geometric-td/internal/types"
)

// fixedRoller всегда возвращает одно и то же значение.
type fixedRoller float64

func (r fixedRoller) Float64() float64 { return float64(r) }

func straightPath() []mgl64.Vec2 {
	return []mgl64.Vec2{{0, 0}, {1000, 0}}
}

func newTestEnemy(def defs.EnemyDefinition) *Enemy {
	if def.ID == "" {
		def.ID = "test"
	}
	return NewEnemy(1, &def, straightPath(), fixedRoller(0.99))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDamageReductionKeepsUnitAlive(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{Health: 100, Speed: 50, DamageReduction: 0.3})

	if e.TakeDamage(100, defs.SourceNone) {
		t.Fatalf("expected reduced hit not to kill")
	}
	if !approx(e.Health, 30) {
		t.Fatalf("expected health 30, got %v", e.Health)
	}
}

func TestHealthNeverNegativeAndDeathReportedOnce(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{Health: 50, Speed: 50})

	if !e.TakeDamage(1000, defs.SourceArcher) {
		t.Fatalf("expected lethal hit to report death")
	}
	if e.Health != 0 || !e.Dead() || e.Alive() {
		t.Fatalf("expected dead unit at 0 health, got %v", e.Health)
	}
	if e.TakeDamage(10, defs.SourceArcher) {
		t.Fatalf("expected death to be reported only once")
	}
	if res := e.ResolveHit(10, defs.SourceArcher); res.Outcome != HitIgnored {
		t.Fatalf("expected ignored hit on dead unit, got %s", res.Outcome)
	}
}

func TestImmunityShortCircuits(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health:      100,
		Speed:       50,
		Immunities:  []defs.SourceCategory{defs.SourceCannon},
		Resistances: map[defs.SourceCategory]float64{defs.SourceCannon: -1},
	})

	res := e.ResolveHit(50, defs.SourceCannon)
	if res.Outcome != HitImmune || e.Health != 100 {
		t.Fatalf("expected immune hit, got %s with health %v", res.Outcome, e.Health)
	}
	if res.Landed() {
		t.Fatalf("expected immune hit not to land")
	}
	// категория без иммунитета проходит
	if res := e.ResolveHit(10, defs.SourceArcher); res.Outcome != HitDamaged || !approx(e.Health, 90) {
		t.Fatalf("expected archer damage, got %s with health %v", res.Outcome, e.Health)
	}
}

func TestSignedResistance(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health: 100,
		Speed:  50,
		Resistances: map[defs.SourceCategory]float64{
			defs.SourceFire: -0.5,
			defs.SourceIce:  0.5,
		},
	})

	if res := e.ResolveHit(10, defs.SourceFire); !approx(res.Dealt, 15) {
		t.Fatalf("expected vulnerability to deal 15, got %v", res.Dealt)
	}
	if res := e.ResolveHit(10, defs.SourceIce); !approx(res.Dealt, 5) {
		t.Fatalf("expected resistance to deal 5, got %v", res.Dealt)
	}
}

func TestDodge(t *testing.T) {
	t.Parallel()
	def := defs.EnemyDefinition{ID: "speedster", Health: 100, Speed: 50, DodgeChance: 0.2}

	dodger := NewEnemy(1, &def, straightPath(), fixedRoller(0.1))
	if res := dodger.ResolveHit(30, defs.SourceArcher); res.Outcome != HitDodged || dodger.Health != 100 {
		t.Fatalf("expected dodge, got %s with health %v", res.Outcome, dodger.Health)
	}

	unlucky := NewEnemy(2, &def, straightPath(), fixedRoller(0.5))
	if res := unlucky.ResolveHit(30, defs.SourceArcher); res.Outcome != HitDamaged {
		t.Fatalf("expected hit, got %s", res.Outcome)
	}
}

func TestRevival(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health:  100,
		Speed:   50,
		Revival: &defs.RevivalDef{Charges: 1, HealthFraction: 1, SpeedBonus: 10, FreezeMs: 2000},
	})

	if e.TakeDamage(150, defs.SourceSniper) {
		t.Fatalf("expected revival, not death")
	}
	if e.Dead() || e.Health != 100 {
		t.Fatalf("expected revived at 100, got %v", e.Health)
	}
	if e.DrainRevived() != 1 || e.DrainRevived() != 0 {
		t.Fatalf("expected exactly one revival to drain")
	}
	if !e.Frozen() || !e.Invulnerable() || e.Speed() != 0 {
		t.Fatalf("expected frozen invulnerable unit after revival")
	}
	if res := e.ResolveHit(500, defs.SourceSniper); res.Outcome != HitInvulnerable {
		t.Fatalf("expected invulnerable during freeze, got %s", res.Outcome)
	}

	pos := e.Position()
	e.Advance(1000)
	if e.Position() != pos {
		t.Fatalf("expected no movement while frozen")
	}
	e.Advance(1000)
	if e.Frozen() {
		t.Fatalf("expected freeze to end after 2000ms")
	}
	if e.Speed() != 60 {
		t.Fatalf("expected speed bonus applied, got %v", e.Speed())
	}

	if !e.TakeDamage(150, defs.SourceSniper) {
		t.Fatalf("expected death once charges are spent")
	}
}

func TestDamageOverTimeIsPure(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health:          100,
		Speed:           50,
		DamageReduction: 0.5,
		DodgeChance:     0.9,
	})
	e.rng = fixedRoller(0)

	e.ApplyBurn(10, 1000)
	e.Advance(500)
	if !approx(e.Health, 95) {
		t.Fatalf("expected unreduced burn damage 5, health %v", e.Health)
	}
}

func TestDamageOverTimeRespectsInvulnerability(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{Health: 100, Speed: 50})
	e.Effects.SetInvulnerable(1000)
	e.ApplyBurn(10, 1000)
	e.Advance(500)
	if e.Health != 100 {
		t.Fatalf("expected no DoT inside invulnerability window, health %v", e.Health)
	}
}

func TestRegenerationAfterLethalDoT(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health: 10,
		Speed:  50,
		Regen:  &defs.RegenDef{Amount: 0.5, IntervalMs: 300},
	})

	e.ApplyBurn(1000, 1000)
	e.Advance(300)
	if !e.Dead() || e.Health != 0 {
		t.Fatalf("expected DoT kill without regen, health %v", e.Health)
	}
}

func TestRegenerationHeals(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{
		Health: 10,
		Speed:  50,
		Regen:  &defs.RegenDef{Amount: 0.5, IntervalMs: 300},
	})
	e.Health = 5
	e.Advance(299)
	if e.Health != 5 {
		t.Fatalf("expected no heal before interval, got %v", e.Health)
	}
	e.Advance(1)
	if !approx(e.Health, 5.5) {
		t.Fatalf("expected heal to 5.5, got %v", e.Health)
	}
	e.Health = 10
	e.Advance(300)
	if e.Health != 10 {
		t.Fatalf("expected no heal above max, got %v", e.Health)
	}
}

func TestSlowModifiers(t *testing.T) {
	t.Parallel()

	immune := newTestEnemy(defs.EnemyDefinition{Health: 10, Speed: 100, SlowImmune: true})
	if immune.ApplySlow(0.5, 1000) || immune.Speed() != 100 {
		t.Fatalf("expected slow immune unit to ignore slow")
	}

	fast := newTestEnemy(defs.EnemyDefinition{Health: 10, Speed: 100, SlowFactorExponent: 0.5, SlowDurationScale: 0.7})
	fast.ApplySlow(0.64, 2000)
	if !approx(fast.Effects.Slow.Factor, 0.8) || !approx(fast.Effects.Slow.Remaining, 1400) {
		t.Fatalf("expected slow 0.8/1400, got %v/%v", fast.Effects.Slow.Factor, fast.Effects.Slow.Remaining)
	}
	if !approx(fast.Speed(), 80) {
		t.Fatalf("expected speed 80, got %v", fast.Speed())
	}

	resistant := newTestEnemy(defs.EnemyDefinition{Health: 10, Speed: 100, SlowResistance: 0.2})
	resistant.ApplySlow(0.5, 1000)
	if !approx(resistant.Effects.Slow.Factor, 0.6) {
		t.Fatalf("expected resisted factor 0.6, got %v", resistant.Effects.Slow.Factor)
	}
}

func TestRageSpeedsUpWounded(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{Health: 200, Speed: 40, Rage: &defs.RageDef{MaxSpeedBonus: 1}})
	e.TakeDamage(100, defs.SourceNone)
	if !approx(e.Speed(), 60) {
		t.Fatalf("expected speed 60 at half health, got %v", e.Speed())
	}
}

func TestInvulnerabilityPulseOpensWindow(t *testing.T) {
	t.Parallel()
	e := newTestEnemy(defs.EnemyDefinition{Health: 100, Speed: 10, Pulse: &defs.PulseDef{IntervalMs: 5000, DurationMs: 2000}})
	e.Advance(5000)
	if !e.Invulnerable() {
		t.Fatalf("expected window after 5000ms")
	}
	if res := e.ResolveHit(10, defs.SourceArcher); res.Outcome != HitInvulnerable {
		t.Fatalf("expected invulnerable hit, got %s", res.Outcome)
	}
	e.Advance(2000)
	if e.Invulnerable() {
		t.Fatalf("expected window closed after 2000ms")
	}
}

func TestBreachReturnsDamage(t *testing.T) {
	t.Parallel()
	def := defs.EnemyDefinition{ID: "basic", Health: 10, Speed: 1000, Damage: 3}
	e := NewEnemy(1, &def, []mgl64.Vec2{{0, 0}, {100, 0}}, nil)

	total := 0
	for i := 0; i < 10 && !e.ReachedEnd(); i++ {
		total += e.Advance(1000)
	}
	if total != 3 || !e.ReachedEnd() || e.Alive() {
		t.Fatalf("expected one breach of 3, got %d", total)
	}
	if e.Advance(1000) != 0 {
		t.Fatalf("expected breach only once")
	}
}

func TestSplitProducesBoundedGenerations(t *testing.T) {
	t.Parallel()
	def := defs.EnemyDefinition{
		ID:     "splitter",
		Health: 160,
		Speed:  60,
		Reward: 25,
		Damage: 2,
		Split:  &defs.SplitDef{Count: 2, MaxGeneration: 2},
	}
	parent := NewEnemy(1, &def, straightPath(), nil)
	parent.Advance(1000)

	var ids types.IDSource
	ids.Next()
	if parent.Split(ids.Next) != nil {
		t.Fatalf("expected no offspring from a living unit")
	}

	parent.TakeDamage(1000, defs.SourceArcher)
	if !parent.CanSplit() {
		t.Fatalf("expected generation 1 to split")
	}
	children := parent.Split(ids.Next)
	if len(children) != 2 {
		t.Fatalf("expected 2 offspring, got %d", len(children))
	}
	for i, c := range children {
		if c.Generation() != 2 {
			t.Fatalf("expected generation 2, got %d", c.Generation())
		}
		if c.Health != 80 || c.MaxHealth != 80 || c.Reward != 12 || c.Damage != 1 {
			t.Fatalf("expected 80hp/12 reward/1 damage, got %v/%d/%d", c.Health, c.Reward, c.Damage)
		}
		if !approx(c.BaseSpeed, 54) {
			t.Fatalf("expected speed 54, got %v", c.BaseSpeed)
		}
		if c.Mover.Index != parent.Mover.Index {
			t.Fatalf("expected offspring %d to keep path progress", i)
		}
		if c.ID == parent.ID {
			t.Fatalf("expected fresh id for offspring")
		}
	}
	if children[0].Position() == children[1].Position() {
		t.Fatalf("expected offspring at distinct offsets")
	}

	child := children[0]
	child.TakeDamage(1000, defs.SourceArcher)
	if child.CanSplit() || child.Split(ids.Next) != nil {
		t.Fatalf("expected generation 2 not to split further")
	}
}

func TestSplitOffspringKeepBehaviours(t *testing.T) {
	t.Parallel()
	def := defs.EnemyDefinition{
		ID:      "splitter",
		Health:  160,
		Speed:   60,
		Split:   &defs.SplitDef{Count: 2, MaxGeneration: 2},
		Regen:   &defs.RegenDef{Amount: 1, IntervalMs: 100},
		Rage:    &defs.RageDef{MaxSpeedBonus: 1},
		Revival: &defs.RevivalDef{Charges: 1, HealthFraction: 1},
		Pulse:   &defs.PulseDef{IntervalMs: 5000, DurationMs: 500},
	}
	parent := NewEnemy(1, &def, straightPath(), nil)
	parent.TakeDamage(1000, defs.SourceArcher)
	if !parent.TakeDamage(1000, defs.SourceArcher) {
		t.Fatalf("expected parent death after its revival charge")
	}

	var ids types.IDSource
	ids.Next()
	children := parent.Split(ids.Next)
	if len(children) != 2 {
		t.Fatalf("expected 2 offspring, got %d", len(children))
	}
	for _, c := range children {
		if c.regen == nil || c.rage == nil || c.revival == nil || c.pulse == nil {
			t.Fatalf("expected offspring to keep regen, rage, revival and pulse")
		}
	}

	c := children[0]
	c.TakeDamage(40, defs.SourceNone)
	if !approx(c.Speed(), 81) {
		t.Fatalf("expected raging speed 81, got %v", c.Speed())
	}
	c.Advance(100)
	if !approx(c.Health, 41) {
		t.Fatalf("expected offspring to regenerate to 41, got %v", c.Health)
	}
	if c.TakeDamage(1000, defs.SourceArcher) || c.Health != 80 {
		t.Fatalf("expected offspring to revive at 80, got %v", c.Health)
	}
}
