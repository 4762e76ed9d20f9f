// internal/entity/enemy.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/component"
	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/types"
)

// Roller — источник случайности для уклонения.
type Roller interface {
	Float64() float64
}

// HitOutcome classifies how a single hit was resolved.
type HitOutcome int

const (
	HitIgnored      HitOutcome = iota // цель уже мертва или прошла путь
	HitImmune                         // категория в списке иммунитетов
	HitInvulnerable                   // активно окно неуязвимости
	HitDodged
	HitDamaged
	HitKilled
)

func (o HitOutcome) String() string {
	switch o {
	case HitImmune:
		return "immune"
	case HitInvulnerable:
		return "invulnerable"
	case HitDodged:
		return "dodged"
	case HitDamaged:
		return "damaged"
	case HitKilled:
		return "killed"
	}
	return "ignored"
}

// HitResult — итог одного попадания.
type HitResult struct {
	Outcome HitOutcome
	Dealt   float64 // снятое здоровье после модификаторов
}

// Landed is true when damage actually went through (even if it was reduced to 0).
func (h HitResult) Landed() bool {
	return h.Outcome == HitDamaged || h.Outcome == HitKilled
}

// Enemy — враг на пути. Одна структура на все архетипы, поведение
// включается блоками из определения.
type Enemy struct {
	ID        types.EntityID
	Archetype string
	Def       *defs.EnemyDefinition

	Health    float64
	MaxHealth float64
	BaseSpeed float64
	Damage    int
	Reward    int

	Effects component.StatusEffects
	Mover   *component.PathMover

	regen   *component.Regeneration
	revival *component.Revival
	split   *component.Split
	rage    *component.Rage
	pulse   *component.InvulnerabilityPulse

	rng     Roller
	dead    bool
	revived int // воскрешения, ещё не забранные менеджером
}

// NewEnemy builds a first-generation enemy at the start of the path.
func NewEnemy(id types.EntityID, def *defs.EnemyDefinition, path []mgl64.Vec2, rng Roller) *Enemy {
	if def.PathShortcut > 0 {
		path = component.ShortcutPath(path, def.PathShortcut)
	}
	return newEnemy(id, def, component.NewPathMover(path), rng)
}

// newEnemy собирает врага и все блоки поведения из определения.
func newEnemy(id types.EntityID, def *defs.EnemyDefinition, mover *component.PathMover, rng Roller) *Enemy {
	e := &Enemy{
		ID:        id,
		Archetype: def.ID,
		Def:       def,
		Health:    def.Health,
		MaxHealth: def.Health,
		BaseSpeed: def.Speed,
		Damage:    def.Damage,
		Reward:    def.Reward,
		Mover:     mover,
		rng:       rng,
	}
	if def.Regen != nil {
		e.regen = &component.Regeneration{Amount: def.Regen.Amount, IntervalMs: def.Regen.IntervalMs}
	}
	if def.Revival != nil {
		e.revival = &component.Revival{
			ChargesLeft:    def.Revival.Charges,
			HealthFraction: def.Revival.HealthFraction,
			SpeedBonus:     def.Revival.SpeedBonus,
			FreezeMs:       def.Revival.FreezeMs,
		}
	}
	if def.Split != nil {
		scale := def.Split.SpeedScale
		if scale <= 0 {
			scale = 0.9
		}
		e.split = &component.Split{
			Count:         def.Split.Count,
			Generation:    1,
			MaxGeneration: def.Split.MaxGeneration,
			SpeedScale:    scale,
		}
	}
	if def.Rage != nil {
		e.rage = &component.Rage{MaxSpeedBonus: def.Rage.MaxSpeedBonus}
	}
	if def.Pulse != nil {
		e.pulse = &component.InvulnerabilityPulse{IntervalMs: def.Pulse.IntervalMs, DurationMs: def.Pulse.DurationMs}
	}
	return e
}

// Position — текущая позиция в мире.
func (e *Enemy) Position() mgl64.Vec2 {
	return e.Mover.Position
}

// Dead — здоровье кончилось и зарядов воскрешения нет.
func (e *Enemy) Dead() bool {
	return e.dead
}

// Alive — на поле и может получать урон.
func (e *Enemy) Alive() bool {
	return !e.dead && !e.Mover.ReachedEnd
}

// ReachedEnd — дошёл до конца пути.
func (e *Enemy) ReachedEnd() bool {
	return e.Mover.ReachedEnd
}

// Generation — поколение деления, 1 для обычных врагов.
func (e *Enemy) Generation() int {
	if e.split == nil {
		return 1
	}
	return e.split.Generation
}

// Frozen — стоит после воскрешения.
func (e *Enemy) Frozen() bool {
	return e.revival.Frozen()
}

// Invulnerable — окно неуязвимости или пауза воскрешения.
func (e *Enemy) Invulnerable() bool {
	return e.Effects.IsInvulnerable() || e.revival.Frozen()
}

// ImmuneTo reports whether damage and effects of the category are ignored.
func (e *Enemy) ImmuneTo(category defs.SourceCategory) bool {
	return e.Def.IsImmune(category)
}

// Speed — базовая скорость с учётом замедления и ярости, 0 во время паузы.
func (e *Enemy) Speed() float64 {
	if e.revival.Frozen() {
		return 0
	}
	return e.BaseSpeed * e.Effects.SlowFactor() * e.rage.Multiplier(e.Health, e.MaxHealth)
}

// PathRemaining — сколько осталось пройти. Используется для выбора цели.
func (e *Enemy) PathRemaining() float64 {
	return e.Mover.RemainingDistance()
}

// Advance runs one tick: deadlines, effects and DoT, regeneration, movement.
// Returns breach damage on the tick the end of the path is reached.
func (e *Enemy) Advance(deltaMs float64) int {
	if e.dead || e.Mover.ReachedEnd {
		return 0
	}

	if e.revival != nil {
		e.revival.Advance(deltaMs)
	}

	poison, burn := e.Effects.Tick(deltaMs)
	if dot := poison + burn; dot > 0 && !e.Invulnerable() {
		// урон от эффектов чистый: без иммунитетов, уклонения и снижения
		if e.loseHealth(dot) {
			return 0
		}
	}

	if e.pulse != nil && e.pulse.Advance(deltaMs) {
		e.Effects.SetInvulnerable(e.pulse.DurationMs)
	}

	// строго health > 0: юнит, доведённый до нуля, не лечится
	if e.regen != nil && e.regen.Advance(deltaMs) && e.Health > 0 && e.Health < e.MaxHealth {
		e.Health = math.Min(e.MaxHealth, e.Health+e.regen.Amount)
		e.regen.Consume()
	}

	if e.revival.Frozen() {
		return 0
	}
	if e.Mover.Advance(e.Speed(), deltaMs) {
		return e.Damage
	}
	return 0
}

// TakeDamage returns true only when this hit finalized the death.
func (e *Enemy) TakeDamage(amount float64, category defs.SourceCategory) bool {
	return e.ResolveHit(amount, category).Outcome == HitKilled
}

// ResolveHit applies one hit: immunity, invulnerability, dodge, signed
// category modifier, flat reduction, then health loss and revival.
func (e *Enemy) ResolveHit(amount float64, category defs.SourceCategory) HitResult {
	if !e.Alive() {
		return HitResult{Outcome: HitIgnored}
	}
	if e.Def.IsImmune(category) {
		return HitResult{Outcome: HitImmune}
	}
	if e.Invulnerable() {
		return HitResult{Outcome: HitInvulnerable}
	}
	if e.Def.DodgeChance > 0 && e.rng != nil && e.rng.Float64() < e.Def.DodgeChance {
		return HitResult{Outcome: HitDodged}
	}

	amount *= 1 - e.Def.Resistance(category)
	amount *= 1 - e.Def.DamageReduction
	if amount < 0 {
		amount = 0
	}

	before := e.Health
	died := e.loseHealth(amount)
	dealt := before - e.Health
	if died {
		return HitResult{Outcome: HitKilled, Dealt: before}
	}
	if dealt < 0 {
		// воскрешение подняло здоровье выше прежнего
		dealt = before
	}
	return HitResult{Outcome: HitDamaged, Dealt: dealt}
}

// loseHealth вычитает здоровье и обрабатывает ноль. true — смерть окончательная.
func (e *Enemy) loseHealth(amount float64) bool {
	e.Health -= amount
	if e.Health > 0 {
		return false
	}
	e.Health = 0

	if r := e.revival; r != nil && r.ChargesLeft > 0 {
		r.ChargesLeft--
		e.Health = r.HealthFraction * e.MaxHealth
		e.BaseSpeed += r.SpeedBonus
		r.FreezeRemaining = r.FreezeMs
		e.revived++
		return false
	}

	e.dead = true
	return true
}

// ApplySlow — замедление с учётом сопротивления архетипа.
func (e *Enemy) ApplySlow(factor, durationMs float64) bool {
	if !e.Alive() || e.Def.SlowImmune {
		return false
	}
	if exp := e.Def.SlowFactorExponent; exp > 0 && exp != 1 {
		factor = math.Pow(factor, exp)
	}
	if r := e.Def.SlowResistance; r > 0 {
		factor += (1 - factor) * r
	}
	if scale := e.Def.SlowDurationScale; scale > 0 {
		durationMs *= scale
	}
	return e.Effects.ApplySlow(factor, durationMs)
}

// ApplyPoison — яд с тиком config.PoisonTickIntervalMs.
func (e *Enemy) ApplyPoison(damagePerTick, durationMs float64) bool {
	if !e.Alive() {
		return false
	}
	return e.Effects.ApplyPoison(damagePerTick, durationMs, config.PoisonTickIntervalMs)
}

// ApplyBurn — горение, урон каждый тик пропорционально времени.
func (e *Enemy) ApplyBurn(dps, durationMs float64) bool {
	if !e.Alive() {
		return false
	}
	return e.Effects.ApplyBurn(dps, durationMs)
}

// CanSplit reports whether the death of this enemy produces offspring.
func (e *Enemy) CanSplit() bool {
	return e.split.CanSplit()
}

// Split builds the offspring of a dead splitter. Offspring keep the route
// progress and stand at alternating offsets around the death point.
func (e *Enemy) Split(next func() types.EntityID) []*Enemy {
	if !e.dead || !e.split.CanSplit() {
		return nil
	}
	gen := e.split.Generation + 1
	g := float64(gen)

	children := make([]*Enemy, 0, e.split.Count)
	for i := 0; i < e.split.Count; i++ {
		sign := -1.0
		if i%2 == 1 {
			sign = 1.0
		}
		dist := config.SplitOffset * float64(i/2+1) * sign
		offset := mgl64.Vec2{dist, dist}

		// потомок несёт те же блоки поведения, что и родитель на спавне
		child := newEnemy(next(), e.Def, e.Mover.Clone(offset), e.rng)
		child.Health = e.Def.Health / g
		child.MaxHealth = child.Health
		child.BaseSpeed = e.Def.Speed * math.Pow(e.split.SpeedScale, g-1)
		child.Damage = int(math.Ceil(float64(e.Def.Damage) / g))
		child.Reward = int(float64(e.Def.Reward) / g)
		child.split = &component.Split{
			Count:         e.split.Count,
			Generation:    gen,
			MaxGeneration: e.split.MaxGeneration,
			SpeedScale:    e.split.SpeedScale,
		}
		child.Mover.ReachedEnd = false
		children = append(children, child)
	}
	return children
}

// DrainRevived returns how many revivals happened since the last call.
func (e *Enemy) DrainRevived() int {
	n := e.revived
	e.revived = 0
	return n
}
