// internal/component/status_effect.go
package component

import "math"

// SlowEffect indicates that an entity is slowed.
type SlowEffect struct {
	Active    bool
	Factor    float64 // Multiplier for speed (e.g., 0.5 for 50% slow).
	Remaining float64 // How much time is left for the effect, ms.
}

// PoisonEffect наносит урон фиксированными тиками.
type PoisonEffect struct {
	Active        bool
	DamagePerTick float64
	TickInterval  float64
	NextTick      float64 // мс до следующего тика
	Remaining     float64
}

// BurnEffect — непрерывный урон в секунду, без тиков.
type BurnEffect struct {
	Active    bool
	DPS       float64
	Remaining float64
}

// InvulnerabilityWindow — окно, в котором урон полностью игнорируется.
type InvulnerabilityWindow struct {
	Active    bool
	Remaining float64
}

// StatusEffects is the per-unit set of timed effects. Overrides follow a
// strongest-wins, extend-on-overlap policy.
type StatusEffects struct {
	Slow         SlowEffect
	Poison       PoisonEffect
	Burn         BurnEffect
	Invulnerable InvulnerabilityWindow
}

// ApplySlow accepts the slow when none is active, when it slows more, or
// when it outlasts the current one. Returns whether it was applied.
func (s *StatusEffects) ApplySlow(factor, durationMs float64) bool {
	if durationMs <= 0 {
		return false
	}
	cur := &s.Slow
	if cur.Active && factor >= cur.Factor && durationMs <= cur.Remaining {
		return false
	}
	*cur = SlowEffect{Active: true, Factor: factor, Remaining: durationMs}
	return true
}

// ApplyPoison uses the slow policy with tick damage as strength.
// The first tick fires after one interval.
func (s *StatusEffects) ApplyPoison(damagePerTick, durationMs, intervalMs float64) bool {
	if durationMs <= 0 || intervalMs <= 0 {
		return false
	}
	cur := &s.Poison
	if cur.Active && damagePerTick <= cur.DamagePerTick && durationMs <= cur.Remaining {
		return false
	}
	*cur = PoisonEffect{
		Active:        true,
		DamagePerTick: damagePerTick,
		TickInterval:  intervalMs,
		NextTick:      intervalMs,
		Remaining:     durationMs,
	}
	return true
}

// ApplyBurn uses the same override policy with dps as strength.
func (s *StatusEffects) ApplyBurn(dps, durationMs float64) bool {
	if durationMs <= 0 {
		return false
	}
	cur := &s.Burn
	if cur.Active && dps <= cur.DPS && durationMs <= cur.Remaining {
		return false
	}
	*cur = BurnEffect{Active: true, DPS: dps, Remaining: durationMs}
	return true
}

// SetInvulnerable opens (or extends) an invulnerability window.
func (s *StatusEffects) SetInvulnerable(durationMs float64) {
	if durationMs <= 0 {
		return
	}
	if s.Invulnerable.Active && s.Invulnerable.Remaining >= durationMs {
		return
	}
	s.Invulnerable = InvulnerabilityWindow{Active: true, Remaining: durationMs}
}

// IsInvulnerable — активно ли окно неуязвимости.
func (s *StatusEffects) IsInvulnerable() bool {
	return s.Invulnerable.Active
}

// SlowFactor returns the active speed multiplier, 1 without a slow.
func (s *StatusEffects) SlowFactor() float64 {
	if !s.Slow.Active {
		return 1
	}
	return s.Slow.Factor
}

// Tick expires slow and invulnerability, then accumulates damage over time.
// Returned damage is pure; the caller applies it.
func (s *StatusEffects) Tick(deltaMs float64) (poison, burn float64) {
	if s.Slow.Active {
		s.Slow.Remaining -= deltaMs
		if s.Slow.Remaining <= 0 {
			s.Slow = SlowEffect{}
		}
	}
	if s.Invulnerable.Active {
		s.Invulnerable.Remaining -= deltaMs
		if s.Invulnerable.Remaining <= 0 {
			s.Invulnerable = InvulnerabilityWindow{}
		}
	}

	if p := &s.Poison; p.Active {
		// тики только внутри оставшейся длительности
		elapsed := math.Min(deltaMs, p.Remaining)
		p.NextTick -= elapsed
		for p.NextTick <= 0 {
			poison += p.DamagePerTick
			p.NextTick += p.TickInterval
		}
		p.Remaining -= deltaMs
		if p.Remaining <= 0 {
			*p = PoisonEffect{}
		}
	}

	if b := &s.Burn; b.Active {
		burn = b.DPS * math.Min(deltaMs, b.Remaining) / 1000
		b.Remaining -= deltaMs
		if b.Remaining <= 0 {
			*b = BurnEffect{}
		}
	}
	return poison, burn
}

// Clear снимает все эффекты.
func (s *StatusEffects) Clear() {
	*s = StatusEffects{}
}
