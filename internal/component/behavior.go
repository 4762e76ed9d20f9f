// internal/component/behavior.go
package component

// Поведенческие состояния архетипов. Все таймеры здесь — накопители,
// которые продвигает владелец в своём Advance.

// Regeneration лечит фиксированную величину раз в интервал.
type Regeneration struct {
	Amount      float64
	IntervalMs  float64
	Accumulator float64
}

// Advance накапливает время и сообщает, пора ли лечить.
// Накопитель сбрасывается только при фактическом лечении (Consume).
func (r *Regeneration) Advance(deltaMs float64) bool {
	r.Accumulator += deltaMs
	return r.Accumulator >= r.IntervalMs
}

func (r *Regeneration) Consume() {
	r.Accumulator = 0
}

// Revival — заряды воскрешения.
type Revival struct {
	ChargesLeft     int
	HealthFraction  float64
	SpeedBonus      float64
	FreezeMs        float64
	FreezeRemaining float64 // пока > 0, юнит стоит и неуязвим
}

// Frozen reports whether the unit is inside the post-revival pause.
func (r *Revival) Frozen() bool {
	return r != nil && r.FreezeRemaining > 0
}

// Advance отсчитывает паузу после воскрешения.
func (r *Revival) Advance(deltaMs float64) {
	if r.FreezeRemaining > 0 {
		r.FreezeRemaining -= deltaMs
		if r.FreezeRemaining < 0 {
			r.FreezeRemaining = 0
		}
	}
}

// Split — параметры деления при смерти.
type Split struct {
	Count         int
	Generation    int
	MaxGeneration int
	SpeedScale    float64
}

// CanSplit — делится только пока поколение ниже максимального.
func (s *Split) CanSplit() bool {
	return s != nil && s.Count > 0 && s.Generation < s.MaxGeneration
}

// Rage ускоряет юнита пропорционально потерянному здоровью.
type Rage struct {
	MaxSpeedBonus float64
}

func (r *Rage) Multiplier(health, maxHealth float64) float64 {
	if r == nil || maxHealth <= 0 {
		return 1
	}
	missing := 1 - health/maxHealth
	if missing < 0 {
		missing = 0
	}
	return 1 + r.MaxSpeedBonus*missing
}

// InvulnerabilityPulse открывает окно неуязвимости раз в интервал.
type InvulnerabilityPulse struct {
	IntervalMs  float64
	DurationMs  float64
	Accumulator float64
}

// Advance returns true when a new window should open this tick.
func (p *InvulnerabilityPulse) Advance(deltaMs float64) bool {
	p.Accumulator += deltaMs
	if p.Accumulator >= p.IntervalMs {
		p.Accumulator -= p.IntervalMs
		return true
	}
	return false
}
