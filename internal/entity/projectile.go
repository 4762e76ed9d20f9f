// internal/entity/projectile.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/utils"
)

// Projectile — самонаводящийся снаряд башни. Разрешается не больше одного раза.
type Projectile struct {
	Origin    mgl64.Vec2
	Position  mgl64.Vec2
	Target    *Enemy
	Damage    float64
	Speed     float64
	Category  defs.SourceCategory
	Payload   defs.PayloadDef
	Travelled float64

	hit     bool
	removed bool
	result  HitResult
}

func NewProjectile(origin mgl64.Vec2, target *Enemy, damage, speed float64, category defs.SourceCategory, payload defs.PayloadDef) *Projectile {
	return &Projectile{
		Origin:   origin,
		Position: origin,
		Target:   target,
		Damage:   damage,
		Speed:    speed,
		Category: category,
		Payload:  payload,
	}
}

// Hit — снаряд уже попал.
func (p *Projectile) Hit() bool { return p.hit }

// Removed — снаряд можно выбрасывать.
func (p *Projectile) Removed() bool { return p.removed }

// Result — итог основного попадания, валиден после Hit().
func (p *Projectile) Result() HitResult { return p.result }

// Advance homes on the target's current position. When the remaining
// distance fits into this tick's step the projectile snaps and resolves.
func (p *Projectile) Advance(deltaMs float64, enemies []*Enemy) {
	if p.hit || p.removed {
		return
	}
	if p.Target == nil || !p.Target.Alive() {
		// цель умерла или ушла, снаряд просто исчезает
		p.removed = true
		return
	}

	step := p.Speed * deltaMs / 1000
	next, reached := utils.MoveTowards(p.Position, p.Target.Position(), step)
	p.Travelled += utils.Distance(p.Position, next)
	p.Position = next
	if reached {
		p.hitTarget(enemies)
		return
	}
	if p.Travelled >= config.ProjectileMaxTravel {
		p.removed = true
	}
}

func (p *Projectile) hitTarget(enemies []*Enemy) {
	if p.hit {
		return
	}
	p.hit = true
	p.removed = true
	p.result = ResolveImpact(p.Position, p.Target, p.Damage, p.Category, p.Payload, enemies)
}
