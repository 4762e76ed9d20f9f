// internal/entity/impact.go
package entity

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/utils"
)

// ResolveImpact applies a hit on the primary target at point, then the
// effect payload (only when the hit landed), then splash and pierce.
func ResolveImpact(point mgl64.Vec2, primary *Enemy, damage float64, category defs.SourceCategory, payload defs.PayloadDef, enemies []*Enemy) HitResult {
	res := primary.ResolveHit(damage, category)
	if res.Landed() {
		applyPayload(primary, payload)
	}
	if payload.SplashRadius > 0 {
		factor := payload.SplashFactor
		if factor <= 0 {
			factor = 1
		}
		splash(point, primary, damage*factor, payload.SplashRadius, category, enemies)
	}
	if payload.PierceCount > 0 {
		pierce(point, primary, damage*config.PierceDamageFactor, payload.PierceCount, category, enemies)
	}
	return res
}

// applyPayload — эффекты вешаются только на живую цель.
func applyPayload(e *Enemy, payload defs.PayloadDef) {
	if !e.Alive() {
		return
	}
	if s := payload.Slow; s != nil {
		e.ApplySlow(s.Factor, s.DurationMs)
	}
	if p := payload.Poison; p != nil {
		e.ApplyPoison(p.DamagePerTick, p.DurationMs)
	}
	if b := payload.Burn; b != nil {
		e.ApplyBurn(b.DPS, b.DurationMs)
	}
}

// SplashMultiplier falls linearly from 1 at the centre to the floor at radius.
func SplashMultiplier(distance, radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	return utils.Clamp(1-(1-config.SplashFalloffFloor)*distance/radius, config.SplashFalloffFloor, 1)
}

func splash(point mgl64.Vec2, primary *Enemy, damage, radius float64, category defs.SourceCategory, enemies []*Enemy) {
	for _, e := range enemies {
		if e == primary || !e.Alive() {
			continue
		}
		d := utils.Distance(point, e.Position())
		if d > radius {
			continue
		}
		e.ResolveHit(damage*SplashMultiplier(d, radius), category)
	}
}

func pierce(point mgl64.Vec2, primary *Enemy, damage float64, count int, category defs.SourceCategory, enemies []*Enemy) {
	type candidate struct {
		enemy *Enemy
		dist  float64
	}
	var near []candidate
	for _, e := range enemies {
		if e == primary || !e.Alive() {
			continue
		}
		if d := utils.Distance(point, e.Position()); d <= config.PierceHitRadius {
			near = append(near, candidate{e, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	if len(near) > count {
		near = near[:count]
	}
	for _, c := range near {
		c.enemy.ResolveHit(damage, category)
	}
}
