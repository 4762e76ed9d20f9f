// internal/entity/snapshot.go
package entity

import "geometric-td/internal/types"

// Снимки только для чтения: рендер и сеть не трогают внутренности симуляции.

type EnemySnapshot struct {
	ID           types.EntityID `json:"id"`
	Archetype    string         `json:"archetype"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Health       float64        `json:"health"`
	MaxHealth    float64        `json:"max_health"`
	Generation   int            `json:"generation,omitempty"`
	Slowed       bool           `json:"slowed,omitempty"`
	Poisoned     bool           `json:"poisoned,omitempty"`
	Burning      bool           `json:"burning,omitempty"`
	Invulnerable bool           `json:"invulnerable,omitempty"`
	Frozen       bool           `json:"frozen,omitempty"`
}

type TowerSnapshot struct {
	ID        types.EntityID `json:"id"`
	Archetype string         `json:"archetype"`
	GridX     int            `json:"grid_x"`
	GridY     int            `json:"grid_y"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Level     int            `json:"level"`
	Range     float64        `json:"range"`
	TargetID  types.EntityID `json:"target_id,omitempty"`
}

type ProjectileSnapshot struct {
	TowerID  types.EntityID `json:"tower_id"`
	Category string         `json:"category"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

func (e *Enemy) Snapshot() EnemySnapshot {
	pos := e.Position()
	return EnemySnapshot{
		ID:           e.ID,
		Archetype:    e.Archetype,
		X:            pos.X(),
		Y:            pos.Y(),
		Health:       e.Health,
		MaxHealth:    e.MaxHealth,
		Generation:   e.Generation(),
		Slowed:       e.Effects.Slow.Active,
		Poisoned:     e.Effects.Poison.Active,
		Burning:      e.Effects.Burn.Active,
		Invulnerable: e.Invulnerable(),
		Frozen:       e.Frozen(),
	}
}

func (t *Tower) Snapshot() TowerSnapshot {
	s := TowerSnapshot{
		ID:        t.ID,
		Archetype: t.Archetype,
		GridX:     t.GridX,
		GridY:     t.GridY,
		X:         t.Position.X(),
		Y:         t.Position.Y(),
		Level:     t.Level,
		Range:     t.Range,
	}
	if t.Target != nil && t.Target.Alive() {
		s.TargetID = t.Target.ID
	}
	return s
}

func (p *Projectile) Snapshot(towerID types.EntityID) ProjectileSnapshot {
	return ProjectileSnapshot{
		TowerID:  towerID,
		Category: string(p.Category),
		X:        p.Position.X(),
		Y:        p.Position.Y(),
	}
}
