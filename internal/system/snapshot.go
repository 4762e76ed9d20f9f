// internal/system/snapshot.go
package system

import "geometric-td/internal/entity"

// Snapshot — состояние поля только для чтения.
type Snapshot struct {
	Phase       string                      `json:"phase"`
	Wave        int                         `json:"wave"`
	Queued      int                         `json:"queued"`
	Enemies     []entity.EnemySnapshot      `json:"enemies"`
	Towers      []entity.TowerSnapshot      `json:"towers"`
	Projectiles []entity.ProjectileSnapshot `json:"projectiles"`
}

func (m *EncounterManager) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       m.phase.String(),
		Wave:        m.wave,
		Queued:      len(m.queue),
		Enemies:     make([]entity.EnemySnapshot, 0, len(m.enemies)),
		Towers:      make([]entity.TowerSnapshot, 0, len(m.towers)),
		Projectiles: []entity.ProjectileSnapshot{},
	}
	for _, e := range m.enemies {
		s.Enemies = append(s.Enemies, e.Snapshot())
	}
	for _, t := range m.towers {
		s.Towers = append(s.Towers, t.Snapshot())
		for _, p := range t.Projectiles() {
			s.Projectiles = append(s.Projectiles, p.Snapshot(t.ID))
		}
	}
	return s
}
