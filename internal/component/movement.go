// internal/component/movement.go
package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/config"
	"geometric-td/internal/utils"
)

// PathMover ведёт юнита по ломаной из точек пути.
type PathMover struct {
	Position   mgl64.Vec2
	Index      int // точка, к которой сейчас идём
	ReachedEnd bool

	waypoints []mgl64.Vec2
	suffix    []float64 // длина пути от точки i до конца
}

// NewPathMover ставит юнита на первую точку и направляет ко второй.
func NewPathMover(waypoints []mgl64.Vec2) *PathMover {
	m := &PathMover{waypoints: waypoints}
	m.suffix = make([]float64, len(waypoints)+1)
	for i := len(waypoints) - 2; i >= 0; i-- {
		m.suffix[i] = m.suffix[i+1] + utils.Distance(waypoints[i], waypoints[i+1])
	}
	if len(waypoints) > 0 {
		m.Position = waypoints[0]
		m.Index = 1
	}
	return m
}

// Advance moves at most speed*dt toward the current waypoint. Returns true on
// the tick the end of the path is reached.
func (m *PathMover) Advance(speed, deltaMs float64) bool {
	if m.ReachedEnd {
		return false
	}
	if m.Index >= len(m.waypoints) {
		m.ReachedEnd = true
		return true
	}

	target := m.waypoints[m.Index]
	if utils.Distance(m.Position, target) < config.ArrivalThreshold {
		m.Index++
		if m.Index >= len(m.waypoints) {
			m.ReachedEnd = true
			return true
		}
		return false
	}

	step := speed * deltaMs / 1000
	if step <= 0 {
		return false
	}
	m.Position, _ = utils.MoveTowards(m.Position, target, step)
	return false
}

// RemainingDistance — длина пути до конца. Меньше значит ближе к прорыву.
func (m *PathMover) RemainingDistance() float64 {
	if m.ReachedEnd || m.Index >= len(m.waypoints) {
		return 0
	}
	return utils.Distance(m.Position, m.waypoints[m.Index]) + m.suffix[m.Index]
}

// Waypoints returns the route this mover follows.
func (m *PathMover) Waypoints() []mgl64.Vec2 {
	return m.waypoints
}

// Clone copies the route state and shifts the position by offset.
func (m *PathMover) Clone(offset mgl64.Vec2) *PathMover {
	c := *m
	c.Position = m.Position.Add(offset)
	return &c
}

// ShortcutPath keeps the first waypoint, every len/n-th one and the last.
func ShortcutPath(waypoints []mgl64.Vec2, n int) []mgl64.Vec2 {
	if n <= 0 || len(waypoints) < 3 {
		return waypoints
	}
	step := len(waypoints) / n
	if step < 1 {
		step = 1
	}
	short := []mgl64.Vec2{waypoints[0]}
	for i := step; i < len(waypoints); i += step {
		short = append(short, waypoints[i])
	}
	last := waypoints[len(waypoints)-1]
	if short[len(short)-1] != last {
		short = append(short, last)
	}
	return short
}
