// internal/utils/math.go
package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance возвращает евклидово расстояние между точками.
func Distance(a, b mgl64.Vec2) float64 {
	return b.Sub(a).Len()
}

// MoveTowards сдвигает from к to не больше чем на step.
// Второе значение true, если точка достигнута (без перелёта).
func MoveTowards(from, to mgl64.Vec2, step float64) (mgl64.Vec2, bool) {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= step || dist == 0 {
		return to, true
	}
	return from.Add(delta.Mul(step / dist)), false
}

// Clamp ограничивает v отрезком [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
