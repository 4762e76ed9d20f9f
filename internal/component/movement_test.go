// internal/component/movement_test.go
package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func lPath() []mgl64.Vec2 {
	return []mgl64.Vec2{{0, 0}, {100, 0}, {100, 100}}
}

func TestPathMoverStartsAtFirstWaypoint(t *testing.T) {
	t.Parallel()
	m := NewPathMover(lPath())
	if m.Position != (mgl64.Vec2{0, 0}) || m.Index != 1 {
		t.Fatalf("expected position (0,0) heading to 1, got %v index %d", m.Position, m.Index)
	}
	if m.RemainingDistance() != 200 {
		t.Fatalf("expected 200 remaining, got %v", m.RemainingDistance())
	}
}

func TestPathMoverAdvance(t *testing.T) {
	t.Parallel()
	m := NewPathMover(lPath())
	m.Advance(100, 500)
	if math.Abs(m.Position.X()-50) > 1e-9 || m.Position.Y() != 0 {
		t.Fatalf("expected (50,0), got %v", m.Position)
	}
	if math.Abs(m.RemainingDistance()-150) > 1e-9 {
		t.Fatalf("expected 150 remaining, got %v", m.RemainingDistance())
	}
	m.Advance(0, 500)
	if math.Abs(m.Position.X()-50) > 1e-9 {
		t.Fatalf("expected zero speed to keep position, got %v", m.Position)
	}
}

func TestPathMoverReachesEnd(t *testing.T) {
	t.Parallel()
	m := NewPathMover(lPath())
	reached := false
	for i := 0; i < 10 && !reached; i++ {
		reached = m.Advance(1000, 1000)
	}
	if !reached || !m.ReachedEnd {
		t.Fatalf("expected mover to reach the end")
	}
	if m.RemainingDistance() != 0 {
		t.Fatalf("expected 0 remaining, got %v", m.RemainingDistance())
	}
	if m.Advance(1000, 1000) {
		t.Fatalf("expected end to be reported once")
	}
}

func TestPathMoverClone(t *testing.T) {
	t.Parallel()
	m := NewPathMover(lPath())
	m.Advance(100, 500)
	c := m.Clone(mgl64.Vec2{10, 10})
	if c.Index != m.Index {
		t.Fatalf("expected clone to keep index %d, got %d", m.Index, c.Index)
	}
	if c.Position != m.Position.Add(mgl64.Vec2{10, 10}) {
		t.Fatalf("expected shifted position, got %v", c.Position)
	}
	c.Advance(100, 100)
	if m.Position == c.Position {
		t.Fatalf("expected clone to move independently")
	}
}

func TestShortcutPath(t *testing.T) {
	t.Parallel()
	wps := make([]mgl64.Vec2, 10)
	for i := range wps {
		wps[i] = mgl64.Vec2{float64(i * 10), 0}
	}

	short := ShortcutPath(wps, 3)
	want := []float64{0, 30, 60, 90}
	if len(short) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(short))
	}
	for i, x := range want {
		if short[i].X() != x {
			t.Fatalf("expected point %d at x=%v, got %v", i, x, short[i].X())
		}
	}

	if got := ShortcutPath(wps, 0); len(got) != len(wps) {
		t.Fatalf("expected n=0 to keep the full path")
	}
	two := wps[:2]
	if got := ShortcutPath(two, 3); len(got) != 2 {
		t.Fatalf("expected short paths untouched")
	}
}
