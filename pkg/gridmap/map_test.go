// pkg/gridmap/map_test.go
package gridmap

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPathLayout(t *testing.T) {
	t.Parallel()
	m := NewGridMap(32, 18, 32)

	cells := m.PathCells()
	if cells[0] != (Point{0, 9}) {
		t.Fatalf("expected path to start at (0,9), got %v", cells[0])
	}
	last := cells[len(cells)-1]
	if last.X != 31 || last.Y != 5 {
		t.Fatalf("expected path to exit at (31,5), got %v", last)
	}
	for i := 1; i < len(cells); i++ {
		dx := cells[i].X - cells[i-1].X
		dy := cells[i].Y - cells[i-1].Y
		if dx*dx+dy*dy > 1 {
			t.Fatalf("expected adjacent path cells, got %v -> %v", cells[i-1], cells[i])
		}
	}
	if len(m.Waypoints()) != len(cells) {
		t.Fatalf("expected one waypoint per path cell")
	}
	if w := m.Waypoints()[0]; w != (mgl64.Vec2{16, 304}) {
		t.Fatalf("expected first waypoint at cell centre (16,304), got %v", w)
	}
}

func TestPlacement(t *testing.T) {
	t.Parallel()
	m := NewGridMap(32, 18, 32)

	if m.CanPlace(0, 9) || m.Occupy(0, 9) {
		t.Fatalf("expected path cell to be unbuildable")
	}
	if m.CanPlace(-1, 0) || m.CanPlace(32, 0) || m.At(40, 40) != CellPath {
		t.Fatalf("expected out of bounds cells to be unbuildable")
	}
	if !m.Occupy(0, 0) {
		t.Fatalf("expected (0,0) to be free")
	}
	if m.Occupy(0, 0) || m.At(0, 0) != CellTower {
		t.Fatalf("expected occupied cell to reject a second tower")
	}

	m.Release(0, 9)
	if m.At(0, 9) != CellPath {
		t.Fatalf("expected release to leave path cells alone")
	}
	m.Release(0, 0)
	if !m.CanPlace(0, 0) {
		t.Fatalf("expected released cell to be free")
	}

	m.Occupy(1, 1)
	m.Occupy(2, 2)
	m.Clear()
	if !m.CanPlace(1, 1) || !m.CanPlace(2, 2) || m.At(0, 9) != CellPath {
		t.Fatalf("expected clear to drop towers and keep the path")
	}
}

func TestCoordinateConversion(t *testing.T) {
	t.Parallel()
	m := NewGridMap(32, 18, 32)

	for _, c := range []Point{{0, 0}, {5, 7}, {31, 17}} {
		x, y := m.ToGrid(m.ToWorld(c.X, c.Y))
		if x != c.X || y != c.Y {
			t.Fatalf("expected round trip to %v, got (%d,%d)", c, x, y)
		}
	}
	if x, y := m.ToGrid(mgl64.Vec2{-1, 31.9}); x != -1 || y != 0 {
		t.Fatalf("expected floor conversion (-1,0), got (%d,%d)", x, y)
	}
}
