// pkg/gridmap/map.go
package gridmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Cell uint8

const (
	CellFree Cell = iota
	CellPath
	CellTower
)

// Point — координаты клетки сетки.
type Point struct {
	X, Y int
}

// GridMap — прямоугольная сетка с S-образным путём слева направо.
type GridMap struct {
	Cols     int
	Rows     int
	CellSize float64

	cells     []Cell
	path      []Point
	waypoints []mgl64.Vec2
}

func NewGridMap(cols, rows int, cellSize float64) *GridMap {
	m := &GridMap{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		cells:    make([]Cell, cols*rows),
	}
	m.path = sPath(cols, rows)
	m.waypoints = make([]mgl64.Vec2, 0, len(m.path))
	for _, p := range m.path {
		if m.InBounds(p.X, p.Y) {
			m.cells[m.index(p.X, p.Y)] = CellPath
		}
		m.waypoints = append(m.waypoints, m.ToWorld(p.X, p.Y))
	}
	return m
}

// sPath строит путь: вправо, вниз, вправо, вверх, вправо до выхода.
func sPath(cols, rows int) []Point {
	startY := rows / 2
	x1 := int(math.Floor(float64(cols) * 0.3))
	y1 := int(math.Floor(float64(rows) * 0.7))
	x2 := int(math.Floor(float64(cols) * 0.7))
	y2 := int(math.Floor(float64(rows) * 0.3))

	path := []Point{{0, startY}}
	for x := 1; x < x1; x++ {
		path = append(path, Point{x, startY})
	}
	for y := startY; y < y1; y++ {
		path = append(path, Point{x1, y})
	}
	for x := x1; x < x2; x++ {
		path = append(path, Point{x, y1})
	}
	for y := y1; y > y2; y-- {
		path = append(path, Point{x2, y})
	}
	for x := x2; x < cols; x++ {
		path = append(path, Point{x, y2})
	}
	return path
}

func (m *GridMap) index(x, y int) int {
	return y*m.Cols + x
}

func (m *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Cols && y >= 0 && y < m.Rows
}

// At возвращает содержимое клетки; вне сетки — CellPath (строить нельзя).
func (m *GridMap) At(x, y int) Cell {
	if !m.InBounds(x, y) {
		return CellPath
	}
	return m.cells[m.index(x, y)]
}

// CanPlace — клетка внутри сетки, не путь и не занята.
func (m *GridMap) CanPlace(x, y int) bool {
	return m.InBounds(x, y) && m.cells[m.index(x, y)] == CellFree
}

// Occupy занимает клетку башней.
func (m *GridMap) Occupy(x, y int) bool {
	if !m.CanPlace(x, y) {
		return false
	}
	m.cells[m.index(x, y)] = CellTower
	return true
}

// Release освобождает клетку после продажи.
func (m *GridMap) Release(x, y int) {
	if m.InBounds(x, y) && m.cells[m.index(x, y)] == CellTower {
		m.cells[m.index(x, y)] = CellFree
	}
}

// Clear снимает все башни, путь остаётся.
func (m *GridMap) Clear() {
	for i, c := range m.cells {
		if c == CellTower {
			m.cells[i] = CellFree
		}
	}
}

// ToWorld — центр клетки в пикселях.
func (m *GridMap) ToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(x)*m.CellSize + m.CellSize/2,
		float64(y)*m.CellSize + m.CellSize/2,
	}
}

// ToGrid — клетка, содержащая точку.
func (m *GridMap) ToGrid(p mgl64.Vec2) (int, int) {
	return int(math.Floor(p.X() / m.CellSize)), int(math.Floor(p.Y() / m.CellSize))
}

// Waypoints — центры клеток пути по порядку.
func (m *GridMap) Waypoints() []mgl64.Vec2 {
	return m.waypoints
}

// PathCells — клетки пути по порядку.
func (m *GridMap) PathCells() []Point {
	return m.path
}
