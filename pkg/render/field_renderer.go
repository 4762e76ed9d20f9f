// pkg/render/field_renderer.go
package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/entity"
	"geometric-td/internal/system"
	"geometric-td/internal/types"
	"geometric-td/pkg/gridmap"
)

// FieldRenderer рисует сетку, путь и все сущности из снимка поля.
type FieldRenderer struct {
	grid     *gridmap.GridMap
	library  *defs.Library
	colors   MapColors
	fontFace font.Face
	offsetY  float32 // поле рисуется под HUD
	fillImg  *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
	mapImage *ebiten.Image // Поле для предрендеренной карты
}

func NewFieldRenderer(grid *gridmap.GridMap, lib *defs.Library, face font.Face, offsetY float32) *FieldRenderer {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	w := int(float64(grid.Cols) * grid.CellSize)
	h := int(float64(grid.Rows) * grid.CellSize)
	r := &FieldRenderer{
		grid:     grid,
		library:  lib,
		colors:   DefaultMapColors(),
		fontFace: face,
		offsetY:  offsetY,
		fillImg:  fillImg,
		fillVs:   make([]ebiten.Vertex, 0, 32),
		fillIs:   make([]uint16, 0, 48),
		mapImage: ebiten.NewImage(w, h),
	}
	// Отрисовываем карту один раз при инициализации
	r.RenderMapImage()
	return r
}

// RenderMapImage создаёт предрендеренное изображение задника
func (r *FieldRenderer) RenderMapImage() {
	r.mapImage.Clear()
	r.mapImage.Fill(r.colors.BackgroundColor)

	size := float32(r.grid.CellSize)
	for _, p := range r.grid.PathCells() {
		if !r.grid.InBounds(p.X, p.Y) {
			continue
		}
		vector.DrawFilledRect(r.mapImage, float32(p.X)*size, float32(p.Y)*size, size, size, r.colors.PathColor, false)
	}
	for x := 0; x <= r.grid.Cols; x++ {
		fx := float32(x) * size
		vector.StrokeLine(r.mapImage, fx, 0, fx, float32(r.grid.Rows)*size, r.colors.StrokeWidth, r.colors.GridColor, false)
	}
	for y := 0; y <= r.grid.Rows; y++ {
		fy := float32(y) * size
		vector.StrokeLine(r.mapImage, 0, fy, float32(r.grid.Cols)*size, fy, r.colors.StrokeWidth, r.colors.GridColor, false)
	}

	wps := r.grid.Waypoints()
	if len(wps) > 0 {
		entry, exit := wps[0], wps[len(wps)-1]
		vector.DrawFilledCircle(r.mapImage, float32(entry.X()), float32(entry.Y()), size/4, r.colors.EntryColor, true)
		vector.DrawFilledCircle(r.mapImage, float32(exit.X()), float32(exit.Y()), size/4, r.colors.ExitColor, true)
	}
}

// Draw рисует поле. selected — выбранная башня (0, если нет), hoverX/hoverY — клетка под курсором.
func (r *FieldRenderer) Draw(screen *ebiten.Image, field system.Snapshot, selected types.EntityID, hoverX, hoverY int, placing string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(r.offsetY))
	screen.DrawImage(r.mapImage, op)

	if placing != "" && r.grid.InBounds(hoverX, hoverY) {
		r.drawPlacementPreview(screen, placing, hoverX, hoverY)
	}

	for _, t := range field.Towers {
		r.drawTower(screen, t, t.ID == selected)
	}
	for _, e := range field.Enemies {
		r.drawEnemy(screen, e)
	}
	for _, p := range field.Projectiles {
		c := config.TextLightColor
		if def, ok := r.library.Towers[p.Category]; ok {
			c = def.Visuals.RGBA()
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y)+r.offsetY, config.ProjectileRadius, c, true)
	}
}

func (r *FieldRenderer) drawPlacementPreview(screen *ebiten.Image, archetype string, gx, gy int) {
	def, ok := r.library.Towers[archetype]
	if !ok {
		return
	}
	size := float32(r.grid.CellSize)
	c := config.RangeColor
	if !r.grid.CanPlace(gx, gy) {
		c = config.BlockedColor
	}
	vector.DrawFilledRect(screen, float32(gx)*size, float32(gy)*size+r.offsetY, size, size, c, false)
	center := r.grid.ToWorld(gx, gy)
	vector.StrokeCircle(screen, float32(center.X()), float32(center.Y())+r.offsetY, float32(def.Range), 1, config.RangeColor, true)
}

func (r *FieldRenderer) drawTower(screen *ebiten.Image, t entity.TowerSnapshot, selected bool) {
	x, y := float32(t.X), float32(t.Y)+r.offsetY
	radius := float32(r.grid.CellSize * config.TowerRadiusRatio)

	c := config.TextLightColor
	shape := "square"
	if def, ok := r.library.Towers[t.Archetype]; ok {
		c = def.Visuals.RGBA()
		if def.Visuals.Shape != "" {
			shape = def.Visuals.Shape
		}
	}
	r.fillShape(screen, shape, x, y, radius, c)

	stroke := DarkenColor(c)
	if selected {
		stroke = config.SelectionColor
		vector.StrokeCircle(screen, x, y, float32(t.Range), 1, config.RangeColor, true)
	}
	vector.StrokeCircle(screen, x, y, radius+2, 1.5, stroke, true)

	if t.Level > 1 {
		DrawCentered(screen, r.fontFace, strconv.Itoa(t.Level), int(x), int(y), config.TextLightColor)
	}
}

func (r *FieldRenderer) drawEnemy(screen *ebiten.Image, e entity.EnemySnapshot) {
	x, y := float32(e.X), float32(e.Y)+r.offsetY

	c := config.TextLightColor
	shape := "circle"
	size := float32(config.EnemyRadius * 2)
	if def, ok := r.library.Enemies[e.Archetype]; ok {
		c = def.Visuals.RGBA()
		if def.Visuals.Shape != "" {
			shape = def.Visuals.Shape
		}
		if def.Visuals.Size > 0 {
			size = float32(def.Visuals.Size)
		}
	}
	if e.Generation > 1 {
		size *= float32(math.Pow(0.8, float64(e.Generation-1)))
	}
	radius := size / 2
	if e.Frozen {
		c = DarkenColor(c)
	}
	r.fillShape(screen, shape, x, y, radius, c)

	// Кольца эффектов
	ring := radius + 2
	if e.Slowed {
		vector.StrokeCircle(screen, x, y, ring, 1.5, config.SlowColor, true)
		ring += 2
	}
	if e.Poisoned {
		vector.StrokeCircle(screen, x, y, ring, 1.5, config.PoisonColor, true)
		ring += 2
	}
	if e.Burning {
		vector.StrokeCircle(screen, x, y, ring, 1.5, config.BurnColor, true)
		ring += 2
	}
	if e.Invulnerable {
		vector.StrokeCircle(screen, x, y, ring+1, 2, config.InvulnColor, true)
	}

	if e.MaxHealth <= 0 {
		return
	}
	ratio := e.Health / e.MaxHealth
	barW := size
	barY := y - radius - 6
	vector.DrawFilledRect(screen, x-barW/2, barY, barW, config.HealthBarHeight, DarkenColor(config.HealthLowColor), false)
	vector.DrawFilledRect(screen, x-barW/2, barY, barW*float32(ratio), config.HealthBarHeight, HealthColor(ratio), false)
}

// fillShape заливает фигуру по имени из таблицы визуалов.
func (r *FieldRenderer) fillShape(target *ebiten.Image, shape string, x, y, radius float32, c color.RGBA) {
	var path vector.Path
	switch shape {
	case "circle":
		vector.DrawFilledCircle(target, x, y, radius, c, true)
		return
	case "square":
		vector.DrawFilledRect(target, x-radius, y-radius, radius*2, radius*2, c, true)
		return
	case "triangle":
		polygon(&path, x, y, radius, 3, -math.Pi/2)
	case "diamond":
		polygon(&path, x, y, radius, 4, -math.Pi/2)
	case "hexagon":
		polygon(&path, x, y, radius, 6, math.Pi/6)
	case "star":
		star(&path, x, y, radius, radius*0.45, 5)
	default:
		vector.DrawFilledCircle(target, x, y, radius, c, true)
		return
	}

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	for i := range r.fillVs {
		r.fillVs[i].ColorR = float32(c.R) / 255
		r.fillVs[i].ColorG = float32(c.G) / 255
		r.fillVs[i].ColorB = float32(c.B) / 255
		r.fillVs[i].ColorA = float32(c.A) / 255
	}
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func polygon(path *vector.Path, x, y, radius float32, sides int, phase float64) {
	for i := 0; i < sides; i++ {
		angle := phase + 2*math.Pi*float64(i)/float64(sides)
		px := x + radius*float32(math.Cos(angle))
		py := y + radius*float32(math.Sin(angle))
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
}

func star(path *vector.Path, x, y, outer, inner float32, points int) {
	for i := 0; i < points*2; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + math.Pi*float64(i)/float64(points)
		px := x + radius*float32(math.Cos(angle))
		py := y + radius*float32(math.Sin(angle))
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
}

// DrawCentered выводит строку с центром в точке (x, y).
func DrawCentered(screen *ebiten.Image, face font.Face, s string, x, y int, c color.Color) {
	b := text.BoundString(face, s)
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	text.Draw(screen, s, face, x-w/2, y+h/2, c)
}
