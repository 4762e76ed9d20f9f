// internal/ui/tower_palette.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/pkg/render"
)

const paletteSlot = 60

// TowerPalette — ряд архетипов башен с горячими клавишами 1..9.
type TowerPalette struct {
	X, Y   int
	order  []string
	towers map[string]defs.TowerDefinition
}

func NewTowerPalette(x, y int, lib *defs.Library) *TowerPalette {
	return &TowerPalette{X: x, Y: y, order: lib.TowerOrder, towers: lib.Towers}
}

// Archetype возвращает архетип по индексу горячей клавиши.
func (p *TowerPalette) Archetype(index int) (string, bool) {
	if index < 0 || index >= len(p.order) {
		return "", false
	}
	return p.order[index], true
}

func (p *TowerPalette) slot(i int) image.Rectangle {
	x := p.X + i*paletteSlot
	return image.Rect(x, p.Y, x+paletteSlot-4, p.Y+paletteSlot-8)
}

// HitTest возвращает архетип под курсором.
func (p *TowerPalette) HitTest(x, y int) (string, bool) {
	for i, id := range p.order {
		if image.Pt(x, y).In(p.slot(i)) {
			return id, true
		}
	}
	return "", false
}

func (p *TowerPalette) Draw(screen *ebiten.Image, face font.Face, selected string, money int) {
	for i, id := range p.order {
		def := p.towers[id]
		r := p.slot(i)
		x, y := float32(r.Min.X), float32(r.Min.Y)
		w, h := float32(r.Dx()), float32(r.Dy())

		bg := color.RGBA{40, 40, 50, 255}
		if id == selected {
			bg = color.RGBA{70, 70, 90, 255}
		}
		vector.DrawFilledRect(screen, x, y, w, h, bg, false)
		stroke := render.DarkenColor(def.Visuals.RGBA())
		if id == selected {
			stroke = config.SelectionColor
		}
		vector.StrokeRect(screen, x, y, w, h, 1, stroke, false)
		vector.DrawFilledCircle(screen, x+w/2, y+16, 8, def.Visuals.RGBA(), true)

		text.Draw(screen, fmt.Sprint(i+1), face, r.Min.X+3, r.Min.Y+12, config.TextLightColor)
		costColor := config.TextLightColor
		if money < def.Cost {
			costColor = config.HealthLowColor
		}
		render.DrawCentered(screen, face, fmt.Sprintf("$%d", def.Cost), r.Min.X+r.Dx()/2, r.Max.Y-10, costColor)
	}
}
