// internal/ui/lives_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
)

const (
	LivesCols          = 10
	LivesCircleRadius  = 4.0
	LivesCircleSpacing = 3.0
)

// LivesIndicator отображает жизни игрока сеткой кружков.
type LivesIndicator struct {
	X, Y float32
}

// NewLivesIndicator создает новый индикатор жизней.
func NewLivesIndicator(x, y float32) *LivesIndicator {
	return &LivesIndicator{X: x, Y: y}
}

// Draw рисует индикатор. Когда жизней осталось не больше половины, кружки красные.
func (i *LivesIndicator) Draw(screen *ebiten.Image, face font.Face, lives, maxLives int) {
	half := maxLives / 2
	step := float32(LivesCircleRadius*2 + LivesCircleSpacing)

	for j := 0; j < maxLives; j++ {
		row := j / LivesCols
		col := j % LivesCols
		x := i.X + float32(col)*step + LivesCircleRadius
		y := i.Y + float32(row)*step + LivesCircleRadius

		var c color.RGBA
		switch {
		case j >= lives:
			c = color.RGBA{0, 0, 0, 255} // Пустые ячейки
		case lives <= half:
			c = config.HealthLowColor
		default:
			c = config.HealthGoodColor
		}
		vector.DrawFilledCircle(screen, x, y, LivesCircleRadius, c, true)
		vector.StrokeCircle(screen, x, y, LivesCircleRadius, 1, config.TextLightColor, true)
	}

	label := strconv.Itoa(lives) + "/" + strconv.Itoa(maxLives)
	text.Draw(screen, label, face, int(i.X), int(i.Y)-4, config.TextLightColor)
}
