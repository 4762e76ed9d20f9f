// internal/ui/wave_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y         int
	Color        color.RGBA
	FinalColor   color.RGBA
	OutlineColor color.RGBA
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y int) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        config.SlowColor,
		FinalColor:   config.HealthLowColor,
		OutlineColor: color.RGBA{0, 0, 0, 255},
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw отрисовывает индикатор: номер волны, фазу и остаток очереди.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, wave, total int, phase string, queued int) {
	label := "-"
	if wave > 0 {
		label = toRoman(wave)
	}
	textColor := i.Color
	if total > 0 && wave == total {
		textColor = i.FinalColor // Последняя волна
	}

	// Обводка
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, face, i.X+dx, i.Y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, i.X, i.Y, textColor)

	status := fmt.Sprintf("%d/%d %s", wave, total, phase)
	if queued > 0 {
		status += fmt.Sprintf(" (%d)", queued)
	}
	text.Draw(screen, status, face, i.X, i.Y+16, config.TextLightColor)
}
