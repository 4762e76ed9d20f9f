// pkg/render/color.go
package render

import (
	"image/color"

	"geometric-td/internal/config"
)

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	BackgroundColor color.RGBA
	GridColor       color.RGBA
	PathColor       color.RGBA
	EntryColor      color.RGBA
	ExitColor       color.RGBA
	TextLightColor  color.RGBA
	StrokeWidth     float32
}

// DefaultMapColors берёт цвета из config.
func DefaultMapColors() MapColors {
	return MapColors{
		BackgroundColor: config.BackgroundColor,
		GridColor:       config.GridColor,
		PathColor:       config.PathColor,
		EntryColor:      color.RGBA{60, 160, 90, 255},
		ExitColor:       color.RGBA{170, 60, 60, 255},
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     1,
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// HealthColor — зелёный, жёлтый или красный по доле здоровья.
func HealthColor(ratio float64) color.RGBA {
	switch {
	case ratio > 0.6:
		return config.HealthGoodColor
	case ratio > 0.3:
		return config.HealthMidColor
	default:
		return config.HealthLowColor
	}
}
