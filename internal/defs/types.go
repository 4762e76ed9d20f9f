// internal/defs/types.go
package defs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// SourceCategory identifies which tower archetype dealt the damage.
// Enemies look it up in their immunity and resistance tables.
type SourceCategory string

const (
	SourceNone     SourceCategory = ""
	SourceArcher   SourceCategory = "archer"
	SourceCannon   SourceCategory = "cannon"
	SourceSniper   SourceCategory = "sniper"
	SourceIce      SourceCategory = "ice"
	SourcePoison   SourceCategory = "poison"
	SourceBallista SourceCategory = "ballista"
	SourceFire     SourceCategory = "fire"
	SourceCatapult SourceCategory = "catapult"
)

// TargetPolicy selects which enemy in range a tower shoots at.
type TargetPolicy string

const (
	TargetFirst     TargetPolicy = "first"     // дальше всех прошёл по пути
	TargetStrongest TargetPolicy = "strongest" // больше всего текущего здоровья
)

// AttackMode defines how a tower delivers damage.
type AttackMode string

const (
	AttackProjectile  AttackMode = "projectile"
	AttackInstantArea AttackMode = "instant_area"
)

// Visuals contains parameters for rendering an entity in the debug viewer.
type Visuals struct {
	Color string  `yaml:"color"` // "#RRGGBB"
	Shape string  `yaml:"shape"`
	Size  float64 `yaml:"size"`
}

// RGBA parses the hex colour. Invalid values fall back to white.
func (v Visuals) RGBA() color.RGBA {
	c, err := ParseHexColor(v.Color)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return c
}

// ParseHexColor разбирает строку вида "#RRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: expected #RRGGBB", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
}
