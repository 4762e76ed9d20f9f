// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
	"geometric-td/internal/entity"
	"geometric-td/internal/types"
)

const (
	panelHeight    = 110
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 200
	btnWidth       = 150
	btnHeight      = 32
)

// PanelAction — что пользователь нажал на панели.
type PanelAction int

const (
	PanelNone PanelAction = iota
	PanelUpgrade
	PanelSell
)

// InfoPanel displays information about the selected tower.
type InfoPanel struct {
	IsVisible     bool
	TargetTower   types.EntityID
	fontFace      font.Face
	currentY      float64
	targetY       float64
	UpgradeButton *Button
	SellButton    *Button
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace:      face,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
		UpgradeButton: NewButton(image.Rectangle{}, "Upgrade"),
		SellButton:    NewButton(image.Rectangle{}, "Sell"),
	}
}

func (p *InfoPanel) SetTarget(id types.EntityID) {
	p.TargetTower = id
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update двигает панель и возвращает нажатое действие.
func (p *InfoPanel) Update(mouseX, mouseY int, clicked bool) PanelAction {
	// Анимация панели
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}

		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetTower = 0
		}
	}
	p.layout()

	if !p.IsVisible || p.TargetTower == 0 {
		return PanelNone
	}
	switch {
	case p.UpgradeButton.IsClicked(mouseX, mouseY, clicked):
		return PanelUpgrade
	case p.SellButton.IsClicked(mouseX, mouseY, clicked):
		return PanelSell
	}
	return PanelNone
}

// Contains — точка над панелью, клик не должен уйти на поле.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && image.Pt(x, y).In(p.rect())
}

func (p *InfoPanel) rect() image.Rectangle {
	return image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
}

func (p *InfoPanel) layout() {
	r := p.rect()
	p.SellButton.Rect = image.Rect(r.Max.X-btnWidth-20, r.Max.Y-btnHeight-15, r.Max.X-20, r.Max.Y-15)
	p.UpgradeButton.Rect = p.SellButton.Rect.Sub(image.Pt(btnWidth+20, 0))
}

func (p *InfoPanel) Draw(screen *ebiten.Image, info entity.TowerInfo, mouseX, mouseY int) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := p.rect()
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	if p.TargetTower == 0 || info.ID == 0 {
		return
	}

	x := panelRect.Min.X + 15
	y := panelRect.Min.Y + 20
	text.Draw(screen, fmt.Sprintf("%s  (level %d)", info.Name, info.Level), p.fontFace, x, y, config.SelectionColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Damage: %.1f", info.Damage), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Range: %.0f", info.Range), p.fontFace, x+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Fire Rate: %.2f/s", info.AttackRate), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Upgrades: %d/%d", info.UpgradeCount, info.MaxUpgrades), p.fontFace, x+columnSpacing, y, config.TextLightColor)

	p.UpgradeButton.Enabled = info.CanUpgrade
	p.UpgradeButton.Text = "Max level"
	if info.CanUpgrade {
		p.UpgradeButton.Text = fmt.Sprintf("Upgrade $%d", info.UpgradeCost)
	}
	p.SellButton.Text = fmt.Sprintf("Sell +$%d", info.SellValue)
	p.UpgradeButton.Draw(screen, p.fontFace, mouseX, mouseY)
	p.SellButton.Draw(screen, p.fontFace, mouseX, mouseY)
}
