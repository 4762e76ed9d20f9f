// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"geometric-td/internal/app"
	"geometric-td/internal/config"
	"geometric-td/internal/logging"
	"geometric-td/internal/types"
	"geometric-td/internal/ui"
	"geometric-td/pkg/gridmap"
	"geometric-td/pkg/render"
)

const messageDuration = 2.0 // секунды

var paletteKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// GameState — состояние игры
type GameState struct {
	sm          *StateMachine
	game        *app.Game
	grid        *gridmap.GridMap
	renderer    *render.FieldRenderer
	font        font.Face
	log         *zap.Logger
	palette     *ui.TowerPalette
	lives       *ui.LivesIndicator
	wave        *ui.WaveIndicator
	infoPanel   *ui.InfoPanel
	pauseButton *ui.PauseButton
	speedButton *ui.SpeedButton

	placing  string         // выбранный архетип для постройки
	selected types.EntityID // выбранная башня
	message  string
	msgTimer float64
	mouseX   int
	mouseY   int
}

func NewGameState(sm *StateMachine, game *app.Game, grid *gridmap.GridMap, face font.Face, log *zap.Logger) *GameState {
	return &GameState{
		sm:          sm,
		game:        game,
		grid:        grid,
		renderer:    render.NewFieldRenderer(grid, game.Library, face, config.HUDHeight),
		font:        face,
		log:         logging.OrNop(log),
		palette:     ui.NewTowerPalette(330, 8, game.Library),
		lives:       ui.NewLivesIndicator(10, 24),
		wave:        ui.NewWaveIndicator(240, 24),
		infoPanel:   ui.NewInfoPanel(face),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-80, config.HUDHeight/2, 10, config.TextLightColor, config.HealthGoodColor),
		speedButton: ui.NewSpeedButton(config.ScreenWidth-30, config.HUDHeight/2, 10,
			[]color.RGBA{config.TextLightColor, config.HealthMidColor, config.HealthLowColor}),
	}
}

func (g *GameState) Enter() {
	g.pauseButton.SetPaused(false)
}

func (g *GameState) Update(deltaTime float64) {
	g.mouseX, g.mouseY = ebiten.CursorPosition()
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if g.msgTimer > 0 {
		g.msgTimer -= deltaTime
	}

	switch g.infoPanel.Update(g.mouseX, g.mouseY, clicked) {
	case ui.PanelUpgrade:
		g.upgradeSelected()
		clicked = false
	case ui.PanelSell:
		g.sellSelected()
		clicked = false
	}

	// тик идёт всегда: после перехода в паузу симуляция уже стоит
	if !g.handleKeys() && clicked {
		g.handleClick(g.mouseX, g.mouseY)
	}

	g.game.Update(deltaTime * 1000)

	// Башню могли продать по сети или сбросом
	if g.selected != 0 {
		if _, err := g.game.TowerInfo(g.selected); err != nil {
			g.deselect()
		}
	}
	g.speedButton.SetMultiplier(g.game.SpeedMultiplier)
}

// handleKeys возвращает true, если состояние сменилось.
func (g *GameState) handleKeys() bool {
	for i, key := range paletteKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if id, ok := g.palette.Archetype(i); ok {
			g.choose(id)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.sm.SetState(NewPauseState(g.sm, g, g.font))
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.placing = ""
		g.deselect()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.startWave()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.game.CycleSpeed()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.game.Reset()
		g.placing = ""
		g.deselect()
		g.flash("game reset")
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.upgradeSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.sellSelected()
	}
	return false
}

// handleClick разбирает клик: сначала UI, потом поле.
func (g *GameState) handleClick(x, y int) {
	if g.pauseButton.IsClicked(x, y) {
		g.sm.SetState(NewPauseState(g.sm, g, g.font))
		return
	}
	if g.speedButton.IsClicked(x, y) {
		g.game.CycleSpeed()
		return
	}
	if id, ok := g.palette.HitTest(x, y); ok {
		g.choose(id)
		return
	}
	if g.infoPanel.Contains(x, y) || y < config.HUDHeight {
		return
	}

	gx, gy := g.grid.ToGrid(mgl64.Vec2{float64(x), float64(y - config.HUDHeight)})
	if t := g.game.TowerAt(gx, gy); t != nil {
		g.placing = ""
		g.selected = t.ID
		g.infoPanel.SetTarget(t.ID)
		return
	}
	if g.placing == "" {
		g.deselect()
		return
	}
	if _, err := g.game.PlaceTower(g.placing, gx, gy); err != nil {
		g.flash(err.Error())
	}
}

func (g *GameState) choose(archetype string) {
	if g.placing == archetype {
		g.placing = ""
		return
	}
	g.placing = archetype
	g.deselect()
}

func (g *GameState) deselect() {
	g.selected = 0
	g.infoPanel.Hide()
}

func (g *GameState) startWave() {
	wave, err := g.game.StartNextWave()
	if err != nil {
		g.flash(err.Error())
		return
	}
	g.flash(fmt.Sprintf("wave %d", wave))
}

func (g *GameState) upgradeSelected() {
	if g.selected == 0 {
		return
	}
	info, err := g.game.UpgradeTower(g.selected)
	switch {
	case errors.Is(err, app.ErrMaxLevel):
		g.flash("max level")
	case err != nil:
		g.flash(err.Error())
	default:
		g.flash(fmt.Sprintf("%s level %d", info.Name, info.Level))
	}
}

func (g *GameState) sellSelected() {
	if g.selected == 0 {
		return
	}
	refund, err := g.game.SellTower(g.selected)
	if err != nil {
		g.flash(err.Error())
		return
	}
	g.flash(fmt.Sprintf("sold for $%d", refund))
	g.deselect()
}

func (g *GameState) flash(msg string) {
	g.message = msg
	g.msgTimer = messageDuration
	g.log.Debug("viewer", zap.String("message", msg))
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	snap := g.game.Snapshot()
	player := snap.Player

	gx, gy := g.grid.ToGrid(mgl64.Vec2{float64(g.mouseX), float64(g.mouseY - config.HUDHeight)})
	g.renderer.Draw(screen, snap.Field, g.selected, gx, gy, g.placing)

	// HUD
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.HUDHeight, color.RGBA{15, 15, 22, 255}, false)
	g.lives.Draw(screen, g.font, player.Lives, g.game.StartingLives())
	text.Draw(screen, fmt.Sprintf("$%d", player.Money), g.font, 130, 20, config.HealthMidColor)
	g.wave.Draw(screen, g.font, player.Wave, player.TotalWaves, snap.Field.Phase, snap.Field.Queued)
	g.palette.Draw(screen, g.font, g.placing, player.Money)
	g.pauseButton.Draw(screen)
	g.speedButton.Draw(screen)

	// Пустая проекция, пока панель уезжает после снятия выбора
	info, _ := g.game.TowerInfo(g.selected)
	g.infoPanel.Draw(screen, info, g.mouseX, g.mouseY)

	if g.msgTimer > 0 {
		render.DrawCentered(screen, g.font, g.message, config.ScreenWidth/2, config.HUDHeight+16, config.TextLightColor)
	}

	switch {
	case player.GameOver:
		g.drawBanner(screen, "GAME OVER", "press R to restart", config.HealthLowColor)
	case player.Victory:
		g.drawBanner(screen, "VICTORY", fmt.Sprintf("lives left: %d, R to restart", player.Lives), config.HealthGoodColor)
	}
}

func (g *GameState) drawBanner(screen *ebiten.Image, title, sub string, c color.RGBA) {
	h := float32(80)
	y := float32(config.ScreenHeight)/2 - h/2
	vector.DrawFilledRect(screen, 0, y, config.ScreenWidth, h, color.RGBA{0, 0, 0, 180}, false)
	render.DrawCentered(screen, g.font, title, config.ScreenWidth/2, int(y)+30, c)
	render.DrawCentered(screen, g.font, sub, config.ScreenWidth/2, int(y)+55, config.TextLightColor)
}

func (g *GameState) Exit() {}
