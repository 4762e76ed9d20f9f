// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
	"geometric-td/pkg/render"
)

var controls = []string{
	"1-9     choose tower, click a free cell to build",
	"click   select tower (U upgrade, S sell, Esc deselect)",
	"Space   start next wave",
	"P       pause    F  speed 1x/2x/4x",
	"R       restart",
}

// MenuState — титульный экран со списком клавиш.
type MenuState struct {
	sm   *StateMachine
	next *GameState
	font font.Face
}

func NewMenuState(sm *StateMachine, next *GameState, face font.Face) *MenuState {
	return &MenuState{sm: sm, next: next, font: face}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(m.next)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	cx, y := config.ScreenWidth/2, config.ScreenHeight/3
	render.DrawCentered(screen, m.font, "GEOMETRIC TOWER DEFENSE", cx, y, config.SelectionColor)
	y += 40
	for _, line := range controls {
		render.DrawCentered(screen, m.font, line, cx, y, config.TextLightColor)
		y += 20
	}
	render.DrawCentered(screen, m.font, "press Space to begin", cx, y+20, config.SlowColor)
}

func (m *MenuState) Exit() {}
