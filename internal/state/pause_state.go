// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"geometric-td/internal/config"
	"geometric-td/pkg/render"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает игру и рисует её под затемнением.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
	font          font.Face
}

func NewPauseState(sm *StateMachine, prev *GameState, face font.Face) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prev,
		font:          face,
	}
}

func (s *PauseState) Enter() {
	s.previousState.pauseButton.SetPaused(true)
	if !s.previousState.game.IsPaused() {
		s.previousState.game.TogglePause()
	}
}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = unpause || s.previousState.pauseButton.IsClicked(x, y)
	}
	if unpause {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	render.DrawCentered(screen, s.font, "PAUSED", config.ScreenWidth/2, config.ScreenHeight/2, config.TextLightColor)
	render.DrawCentered(screen, s.font, "P or Esc to resume", config.ScreenWidth/2, config.ScreenHeight/2+20, config.TextLightColor)
}

func (s *PauseState) Exit() {
	if s.previousState.game.IsPaused() {
		s.previousState.game.TogglePause()
	}
}
