// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"geometric-td/internal/app"
	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/logging"
	"geometric-td/internal/state"
	"geometric-td/pkg/gridmap"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	maxDelta       float64 // секунды
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > a.maxDelta {
		deltaTime = a.maxDelta
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "path to settings.toml")
	skipMenu := flag.Bool("skip-menu", false, "start straight in the game")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(settings.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if *pprofAddr != "" {
		go func() {
			logger.Warn("pprof stopped", zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	lib, err := defs.LoadFromSettings(settings.Data)
	if err != nil {
		logger.Fatal("load definitions", zap.Error(err))
	}

	grid := gridmap.NewGridMap(settings.Map.Cols, settings.Map.Rows, settings.Map.CellSize)
	game := app.NewGame(lib, grid, settings.Simulation, logger.Named("game"))

	face := basicfont.Face7x13
	sm := state.NewStateMachine()
	gameState := state.NewGameState(sm, game, grid, face, logger.Named("viewer"))
	if *skipMenu {
		sm.SetState(gameState)
	} else {
		sm.SetState(state.NewMenuState(sm, gameState, face))
	}

	appGame := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		maxDelta:       settings.Simulation.MaxDeltaMs / 1000,
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Geometric Tower Defense")
	logger.Info("viewer started",
		zap.Int("towers", len(lib.Towers)), zap.Int("enemies", len(lib.Enemies)), zap.Int("waves", len(lib.Waves)))
	if err := ebiten.RunGame(appGame); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
