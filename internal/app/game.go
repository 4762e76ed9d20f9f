// internal/app/game.go
package app

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/entity"
	"geometric-td/internal/event"
	"geometric-td/internal/logging"
	"geometric-td/internal/system"
	"geometric-td/internal/types"
	"geometric-td/internal/utils"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrUnknownArchetype  = errors.New("unknown tower archetype")
	ErrMaxLevel          = errors.New("tower at max level")
	ErrNoTower           = errors.New("no such tower")
	ErrGameOver          = errors.New("game over")
)

// Placement — проверка и занятие клеток при постройке башен.
type Placement interface {
	CanPlace(x, y int) bool
	Occupy(x, y int) bool
	Release(x, y int)
	ToWorld(x, y int) mgl64.Vec2
}

// Board — карта целиком: путь для врагов и клетки для башен.
type Board interface {
	Placement
	system.PathProvider
	Clear()
}

// Game holds the player ledger around the encounter and serves
// placement, upgrade and sell requests.
type Game struct {
	Encounter       *system.EncounterManager
	EventDispatcher *event.Dispatcher
	Library         *defs.Library
	Rng             *utils.PRNGService
	SpeedMultiplier float64

	board    Board
	settings config.SimulationConfig
	log      *zap.Logger

	lives    int
	money    int
	wave     int // последняя начатая волна
	gameOver bool
	victory  bool
	isPaused bool
	gameTime float64
}

// PlayerState — проекция для HUD и клиентов.
type PlayerState struct {
	Lives      int     `json:"lives"`
	Money      int     `json:"money"`
	Wave       int     `json:"wave"`
	TotalWaves int     `json:"total_waves"`
	GameOver   bool    `json:"game_over"`
	Victory    bool    `json:"victory"`
	Paused     bool    `json:"paused"`
	Speed      float64 `json:"speed"`
	GameTimeMs float64 `json:"game_time_ms"`
}

// NewGame initializes a new game instance.
func NewGame(lib *defs.Library, board Board, cfg config.SimulationConfig, log *zap.Logger) *Game {
	log = logging.OrNop(log)
	dispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(cfg.Seed)

	g := &Game{
		EventDispatcher: dispatcher,
		Library:         lib,
		Rng:             rng,
		SpeedMultiplier: 1,
		board:           board,
		settings:        cfg,
		log:             log,
		lives:           cfg.StartingLives,
		money:           cfg.StartingMoney,
	}
	g.Encounter = system.NewEncounterManager(lib, board, dispatcher, rng, log.Named("encounter"))
	g.Encounter.SetLedger(g)

	dispatcher.Subscribe(event.WaveCompleted, &GameEventListener{game: g})
	return g
}

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveCompleted:
		data, _ := e.Data.(event.WaveData)
		l.game.completeWave(data.Wave)
	}
}

func (g *Game) completeWave(wave int) {
	if g.gameOver {
		return
	}
	bonus := g.settings.WaveBonusBase + g.settings.WaveBonusPerWave*wave
	g.money += bonus
	g.log.Info("wave bonus", zap.Int("wave", wave), zap.Int("bonus", bonus), zap.Int("money", g.money))
	if wave >= g.Library.LastWave() {
		g.victory = true
		g.log.Info("all waves cleared", zap.Int("lives", g.lives))
	}
}

// ApplyTick реализует system.Ledger.
func (g *Game) ApplyTick(breachDamage, bounty int) {
	g.money += bounty
	if breachDamage == 0 || g.gameOver {
		return
	}
	g.lives -= breachDamage
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		g.log.Info("game over", zap.Int("wave", g.wave))
	}
}

// Update progresses the game state by one frame.
func (g *Game) Update(deltaMs float64) system.TickReport {
	if g.isPaused || g.gameOver {
		return system.TickReport{Wave: g.wave}
	}
	dt := deltaMs * g.SpeedMultiplier
	g.gameTime += dt
	return g.Encounter.Update(dt)
}

// StartNextWave begins the next enemy wave.
func (g *Game) StartNextWave() (int, error) {
	if g.gameOver {
		return 0, ErrGameOver
	}
	next := g.wave + 1
	if err := g.Encounter.StartWave(next); err != nil {
		return 0, err
	}
	g.wave = next
	return next, nil
}

// Reset начинает игру заново на той же карте.
func (g *Game) Reset() {
	g.Encounter.Reset()
	g.board.Clear()
	g.lives = g.settings.StartingLives
	g.money = g.settings.StartingMoney
	g.wave = 0
	g.gameOver = false
	g.victory = false
	g.isPaused = false
	g.gameTime = 0
	g.log.Info("game reset")
}

func (g *Game) TogglePause() {
	g.isPaused = !g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

// CycleSpeed переключает скорость 1x → 2x → 4x → 1x.
func (g *Game) CycleSpeed() {
	switch g.SpeedMultiplier {
	case 1:
		g.SpeedMultiplier = 2
	case 2:
		g.SpeedMultiplier = 4
	default:
		g.SpeedMultiplier = 1
	}
}

func (g *Game) Lives() int     { return g.lives }
func (g *Game) Money() int     { return g.money }
func (g *Game) Wave() int      { return g.wave }
func (g *Game) GameOver() bool { return g.gameOver }
func (g *Game) Victory() bool  { return g.victory }

// StartingLives — запас жизней новой игры, для индикатора.
func (g *Game) StartingLives() int { return g.settings.StartingLives }

func (g *Game) State() PlayerState {
	return PlayerState{
		Lives:      g.lives,
		Money:      g.money,
		Wave:       g.wave,
		TotalWaves: g.Library.LastWave(),
		GameOver:   g.gameOver,
		Victory:    g.victory,
		Paused:     g.isPaused,
		Speed:      g.SpeedMultiplier,
		GameTimeMs: g.gameTime,
	}
}

// Snapshot — поле и игрок одним значением, для сети и отладки.
type Snapshot struct {
	Player PlayerState     `json:"player"`
	Field  system.Snapshot `json:"field"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{Player: g.State(), Field: g.Encounter.Snapshot()}
}

// TowerInfo возвращает проекцию башни для панели.
func (g *Game) TowerInfo(id types.EntityID) (entity.TowerInfo, error) {
	t := g.Encounter.Tower(id)
	if t == nil {
		return entity.TowerInfo{}, ErrNoTower
	}
	return t.Info(), nil
}
