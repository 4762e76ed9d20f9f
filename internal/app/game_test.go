// internal/app/game_test.go
package app

import (
	"errors"
	"testing"

	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/system"
	"geometric-td/pkg/gridmap"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	cfg := config.Defaults().Simulation
	cfg.Seed = 1
	return NewGame(lib, gridmap.NewGridMap(config.MapCols, config.MapRows, config.CellSize), cfg, nil)
}

func TestPlaceTowerValidation(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	if _, err := g.PlaceTower("laser", 0, 0); !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
	if _, err := g.PlaceTower("archer", 0, 9); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition on a path cell, got %v", err)
	}
	if _, err := g.PlaceTower("archer", -1, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition outside the grid, got %v", err)
	}
	if g.Money() != 500 {
		t.Fatalf("expected failed placements to cost nothing, got %d", g.Money())
	}

	tower, err := g.PlaceTower("archer", 0, 0)
	if err != nil {
		t.Fatalf("expected placement to succeed, got %v", err)
	}
	if g.Money() != 400 || tower.ID != 1 {
		t.Fatalf("expected money 400 and id 1, got %d and %d", g.Money(), tower.ID)
	}
	if _, err := g.PlaceTower("archer", 0, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected occupied cell to be rejected, got %v", err)
	}
	if g.TowerAt(0, 0) != tower {
		t.Fatalf("expected TowerAt to find the tower")
	}
}

func TestPlaceTowerInsufficientFunds(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	if _, err := g.PlaceTower("ballista", 0, 0); err != nil {
		t.Fatalf("expected first ballista to fit the budget, got %v", err)
	}
	if _, err := g.PlaceTower("archer", 1, 0); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if g.Money() != 0 || !g.board.CanPlace(1, 0) {
		t.Fatalf("expected no money and a free cell, got %d", g.Money())
	}
}

func TestUpgradeAndSell(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	tower, err := g.PlaceTower("archer", 0, 0)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	info, err := g.UpgradeTower(tower.ID)
	if err != nil {
		t.Fatalf("expected upgrade, got %v", err)
	}
	if info.Level != 2 || g.Money() != 350 {
		t.Fatalf("expected level 2 and money 350, got %d and %d", info.Level, g.Money())
	}

	refund, err := g.SellTower(tower.ID)
	if err != nil {
		t.Fatalf("expected sale, got %v", err)
	}
	if refund != 75 || g.Money() != 425 {
		t.Fatalf("expected refund 75 and money 425, got %d and %d", refund, g.Money())
	}
	if _, err := g.TowerInfo(tower.ID); !errors.Is(err, ErrNoTower) {
		t.Fatalf("expected sold tower to be gone, got %v", err)
	}
	if _, err := g.SellTower(tower.ID); !errors.Is(err, ErrNoTower) {
		t.Fatalf("expected ErrNoTower on second sale, got %v", err)
	}
	if _, err := g.PlaceTower("archer", 0, 0); err != nil {
		t.Fatalf("expected sold cell to be buildable again, got %v", err)
	}
}

func TestUpgradeLimits(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	tower, err := g.PlaceTower("archer", 0, 0)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	g.money = 10000

	for i := 0; i < 3; i++ {
		if _, err := g.UpgradeTower(tower.ID); err != nil {
			t.Fatalf("upgrade %d: %v", i+1, err)
		}
	}
	if _, err := g.UpgradeTower(tower.ID); !errors.Is(err, ErrMaxLevel) {
		t.Fatalf("expected ErrMaxLevel, got %v", err)
	}

	other, err := g.PlaceTower("archer", 1, 0)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	g.money = 0
	if _, err := g.UpgradeTower(other.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if info, _ := g.TowerInfo(other.ID); info.Level != 1 {
		t.Fatalf("expected failed upgrade to leave level 1, got %d", info.Level)
	}
}

func TestWaveBonusAndVictory(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	g.completeWave(1)
	if g.Money() != 560 {
		t.Fatalf("expected bonus 60 for wave 1, got money %d", g.Money())
	}
	if g.Victory() {
		t.Fatalf("expected no victory after wave 1")
	}

	g.completeWave(g.Library.LastWave())
	if !g.Victory() {
		t.Fatalf("expected victory after the last wave")
	}
}

func TestGameOver(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	g.ApplyTick(5, 30)
	if g.Lives() != 15 || g.Money() != 530 {
		t.Fatalf("expected 15 lives and 530 money, got %d and %d", g.Lives(), g.Money())
	}
	g.ApplyTick(50, 0)
	if !g.GameOver() || g.Lives() != 0 {
		t.Fatalf("expected game over with lives clamped at 0, got %v %d", g.GameOver(), g.Lives())
	}
	if _, err := g.StartNextWave(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, err := g.PlaceTower("archer", 0, 0); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver on placement, got %v", err)
	}
	if r := g.Update(1000); r.Spawned != 0 {
		t.Fatalf("expected frozen simulation after game over")
	}

	g.Reset()
	if g.GameOver() || g.Lives() != 20 || g.Money() != 500 || g.Wave() != 0 {
		t.Fatalf("expected fresh game after reset, got %+v", g.State())
	}
}

func TestWaveFlow(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	n, err := g.StartNextWave()
	if err != nil || n != 1 {
		t.Fatalf("expected wave 1, got %d (%v)", n, err)
	}
	if _, err := g.StartNextWave(); !errors.Is(err, system.ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive, got %v", err)
	}
	if g.Wave() != 1 {
		t.Fatalf("expected failed start to keep wave 1, got %d", g.Wave())
	}

	spawned := 0
	for i := 0; i < 20; i++ {
		spawned += g.Update(100).Spawned
	}
	if spawned != 1 {
		t.Fatalf("expected one spawn in 2000ms at 1500ms cadence, got %d", spawned)
	}
	if g.State().GameTimeMs != 2000 {
		t.Fatalf("expected game time 2000, got %v", g.State().GameTimeMs)
	}
}

func TestPauseAndSpeed(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	if _, err := g.StartNextWave(); err != nil {
		t.Fatalf("start: %v", err)
	}

	g.TogglePause()
	g.Update(5000)
	if g.State().GameTimeMs != 0 || len(g.Encounter.Enemies()) != 0 {
		t.Fatalf("expected paused game to stand still")
	}
	g.TogglePause()

	g.CycleSpeed()
	if g.SpeedMultiplier != 2 {
		t.Fatalf("expected 2x, got %v", g.SpeedMultiplier)
	}
	g.Update(100)
	if g.State().GameTimeMs != 200 {
		t.Fatalf("expected scaled delta 200, got %v", g.State().GameTimeMs)
	}
	g.CycleSpeed()
	g.CycleSpeed()
	if g.SpeedMultiplier != 1 {
		t.Fatalf("expected speed to wrap to 1x, got %v", g.SpeedMultiplier)
	}
}
