// internal/app/tower_management.go
package app

import (
	"fmt"

	"go.uber.org/zap"

	"geometric-td/internal/entity"
	"geometric-td/internal/event"
	"geometric-td/internal/types"
)

// PlaceTower attempts to place a tower of the archetype at the given cell.
// Funds are deducted only on success.
func (g *Game) PlaceTower(archetype string, x, y int) (*entity.Tower, error) {
	if g.gameOver {
		return nil, ErrGameOver
	}
	def, ok := g.Library.Towers[archetype]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, archetype)
	}
	if !g.board.CanPlace(x, y) {
		return nil, ErrInvalidPosition
	}
	if g.money < def.Cost {
		return nil, ErrInsufficientFunds
	}
	if !g.board.Occupy(x, y) {
		return nil, ErrInvalidPosition
	}
	g.money -= def.Cost

	tower := entity.NewTower(g.Encounter.NextID(), &def, x, y, g.board.ToWorld(x, y))
	tower.RefundRatio = g.settings.SellRefundRatio
	g.Encounter.AddTower(tower)

	g.log.Info("tower placed",
		zap.String("tower", archetype), zap.Int("x", x), zap.Int("y", y), zap.Int("money", g.money))
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: towerData(tower, def.Cost)})
	return tower, nil
}

// UpgradeTower charges the current upgrade cost and upgrades the tower.
func (g *Game) UpgradeTower(id types.EntityID) (entity.TowerInfo, error) {
	if g.gameOver {
		return entity.TowerInfo{}, ErrGameOver
	}
	t := g.Encounter.Tower(id)
	if t == nil {
		return entity.TowerInfo{}, ErrNoTower
	}
	if !t.CanUpgrade() {
		return t.Info(), ErrMaxLevel
	}
	cost := t.UpgradeCost
	if g.money < cost {
		return t.Info(), ErrInsufficientFunds
	}
	g.money -= cost
	t.Upgrade()

	g.log.Info("tower upgraded",
		zap.Uint64("id", uint64(id)), zap.Int("level", t.Level), zap.Int("cost", cost), zap.Int("money", g.money))
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerUpgraded, Data: towerData(t, cost)})
	return t.Info(), nil
}

// SellTower removes the tower and refunds part of what was invested.
func (g *Game) SellTower(id types.EntityID) (int, error) {
	if g.gameOver {
		return 0, ErrGameOver
	}
	t := g.Encounter.Tower(id)
	if t == nil {
		return 0, ErrNoTower
	}
	refund := t.SellValue()
	g.Encounter.RemoveTower(id)
	g.board.Release(t.GridX, t.GridY)
	g.money += refund

	g.log.Info("tower sold", zap.Uint64("id", uint64(id)), zap.Int("refund", refund), zap.Int("money", g.money))
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerSold, Data: towerData(t, refund)})
	return refund, nil
}

// TowerAt ищет башню в клетке.
func (g *Game) TowerAt(x, y int) *entity.Tower {
	for _, t := range g.Encounter.Towers() {
		if t.GridX == x && t.GridY == y {
			return t
		}
	}
	return nil
}

func towerData(t *entity.Tower, money int) event.TowerData {
	return event.TowerData{ID: t.ID, Archetype: t.Archetype, GridX: t.GridX, GridY: t.GridY, Level: t.Level, Money: money}
}
