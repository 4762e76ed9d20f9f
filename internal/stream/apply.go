// internal/stream/apply.go
package stream

import (
	"fmt"

	"geometric-td/internal/app"
	"geometric-td/internal/types"
)

// Apply выполняет команду клиента над игрой. Вызывается только из тик-цикла.
func Apply(g *app.Game, cmd Command) Reply {
	switch cmd.Type {
	case "place":
		t, err := g.PlaceTower(cmd.Tower, cmd.X, cmd.Y)
		if err != nil {
			return failed(err)
		}
		return Reply{OK: true, Data: t.Info()}
	case "upgrade":
		info, err := g.UpgradeTower(types.EntityID(cmd.ID))
		if err != nil {
			return failed(err)
		}
		return Reply{OK: true, Data: info}
	case "sell":
		refund, err := g.SellTower(types.EntityID(cmd.ID))
		if err != nil {
			return failed(err)
		}
		return Reply{OK: true, Data: map[string]int{"refund": refund}}
	case "info":
		info, err := g.TowerInfo(types.EntityID(cmd.ID))
		if err != nil {
			return failed(err)
		}
		return Reply{OK: true, Data: info}
	case "start_wave":
		wave, err := g.StartNextWave()
		if err != nil {
			return failed(err)
		}
		return Reply{OK: true, Data: map[string]int{"wave": wave}}
	case "pause":
		g.TogglePause()
		return Reply{OK: true, Data: g.State()}
	case "speed":
		g.CycleSpeed()
		return Reply{OK: true, Data: g.State()}
	case "reset":
		g.Reset()
		return Reply{OK: true, Data: g.State()}
	}
	return Reply{OK: false, Error: fmt.Sprintf("unknown command %q", cmd.Type)}
}

func failed(err error) Reply {
	return Reply{OK: false, Error: err.Error()}
}
