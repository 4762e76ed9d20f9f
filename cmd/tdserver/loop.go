// cmd/tdserver/loop.go
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"geometric-td/internal/app"
	"geometric-td/internal/stream"
)

// broadcaster — то, что нужно циклу от хаба.
type broadcaster interface {
	Commands() <-chan stream.Command
	Reply(cmd stream.Command, reply stream.Reply)
	Broadcast(msg interface{}) error
}

// runLoop ведёт симуляцию фиксированным шагом до отмены контекста.
// Команды клиентов применяются в начале тика, снимок рассылается в конце.
func runLoop(ctx context.Context, game *app.Game, hub broadcaster, tickRate time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick++
			step(game, hub, tick, tickRate, log)
		}
	}
}

func step(game *app.Game, hub broadcaster, tick uint64, tickRate time.Duration, log *zap.Logger) {
	drainCommands(game, hub)
	report := game.Update(float64(tickRate) / float64(time.Millisecond))
	if report.WaveCompleted {
		log.Info("wave cleared", zap.Int("wave", report.Wave), zap.Uint64("tick", tick))
	}
	if err := hub.Broadcast(stream.StateMessage{Type: "state", Tick: tick, State: game.Snapshot()}); err != nil {
		log.Error("broadcast", zap.Error(err))
	}
}

func drainCommands(game *app.Game, hub broadcaster) {
	for {
		select {
		case cmd := <-hub.Commands():
			hub.Reply(cmd, stream.Apply(game, cmd))
		default:
			return
		}
	}
}
