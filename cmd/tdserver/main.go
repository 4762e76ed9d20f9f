// cmd/tdserver/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"geometric-td/internal/app"
	"geometric-td/internal/config"
	"geometric-td/internal/defs"
	"geometric-td/internal/logging"
	"geometric-td/internal/stream"
	"geometric-td/pkg/gridmap"
)

func main() {
	configPath := flag.String("config", "", "path to settings.toml")
	addr := flag.String("addr", "", "override server.bind_address")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		settings.Server.BindAddress = *addr
	}
	logger, err := logging.New(settings.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	lib, err := defs.LoadFromSettings(settings.Data)
	if err != nil {
		logger.Fatal("load definitions", zap.Error(err))
	}
	grid := gridmap.NewGridMap(settings.Map.Cols, settings.Map.Rows, settings.Map.CellSize)
	game := app.NewGame(lib, grid, settings.Simulation, logger.Named("game"))
	hub := stream.NewHub(settings.Server, logger.Named("hub"))

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: settings.Server.BindAddress, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", zap.Error(err))
			stop()
		}
	}()

	runLoop(ctx, game, hub, settings.Simulation.TickRate, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
