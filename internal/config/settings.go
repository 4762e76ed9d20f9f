// internal/config/settings.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds the runtime configuration loaded from settings.toml.
type Settings struct {
	Simulation SimulationConfig `toml:"simulation"`
	Data       DataConfig       `toml:"data"`
	Map        MapConfig        `toml:"map"`
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate         time.Duration `toml:"tick_rate"`    // fixed step for the headless server
	MaxDeltaMs       float64       `toml:"max_delta_ms"` // clamp for variable-step callers
	Seed             int64         `toml:"seed"`         // 0 = time based
	StartingLives    int           `toml:"starting_lives"`
	StartingMoney    int           `toml:"starting_money"`
	SellRefundRatio  float64       `toml:"sell_refund_ratio"`
	WaveBonusBase    int           `toml:"wave_bonus_base"`
	WaveBonusPerWave int           `toml:"wave_bonus_per_wave"`
}

// DataConfig points at optional YAML overrides. Empty paths use the embedded tables.
type DataConfig struct {
	EnemiesPath string `toml:"enemies"`
	TowersPath  string `toml:"towers"`
	WavesPath   string `toml:"waves"`
}

type MapConfig struct {
	Cols     int     `toml:"cols"`
	Rows     int     `toml:"rows"`
	CellSize float64 `toml:"cell_size"`
}

type ServerConfig struct {
	BindAddress  string        `toml:"bind_address"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	CommandQueue int           `toml:"command_queue"` // buffered client commands per tick loop
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML settings file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Settings, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (s *Settings) Validate() error {
	if s.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %s", s.Simulation.TickRate)
	}
	if s.Simulation.MaxDeltaMs <= 0 {
		return fmt.Errorf("simulation.max_delta_ms must be positive, got %v", s.Simulation.MaxDeltaMs)
	}
	if s.Simulation.StartingLives <= 0 {
		return fmt.Errorf("simulation.starting_lives must be positive, got %d", s.Simulation.StartingLives)
	}
	if s.Simulation.SellRefundRatio < 0 || s.Simulation.SellRefundRatio > 1 {
		return fmt.Errorf("simulation.sell_refund_ratio must be within [0,1], got %v", s.Simulation.SellRefundRatio)
	}
	if s.Map.Cols < 4 || s.Map.Rows < 4 || s.Map.CellSize <= 0 {
		return fmt.Errorf("map must be at least 4x4 with a positive cell size")
	}
	return nil
}

// Defaults returns the settings used when no file is given.
func Defaults() *Settings {
	return &Settings{
		Simulation: SimulationConfig{
			TickRate:         50 * time.Millisecond, // 20 ticks per second
			MaxDeltaMs:       MaxDeltaTime * 1000,
			StartingLives:    StartingLives,
			StartingMoney:    StartingMoney,
			SellRefundRatio:  SellRefundRatio,
			WaveBonusBase:    WaveBonusBase,
			WaveBonusPerWave: WaveBonusPerWave,
		},
		Map: MapConfig{
			Cols:     MapCols,
			Rows:     MapRows,
			CellSize: CellSize,
		},
		Server: ServerConfig{
			BindAddress:  "localhost:8080",
			WriteTimeout: 10 * time.Second,
			CommandQueue: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
