// internal/defs/loader.go
package defs

import (
	"embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"geometric-td/internal/config"
)

//go:embed data/*.yaml
var embedded embed.FS

// Library holds every archetype and wave the simulation may instantiate.
type Library struct {
	Enemies    map[string]EnemyDefinition
	Towers     map[string]TowerDefinition
	TowerOrder []string         // порядок из файла, для горячих клавиш просмотрщика
	Waves      []WaveDefinition // отсортированы по номеру
}

type enemyFile struct {
	Enemies []EnemyDefinition `yaml:"enemies"`
}

type towerFile struct {
	Towers []TowerDefinition `yaml:"towers"`
}

type waveFile struct {
	Waves []WaveDefinition `yaml:"waves"`
}

// DefaultLibrary parses the tables compiled into the binary.
func DefaultLibrary() (*Library, error) {
	read := func(name string) ([]byte, error) {
		return embedded.ReadFile("data/" + name)
	}
	return buildLibrary(read, "enemies.yaml", "towers.yaml", "waves.yaml")
}

// LoadLibrary reads the three tables from disk. An empty path falls back to
// the embedded table of the same kind.
func LoadLibrary(enemiesPath, towersPath, wavesPath string) (*Library, error) {
	read := func(name string) ([]byte, error) {
		switch name {
		case "data/enemies.yaml", "data/towers.yaml", "data/waves.yaml":
			return embedded.ReadFile(name)
		}
		return os.ReadFile(name)
	}
	pick := func(path, fallback string) string {
		if path == "" {
			return "data/" + fallback
		}
		return path
	}
	return buildLibrary(read,
		pick(enemiesPath, "enemies.yaml"),
		pick(towersPath, "towers.yaml"),
		pick(wavesPath, "waves.yaml"))
}

// LoadFromSettings is LoadLibrary over the [data] section.
func LoadFromSettings(cfg config.DataConfig) (*Library, error) {
	return LoadLibrary(cfg.EnemiesPath, cfg.TowersPath, cfg.WavesPath)
}

func buildLibrary(read func(string) ([]byte, error), enemiesName, towersName, wavesName string) (*Library, error) {
	var ef enemyFile
	if err := readYAML(read, enemiesName, &ef); err != nil {
		return nil, fmt.Errorf("read enemy definitions: %w", err)
	}
	var tf towerFile
	if err := readYAML(read, towersName, &tf); err != nil {
		return nil, fmt.Errorf("read tower definitions: %w", err)
	}
	var wf waveFile
	if err := readYAML(read, wavesName, &wf); err != nil {
		return nil, fmt.Errorf("read wave definitions: %w", err)
	}

	lib := &Library{
		Enemies: make(map[string]EnemyDefinition, len(ef.Enemies)),
		Towers:  make(map[string]TowerDefinition, len(tf.Towers)),
		Waves:   wf.Waves,
	}
	for _, def := range ef.Enemies {
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", def.ID)
		}
		lib.Enemies[def.ID] = def
	}
	for _, def := range tf.Towers {
		if _, dup := lib.Towers[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tower id %q", def.ID)
		}
		lib.Towers[def.ID] = def
		lib.TowerOrder = append(lib.TowerOrder, def.ID)
	}
	sort.SliceStable(lib.Waves, func(i, j int) bool { return lib.Waves[i].Number < lib.Waves[j].Number })

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func readYAML(read func(string) ([]byte, error), name string, out interface{}) error {
	data, err := read(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Wave returns the definition for a wave number.
func (l *Library) Wave(number int) (WaveDefinition, bool) {
	for _, w := range l.Waves {
		if w.Number == number {
			return w, true
		}
	}
	return WaveDefinition{}, false
}

// LastWave returns the highest wave number, 0 when the table is empty.
func (l *Library) LastWave() int {
	if len(l.Waves) == 0 {
		return 0
	}
	return l.Waves[len(l.Waves)-1].Number
}

// Validate checks referential integrity and numeric sanity of the tables.
// Any failure here is a startup error.
func (l *Library) Validate() error {
	for id, e := range l.Enemies {
		if id == "" {
			return fmt.Errorf("enemy with empty id")
		}
		if e.Health <= 0 {
			return fmt.Errorf("enemy %q: health must be positive", id)
		}
		if e.Speed < 0 {
			return fmt.Errorf("enemy %q: negative speed", id)
		}
		if e.DodgeChance < 0 || e.DodgeChance >= 1 {
			return fmt.Errorf("enemy %q: dodge_chance must be within [0,1)", id)
		}
		if e.DamageReduction < 0 || e.DamageReduction >= 1 {
			return fmt.Errorf("enemy %q: damage_reduction must be within [0,1)", id)
		}
		for cat, r := range e.Resistances {
			if r >= 1 {
				return fmt.Errorf("enemy %q: resistance to %s must be below 1 (use immunities)", id, cat)
			}
		}
		if e.Regen != nil && (e.Regen.Amount <= 0 || e.Regen.IntervalMs <= 0) {
			return fmt.Errorf("enemy %q: regen needs positive amount and interval", id)
		}
		if e.Revival != nil && (e.Revival.Charges <= 0 || e.Revival.HealthFraction <= 0 || e.Revival.HealthFraction > 1) {
			return fmt.Errorf("enemy %q: revival needs charges > 0 and health_fraction in (0,1]", id)
		}
		if e.Split != nil && (e.Split.Count <= 0 || e.Split.MaxGeneration < 1) {
			return fmt.Errorf("enemy %q: split needs count > 0 and max_generation >= 1", id)
		}
		if e.Pulse != nil && (e.Pulse.IntervalMs <= 0 || e.Pulse.DurationMs <= 0) {
			return fmt.Errorf("enemy %q: invulnerability_pulse needs positive interval and duration", id)
		}
	}

	for id, t := range l.Towers {
		if t.Damage < 0 || t.AttackRate <= 0 || t.Range <= 0 {
			return fmt.Errorf("tower %q: damage, attack_rate and range must be positive", id)
		}
		if t.Cost <= 0 {
			return fmt.Errorf("tower %q: cost must be positive", id)
		}
		switch t.AttackMode {
		case AttackProjectile, "":
		case AttackInstantArea:
			if t.Payload.SplashRadius <= 0 {
				return fmt.Errorf("tower %q: instant_area needs splash_radius", id)
			}
		default:
			return fmt.Errorf("tower %q: unknown attack_mode %q", id, t.AttackMode)
		}
		switch t.TargetPolicy {
		case TargetFirst, TargetStrongest, "":
		default:
			return fmt.Errorf("tower %q: unknown target_policy %q", id, t.TargetPolicy)
		}
		if s := t.Payload.Slow; s != nil && (s.Factor <= 0 || s.Factor >= 1 || s.DurationMs <= 0) {
			return fmt.Errorf("tower %q: slow factor must be within (0,1) with positive duration", id)
		}
		if p := t.Payload.Poison; p != nil && (p.DamagePerTick <= 0 || p.DurationMs <= 0) {
			return fmt.Errorf("tower %q: poison needs positive damage and duration", id)
		}
		if b := t.Payload.Burn; b != nil && (b.DPS <= 0 || b.DurationMs <= 0) {
			return fmt.Errorf("tower %q: burn needs positive dps and duration", id)
		}
		if t.Payload.PierceCount < 0 || t.Payload.SplashRadius < 0 {
			return fmt.Errorf("tower %q: negative splash or pierce", id)
		}
	}

	seen := make(map[int]bool, len(l.Waves))
	for _, w := range l.Waves {
		if w.Number <= 0 {
			return fmt.Errorf("wave number must be positive, got %d", w.Number)
		}
		if seen[w.Number] {
			return fmt.Errorf("duplicate wave %d", w.Number)
		}
		seen[w.Number] = true
		if w.SpawnIntervalMs <= 0 {
			return fmt.Errorf("wave %d: spawn_interval_ms must be positive", w.Number)
		}
		if w.Total() == 0 {
			return fmt.Errorf("wave %d: no enemies", w.Number)
		}
		for _, entry := range w.Enemies {
			if _, ok := l.Enemies[entry.Enemy]; !ok {
				return fmt.Errorf("wave %d: unknown enemy %q", w.Number, entry.Enemy)
			}
			if entry.Count < 0 {
				return fmt.Errorf("wave %d: negative count for %q", w.Number, entry.Enemy)
			}
		}
	}
	return nil
}
