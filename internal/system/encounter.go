// internal/system/encounter.go
package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"geometric-td/internal/defs"
	"geometric-td/internal/entity"
	"geometric-td/internal/event"
	"geometric-td/internal/logging"
	"geometric-td/internal/types"
	"geometric-td/internal/utils"
)

var (
	ErrWaveActive  = errors.New("wave already active")
	ErrUnknownWave = errors.New("unknown wave")
)

// Phase — состояние волны.
type Phase int

const (
	PhaseIdle     Phase = iota
	PhaseSpawning       // очередь ещё не пуста
	PhaseClearing       // все заспавнены, ждём пока поле опустеет
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseClearing:
		return "clearing"
	}
	return "idle"
}

// PathProvider отдаёт маршрут врагов.
type PathProvider interface {
	Waypoints() []mgl64.Vec2
}

// Ledger receives the per-tick lives and money deltas. It is the only
// state the encounter writes outside itself.
type Ledger interface {
	ApplyTick(breachDamage, bounty int)
}

// TickReport — итог одного тика.
type TickReport struct {
	Wave          int
	BreachDamage  int
	Bounty        int
	Spawned       int
	Killed        int
	Breached      int
	WaveCompleted bool
}

// EncounterManager owns the spawn queue, the active enemies and the
// registered towers, and runs the tick in a fixed order.
type EncounterManager struct {
	lib        *defs.Library
	enemyDefs  map[string]*defs.EnemyDefinition
	path       PathProvider
	ledger     Ledger
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
	ids        types.IDSource
	log        *zap.Logger

	phase         Phase
	wave          int
	queue         []string
	spawnInterval float64
	spawnTimer    float64

	enemies []*entity.Enemy
	towers  []*entity.Tower
}

func NewEncounterManager(lib *defs.Library, path PathProvider, dispatcher *event.Dispatcher, rng *utils.PRNGService, log *zap.Logger) *EncounterManager {
	m := &EncounterManager{
		lib:        lib,
		enemyDefs:  make(map[string]*defs.EnemyDefinition, len(lib.Enemies)),
		path:       path,
		dispatcher: dispatcher,
		rng:        rng,
		log:        logging.OrNop(log),
	}
	for id, def := range lib.Enemies {
		def := def
		m.enemyDefs[id] = &def
	}
	return m
}

// SetLedger подключает получателя потерь жизней и награды.
func (m *EncounterManager) SetLedger(l Ledger) {
	m.ledger = l
}

// NextID выдаёт идентификатор из общего счётчика сущностей.
func (m *EncounterManager) NextID() types.EntityID {
	return m.ids.Next()
}

func (m *EncounterManager) Phase() Phase { return m.phase }
func (m *EncounterManager) Wave() int { return m.wave }
func (m *EncounterManager) Queued() int { return len(m.queue) }
func (m *EncounterManager) Enemies() []*entity.Enemy { return m.enemies }
func (m *EncounterManager) Towers() []*entity.Tower { return m.towers }
func (m *EncounterManager) Library() *defs.Library { return m.lib }
func (m *EncounterManager) Path() PathProvider { return m.path }
func (m *EncounterManager) Active() bool { return m.phase != PhaseIdle }

// StartWave builds the shuffled spawn queue for wave n.
func (m *EncounterManager) StartWave(n int) error {
	if m.phase != PhaseIdle {
		return ErrWaveActive
	}
	def, ok := m.lib.Wave(n)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWave, n)
	}
	for _, entry := range def.Enemies {
		if _, ok := m.enemyDefs[entry.Enemy]; !ok {
			return fmt.Errorf("wave %d: unknown enemy %q", n, entry.Enemy)
		}
	}

	queue := def.Queue()
	if m.rng != nil {
		m.rng.ShuffleStrings(queue)
	}
	m.queue = queue
	m.spawnInterval = def.SpawnIntervalMs
	m.spawnTimer = 0
	m.wave = n
	m.phase = PhaseSpawning

	m.log.Info("wave started", zap.Int("wave", n), zap.Int("enemies", len(queue)), zap.Float64("interval_ms", def.SpawnIntervalMs))
	m.dispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Wave: n, Count: len(queue)}})
	return nil
}

// Update runs one tick: spawn, towers, enemies, collection, ledger, wave end.
func (m *EncounterManager) Update(deltaMs float64) TickReport {
	report := TickReport{Wave: m.wave}

	if m.phase == PhaseSpawning {
		// таймер проверяется до прибавления: враг выходит на тике,
		// начавшемся с накопленным интервалом. Время самого тика спавна
		// идёт в счёт следующего интервала.
		if m.spawnTimer >= m.spawnInterval && len(m.queue) > 0 {
			next := m.queue[0]
			m.queue = m.queue[1:]
			if _, err := m.SpawnEnemy(next); err != nil {
				m.log.Error("spawn failed", zap.String("enemy", next), zap.Error(err))
			} else {
				report.Spawned++
			}
			m.spawnTimer = deltaMs
		} else {
			m.spawnTimer += deltaMs
		}
		if len(m.queue) == 0 {
			m.phase = PhaseClearing
		}
	}

	for _, t := range m.towers {
		t.Cycle(deltaMs, m.enemies)
	}

	kept := make([]*entity.Enemy, 0, len(m.enemies))
	var offspring []*entity.Enemy
	for _, e := range m.enemies {
		breach := e.Advance(deltaMs)

		for i := e.DrainRevived(); i > 0; i-- {
			m.dispatcher.Dispatch(event.Event{Type: event.EnemyRevived, Data: enemyData(e)})
		}

		switch {
		case e.ReachedEnd():
			report.BreachDamage += breach
			report.Breached++
			m.dispatcher.Dispatch(event.Event{Type: event.EnemyBreached, Data: enemyData(e)})
		case e.Dead():
			report.Bounty += e.Reward
			report.Killed++
			m.dispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: enemyData(e)})
			if e.CanSplit() {
				children := e.Split(m.ids.Next)
				offspring = append(offspring, children...)
				m.dispatcher.Dispatch(event.Event{Type: event.EnemySplit, Data: enemyData(e)})
			}
		default:
			kept = append(kept, e)
		}
	}
	m.enemies = append(kept, offspring...)

	if m.ledger != nil {
		m.ledger.ApplyTick(report.BreachDamage, report.Bounty)
	}

	if m.phase == PhaseClearing && len(m.enemies) == 0 {
		m.phase = PhaseIdle
		report.WaveCompleted = true
		m.log.Info("wave completed", zap.Int("wave", m.wave))
		m.dispatcher.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Wave: m.wave}})
	}
	return report
}

// SpawnEnemy puts an enemy of the archetype at the start of the path.
func (m *EncounterManager) SpawnEnemy(archetype string) (*entity.Enemy, error) {
	def, ok := m.enemyDefs[archetype]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", archetype)
	}
	var roller entity.Roller
	if m.rng != nil {
		roller = m.rng
	}
	e := entity.NewEnemy(m.ids.Next(), def, m.path.Waypoints(), roller)
	m.enemies = append(m.enemies, e)
	m.log.Debug("enemy spawned", zap.String("enemy", archetype), zap.Uint64("id", uint64(e.ID)))
	m.dispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: enemyData(e)})
	return e, nil
}

// AddTower регистрирует башню в тике.
func (m *EncounterManager) AddTower(t *entity.Tower) {
	m.towers = append(m.towers, t)
}

// RemoveTower снимает башню; её снаряды исчезают вместе с ней.
func (m *EncounterManager) RemoveTower(id types.EntityID) bool {
	for i, t := range m.towers {
		if t.ID == id {
			t.DropProjectiles()
			m.towers = append(m.towers[:i], m.towers[i+1:]...)
			return true
		}
	}
	return false
}

// Tower ищет башню по идентификатору.
func (m *EncounterManager) Tower(id types.EntityID) *entity.Tower {
	for _, t := range m.towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Reset clears the field, the queue and the towers.
func (m *EncounterManager) Reset() {
	for _, t := range m.towers {
		t.DropProjectiles()
	}
	m.towers = nil
	m.enemies = nil
	m.queue = nil
	m.spawnTimer = 0
	m.spawnInterval = 0
	m.wave = 0
	m.phase = PhaseIdle
	m.ids.Reset()
}

func enemyData(e *entity.Enemy) event.EnemyData {
	return event.EnemyData{ID: e.ID, Archetype: e.Archetype, Reward: e.Reward, Damage: e.Damage}
}
