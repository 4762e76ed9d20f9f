// internal/system/encounter_test.go
package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"geometric-td/internal/defs"
	"geometric-td/internal/entity"
	"geometric-td/internal/event"
	"geometric-td/internal/utils"
)

type staticPath []mgl64.Vec2

func (p staticPath) Waypoints() []mgl64.Vec2 { return p }

type ledgerStub struct {
	breach int
	bounty int
	calls  int
}

func (l *ledgerStub) ApplyTick(breach, bounty int) {
	l.breach += breach
	l.bounty += bounty
	l.calls++
}

func testLibrary() *defs.Library {
	return &defs.Library{
		Enemies: map[string]defs.EnemyDefinition{
			"basic":    {ID: "basic", Health: 30, Speed: 50, Reward: 10, Damage: 1},
			"runner":   {ID: "runner", Health: 30, Speed: 10000, Reward: 10, Damage: 3},
			"splitter": {ID: "splitter", Health: 160, Speed: 60, Reward: 25, Damage: 2, Split: &defs.SplitDef{Count: 2, MaxGeneration: 2}},
		},
		Towers: map[string]defs.TowerDefinition{},
		Waves: []defs.WaveDefinition{
			{Number: 1, SpawnIntervalMs: 1000, Enemies: []defs.WaveEntry{{Enemy: "basic", Count: 3}}},
			{Number: 2, SpawnIntervalMs: 100, Enemies: []defs.WaveEntry{{Enemy: "basic", Count: 1}}},
			{Number: 3, SpawnIntervalMs: 100, Enemies: []defs.WaveEntry{{Enemy: "runner", Count: 1}}},
		},
	}
}

func newTestManager(path staticPath) (*EncounterManager, *event.Dispatcher, *ledgerStub) {
	if path == nil {
		path = staticPath{{0, 0}, {10000, 0}}
	}
	dispatcher := event.NewDispatcher()
	m := NewEncounterManager(testLibrary(), path, dispatcher, utils.NewPRNGService(1), nil)
	ledger := &ledgerStub{}
	m.SetLedger(ledger)
	return m, dispatcher, ledger
}

func record(d *event.Dispatcher, types ...event.EventType) *[]event.Event {
	var got []event.Event
	for _, t := range types {
		d.Subscribe(t, event.ListenerFunc(func(e event.Event) { got = append(got, e) }))
	}
	return &got
}

func TestSpawnCadence(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(nil)
	if err := m.StartWave(1); err != nil {
		t.Fatalf("expected wave to start, got %v", err)
	}
	if m.Phase() != PhaseSpawning || m.Queued() != 3 {
		t.Fatalf("expected spawning with 3 queued, got %s with %d", m.Phase(), m.Queued())
	}

	for i := 0; i < 3; i++ {
		m.Update(999)
	}
	if m.Queued() == 0 {
		t.Fatalf("expected queue to still have entries")
	}
	m.Update(2)
	if len(m.Enemies()) != 1 {
		t.Fatalf("expected exactly one unit spawned, got %d", len(m.Enemies()))
	}
	if m.Queued() != 2 {
		t.Fatalf("expected 2 still queued, got %d", m.Queued())
	}
}

func TestSpawnCadenceWithCoarseTicks(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(nil)
	if err := m.StartWave(1); err != nil {
		t.Fatalf("expected wave to start, got %v", err)
	}

	// интервал 1000, шаг 400: враг выходит на тиках 4 и 7
	var spawnedAt []int
	for tick := 1; tick <= 7; tick++ {
		if m.Update(400).Spawned > 0 {
			spawnedAt = append(spawnedAt, tick)
		}
	}
	if len(spawnedAt) != 2 || spawnedAt[0] != 4 || spawnedAt[1] != 7 {
		t.Fatalf("expected spawns on ticks 4 and 7, got %v", spawnedAt)
	}
	if gap := float64(spawnedAt[1]-spawnedAt[0]) * 400; gap > 1000+400 {
		t.Fatalf("expected gap within one tick of the interval, got %vms", gap)
	}
}

func TestStartWaveErrors(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(nil)

	if err := m.StartWave(42); !errors.Is(err, ErrUnknownWave) {
		t.Fatalf("expected ErrUnknownWave, got %v", err)
	}
	if err := m.StartWave(1); err != nil {
		t.Fatalf("expected wave 1 to start, got %v", err)
	}
	if err := m.StartWave(2); !errors.Is(err, ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive, got %v", err)
	}
}

func TestWaveCompletesAfterLastKill(t *testing.T) {
	t.Parallel()
	m, d, ledger := newTestManager(nil)
	events := record(d, event.WaveStarted, event.EnemyKilled, event.WaveCompleted)

	m.StartWave(2)
	m.Update(100)
	report := m.Update(1)
	if report.Spawned != 1 || m.Phase() != PhaseClearing {
		t.Fatalf("expected one spawn and clearing phase, got %d and %s", report.Spawned, m.Phase())
	}

	m.Enemies()[0].TakeDamage(1000, defs.SourceArcher)
	report = m.Update(1)
	if report.Killed != 1 || report.Bounty != 10 || !report.WaveCompleted {
		t.Fatalf("expected kill, bounty 10 and completion, got %+v", report)
	}
	if m.Phase() != PhaseIdle || len(m.Enemies()) != 0 {
		t.Fatalf("expected idle empty field, got %s with %d", m.Phase(), len(m.Enemies()))
	}
	if ledger.bounty != 10 || ledger.breach != 0 {
		t.Fatalf("expected ledger bounty 10, got %d/%d", ledger.bounty, ledger.breach)
	}

	want := []event.EventType{event.WaveStarted, event.EnemyKilled, event.WaveCompleted}
	if len(*events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(*events))
	}
	for i, e := range *events {
		if e.Type != want[i] {
			t.Fatalf("expected event %d to be %s, got %s", i, want[i], e.Type)
		}
	}
	if data := (*events)[2].Data.(event.WaveData); data.Wave != 2 {
		t.Fatalf("expected completion of wave 2, got %d", data.Wave)
	}

	if err := m.StartWave(3); err != nil {
		t.Fatalf("expected next wave to start once idle, got %v", err)
	}
}

func TestBreachReportedToLedger(t *testing.T) {
	t.Parallel()
	m, d, ledger := newTestManager(staticPath{{0, 0}, {50, 0}})
	breaches := record(d, event.EnemyBreached)

	m.StartWave(3)
	m.Update(100)
	for i := 0; i < 10 && len(*breaches) == 0; i++ {
		m.Update(100)
	}
	if len(*breaches) != 1 {
		t.Fatalf("expected one breach event, got %d", len(*breaches))
	}
	if ledger.breach != 3 || ledger.bounty != 0 {
		t.Fatalf("expected breach damage 3 and no bounty, got %d/%d", ledger.breach, ledger.bounty)
	}
	if len(m.Enemies()) != 0 || m.Phase() != PhaseIdle {
		t.Fatalf("expected breached unit removed and wave over")
	}
}

func TestSplitterOffspringJoinField(t *testing.T) {
	t.Parallel()
	m, d, _ := newTestManager(nil)
	splits := record(d, event.EnemySplit)

	parent, err := m.SpawnEnemy("splitter")
	if err != nil {
		t.Fatalf("expected spawn, got %v", err)
	}
	parent.TakeDamage(1000, defs.SourceArcher)
	m.Update(16)

	if len(*splits) != 1 {
		t.Fatalf("expected one split event, got %d", len(*splits))
	}
	children := m.Enemies()
	if len(children) != 2 {
		t.Fatalf("expected 2 offspring on the field, got %d", len(children))
	}
	for _, c := range children {
		if c.Generation() != 2 || c.ID == parent.ID {
			t.Fatalf("expected generation 2 offspring with fresh ids")
		}
		c.TakeDamage(1000, defs.SourceArcher)
	}
	m.Update(16)
	if len(m.Enemies()) != 0 || len(*splits) != 1 {
		t.Fatalf("expected offspring not to split again, %d left", len(m.Enemies()))
	}
}

func TestTowersShootDuringUpdate(t *testing.T) {
	t.Parallel()
	m, _, ledger := newTestManager(nil)
	def := &defs.TowerDefinition{
		ID:         "cannon",
		Category:   defs.SourceCatapult,
		Damage:     100,
		AttackRate: 1,
		Range:      200,
		AttackMode: defs.AttackInstantArea,
		Payload:    defs.PayloadDef{SplashRadius: 10},
	}
	m.AddTower(entity.NewTower(m.NextID(), def, 0, 0, mgl64.Vec2{0, 0}))
	m.SpawnEnemy("basic")

	report := m.Update(16)
	if report.Killed != 1 || ledger.bounty != 10 {
		t.Fatalf("expected the tower to kill in the same tick, got %+v", report)
	}
}

func TestRemoveTowerAndReset(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(nil)
	def := &defs.TowerDefinition{ID: "archer", Category: defs.SourceArcher, Damage: 1, AttackRate: 1, Range: 100}
	tower := entity.NewTower(m.NextID(), def, 0, 0, mgl64.Vec2{0, 0})
	m.AddTower(tower)

	if m.Tower(tower.ID) != tower {
		t.Fatalf("expected tower lookup by id")
	}
	if !m.RemoveTower(tower.ID) || m.RemoveTower(tower.ID) {
		t.Fatalf("expected a single successful removal")
	}

	m.StartWave(1)
	m.SpawnEnemy("basic")
	m.Reset()
	if m.Phase() != PhaseIdle || m.Wave() != 0 || len(m.Enemies()) != 0 || m.Queued() != 0 {
		t.Fatalf("expected a clean field after reset")
	}
	if id := m.NextID(); id != 1 {
		t.Fatalf("expected ids to restart at 1, got %d", id)
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(nil)
	m.StartWave(1)
	e, _ := m.SpawnEnemy("basic")
	e.ApplySlow(0.5, 1000)

	snap := m.Snapshot()
	if snap.Phase != "spawning" || snap.Wave != 1 || snap.Queued != 3 {
		t.Fatalf("expected spawning wave 1 with 3 queued, got %+v", snap)
	}
	if len(snap.Enemies) != 1 || !snap.Enemies[0].Slowed || snap.Enemies[0].Health != 30 {
		t.Fatalf("expected one slowed enemy at 30hp, got %+v", snap.Enemies)
	}
}
