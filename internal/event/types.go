// internal/event/types.go
package event

import "geometric-td/internal/types"

const (
	WaveStarted   EventType = "WaveStarted"   // Волна началась, Data: WaveData
	WaveCompleted EventType = "WaveCompleted" // Очередь пуста и врагов не осталось, Data: WaveData
	EnemySpawned  EventType = "EnemySpawned"  // Data: EnemyData
	EnemyKilled   EventType = "EnemyKilled"   // Data: EnemyData
	EnemyBreached EventType = "EnemyBreached" // Враг дошёл до конца пути, Data: EnemyData
	EnemySplit    EventType = "EnemySplit"    // Data: EnemyData родителя
	EnemyRevived  EventType = "EnemyRevived"  // Data: EnemyData
	TowerPlaced   EventType = "TowerPlaced"   // Башня построена, Data: TowerData
	TowerUpgraded EventType = "TowerUpgraded" // Data: TowerData
	TowerSold     EventType = "TowerSold"     // Data: TowerData
)

type WaveData struct {
	Wave  int
	Count int // врагов в очереди на старте
}

type EnemyData struct {
	ID        types.EntityID
	Archetype string
	Reward    int
	Damage    int
}

type TowerData struct {
	ID        types.EntityID
	Archetype string
	GridX     int
	GridY     int
	Level     int
	Money     int // списано или возвращено
}
