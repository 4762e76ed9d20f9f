// internal/defs/waves.go
package defs

// WaveDefinition описывает параметры для одной волны врагов.
type WaveDefinition struct {
	Number          int         `yaml:"number"`
	SpawnIntervalMs float64     `yaml:"spawn_interval_ms"` // интервал между появлением врагов
	Enemies         []WaveEntry `yaml:"enemies"`
}

// WaveEntry — сколько врагов данного типа в волне.
type WaveEntry struct {
	Enemy string `yaml:"enemy"`
	Count int    `yaml:"count"`
}

// Queue разворачивает состав волны в плоский список идентификаторов
// в порядке объявления. Перемешивание делает вызывающий.
func (w *WaveDefinition) Queue() []string {
	var queue []string
	for _, e := range w.Enemies {
		for i := 0; i < e.Count; i++ {
			queue = append(queue, e.Enemy)
		}
	}
	return queue
}

// Total — общее число врагов в волне.
func (w *WaveDefinition) Total() int {
	total := 0
	for _, e := range w.Enemies {
		total += e.Count
	}
	return total
}
