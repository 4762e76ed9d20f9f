// internal/config/config.go
package config

import "image/color"

// Константы симуляции. Время в миллисекундах, расстояния в пикселях мира.
const (
	ArrivalThreshold     = 5.0  // Радиус, в котором враг считается достигшим точки пути
	PoisonTickIntervalMs = 500.0 // Интервал тиков яда
	ProjectileSpeed      = 300.0 // Пикселей в секунду
	ProjectileMaxTravel  = 1500.0
	SplashFalloffFloor   = 0.4 // Минимальная доля урона на краю взрыва
	PierceHitRadius      = 60.0
	PierceDamageFactor   = 0.6
	SplitOffset          = 10.0

	UpgradeDamageScale = 1.3
	UpgradeRangeScale  = 1.1
	UpgradeRateScale   = 1.2
	UpgradeCostScale   = 1.5
	DefaultMaxUpgrades = 3
)

// Константы экономики по умолчанию (переопределяются через settings.toml).
const (
	StartingLives    = 20
	StartingMoney    = 500
	SellRefundRatio  = 0.5
	WaveBonusBase    = 50
	WaveBonusPerWave = 10
)

// Параметры окна отладочного просмотрщика.
const (
	ScreenWidth  = 1024
	ScreenHeight = 640
	MapCols      = 32
	MapRows      = 18
	CellSize     = 32.0
	HUDHeight    = 64
	MaxDeltaTime = 0.06 // секунды

	EnemyRadius      = 8.0
	ProjectileRadius = 3.0
	TowerRadiusRatio = 0.4
	HealthBarHeight  = 3.0
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	GridColor        = color.RGBA{40, 40, 55, 255}
	PathColor        = color.RGBA{110, 100, 80, 255}
	BlockedColor     = color.RGBA{150, 70, 70, 120}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	SelectionColor   = color.RGBA{255, 215, 0, 255}
	RangeColor       = color.RGBA{255, 255, 255, 40}
	HealthGoodColor  = color.RGBA{76, 175, 80, 255}
	HealthMidColor   = color.RGBA{255, 193, 7, 255}
	HealthLowColor   = color.RGBA{244, 67, 54, 255}
	SlowColor        = color.RGBA{91, 192, 222, 255}
	PoisonColor      = color.RGBA{156, 39, 176, 160}
	BurnColor        = color.RGBA{255, 120, 0, 200}
	InvulnColor      = color.RGBA{200, 220, 255, 200}
)
