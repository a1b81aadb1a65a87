// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// Масштаб вида сверху: пикселей на единицу мира.
	WorldScale = 24.0

	PoolPrewarmCount   = 10  // столько экземпляров создаётся при смене прототипа
	ProjectileLifetime = 5.0 // секунд до принудительного возврата в пул

	AimBaseDuration         = 0.5 // поворот основания к цели
	AimGunDuration          = 1.0 // доводка ствола
	ReturnToDefaultDuration = 2.0 // возврат в исходное положение без целей

	RegenFraction        = 0.1 // доля максимума за один шаг регенерации
	DefaultRegenInterval = 1.0
	HeartbeatVolumeBias  = 0.1

	HealthBarWidth  = 260.0
	HealthBarHeight = 18.0
	HealthBarEase   = 6.0 // скорость догоняния отображаемого значения, 1/с
	HeartPulseTime  = 0.35

	TextOffsetY = 4 // базовая линия текста внутри полоски
)

var (
	BackgroundColor    = color.RGBA{20, 20, 30, 255}
	GridColor          = color.RGBA{40, 40, 55, 255}
	TextLightColor     = color.RGBA{240, 240, 240, 255}
	PlayerColor        = color.RGBA{70, 130, 180, 255}
	TurretBaseColor    = color.RGBA{150, 150, 160, 255}
	TurretGunColor     = color.RGBA{220, 220, 230, 255}
	RangeColor         = color.RGBA{255, 255, 255, 40}
	ArcColor           = color.RGBA{255, 215, 0, 90}
	SafeZoneColor      = color.RGBA{220, 60, 60, 90}
	DebugObstacleColor = color.RGBA{255, 235, 4, 255} // подсветка преграды, закрывающей цель

	RayInArcColor      = color.RGBA{0, 255, 0, 255}
	RayOutOfArcColor   = color.RGBA{255, 235, 4, 255}
	RayObstructedColor = color.RGBA{255, 0, 0, 255}

	HealthLowColor  = color.RGBA{220, 40, 40, 255}
	HealthHighColor = color.RGBA{50, 205, 50, 255}
	HealthBackColor = color.RGBA{40, 40, 40, 220}
	HeartColor      = color.RGBA{230, 30, 80, 255}
)
