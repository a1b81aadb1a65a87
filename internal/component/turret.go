// internal/component/turret.go
package component

import (
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
)

// TurretState: состояние конечного автомата стрельбы.
type TurretState int

const (
	TurretIdle TurretState = iota
	TurretAiming
	TurretReadyToFire
	TurretAttacking
)

func (s TurretState) String() string {
	switch s {
	case TurretIdle:
		return "Idle"
	case TurretAiming:
		return "Aiming"
	case TurretReadyToFire:
		return "ReadyToFire"
	case TurretAttacking:
		return "Attacking"
	default:
		return "Unknown"
	}
}

// TurretStats: статические параметры турели. Углы в градусах.
type TurretStats struct {
	Range              float32
	FiringAngle        float32 // минимальный угол возвышения ствола
	TargetArc          float32 // ширина горизонтальной дуги наведения
	SafeZoneRange      float32
	GunElevationOffset float32
	AttackCooldown     float32
	ProjectileSpeed    float32
	Damage             int
	SpreadBullets      bool
	BulletSpread       geom.Vec3
	GunOffset          geom.Vec3 // точка вращения ствола относительно турели, лежит на оси поворота основания
	MuzzleOffset       geom.Vec3 // дульный срез в локальных координатах ствола
	ArcTiltAngle       float32   // только для гизмо
	TargetMask         types.LayerMask
	ObstacleMask       types.LayerMask
	Debug              bool
}

// Turret хранит параметры турели плюс состояние, которое пересчитывается каждый кадр.
type Turret struct {
	DefID string
	Stats TurretStats

	State              TurretState
	HasTarget          bool
	IsObstacleBlocking bool
	InsideBarrelAngle  bool
	InsideTurretArc    bool

	TimeSinceLastAttack float32

	BaseRotation        geom.Quat
	GunRotation         geom.Quat
	DefaultBaseRotation geom.Quat
	DefaultGunRotation  geom.Quat

	LastObstacle  types.EntityID
	TintsObstacle bool // турель держит подсветку на материале LastObstacle

	DebugRay *DebugRay
}

// CanAttackTarget сообщает, угрожает ли турель цели прямо сейчас.
func (t *Turret) CanAttackTarget() bool {
	return t.HasTarget
}
