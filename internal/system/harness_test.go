package system

import (
	"image/color"
	"testing"

	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/defs"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/physics"
	"go-turret-defense/internal/pool"
	"go-turret-defense/internal/schedule"
	"go-turret-defense/internal/tween"
	"go-turret-defense/internal/types"
	"go-turret-defense/internal/utils"

	"go.uber.org/zap"
)

const frame = 0.05

type countingDamageable struct {
	hits   int
	damage int
}

func (d *countingDamageable) TakeDamage(amount int) {
	d.hits++
	d.damage += amount
}

type harness struct {
	ecs         *entity.ECS
	dispatcher  *event.Dispatcher
	tweener     *tween.Tweener
	scheduler   *schedule.Queue
	pool        *pool.ProjectilePool
	projectiles *ProjectileSystem
	turrets     *TurretSystem
	manager     *TurretsManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	world := physics.NewWorld(ecs)
	logger := zap.NewNop()
	h := &harness{
		ecs:        ecs,
		dispatcher: dispatcher,
		tweener:    tween.NewTweener(),
		scheduler:  schedule.NewQueue(),
		pool:       pool.NewProjectilePool(defs.DefaultProjectile, logger),
		manager:    NewTurretsManager(dispatcher),
	}
	h.projectiles = NewProjectileSystem(ecs, world, h.pool, dispatcher, logger)
	h.turrets = NewTurretSystem(ecs, world, h.tweener, h.scheduler, h.projectiles, dispatcher, utils.NewPRNGService(1), logger, config.Limiter{N: 1})
	return h
}

// step прогоняет кадр в том же порядке, что и игра.
func (h *harness) step(dt float64) {
	h.turrets.Update(dt)
	h.tweener.Update(dt)
	h.projectiles.Update(dt)
	h.scheduler.Update(dt)
}

func (h *harness) run(seconds float64) {
	for elapsed := 0.0; elapsed < seconds-1e-9; elapsed += frame {
		h.step(frame)
	}
}

func defaultStats() component.TurretStats {
	return component.TurretStats{
		Range:           10,
		FiringAngle:     5,
		TargetArc:       60,
		SafeZoneRange:   2,
		AttackCooldown:  1,
		ProjectileSpeed: 20,
		Damage:          10,
		GunOffset:       geom.Vec3{Y: 0.5},
		MuzzleOffset:    geom.Vec3{Z: 0.5},
		TargetMask:      types.LayerPlayer.Mask(),
		ObstacleMask:    types.LayerObstacle.Mask(),
	}
}

func (h *harness) addTurret(position geom.Vec3, stats component.TurretStats) (types.EntityID, *component.Turret) {
	id := h.ecs.NewEntity()
	h.ecs.Transforms[id] = &component.Transform{Position: position, Rotation: geom.Identity}
	turret := &component.Turret{
		Stats:               stats,
		BaseRotation:        geom.Identity,
		GunRotation:         geom.Identity,
		DefaultBaseRotation: geom.Identity,
		DefaultGunRotation:  geom.Identity,
	}
	h.ecs.Turrets[id] = turret
	h.manager.Register(id, turret)
	return id, turret
}

// addPlayer ставит игрока со сферой радиуса 1.5 и головой на высоте 1.2.
func (h *harness) addPlayer(position geom.Vec3) (types.EntityID, *countingDamageable) {
	id := h.ecs.NewEntity()
	h.ecs.Transforms[id] = &component.Transform{Position: position, Rotation: geom.Identity}
	h.ecs.Colliders[id] = &component.Collider{Shape: component.ShapeSphere, Radius: 1.5, Layer: types.LayerPlayer, Tag: types.TagPlayer}
	h.ecs.HeadAnchors[id] = &component.HeadAnchor{Offset: geom.Vec3{Y: 1.2}}
	target := &countingDamageable{}
	h.ecs.Damageables[id] = target
	return id, target
}

func (h *harness) addObstacle(position, halfExtents geom.Vec3, c color.RGBA) types.EntityID {
	id := h.ecs.NewEntity()
	h.ecs.Transforms[id] = &component.Transform{Position: position, Rotation: geom.Identity}
	h.ecs.Colliders[id] = &component.Collider{Shape: component.ShapeBox, HalfExtents: halfExtents, Layer: types.LayerObstacle}
	h.ecs.Materials[id] = &component.Material{Color: c}
	return id
}
