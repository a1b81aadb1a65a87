// internal/system/projectile.go
package system

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/physics"
	"go-turret-defense/internal/pool"
	"go-turret-defense/internal/types"

	"go.uber.org/zap"
)

// ProjectileSystem двигает выпущенные снаряды и обрабатывает попадания.
type ProjectileSystem struct {
	ecs             *entity.ECS
	query           physics.SpatialQuery
	pool            *pool.ProjectilePool
	eventDispatcher *event.Dispatcher
	logger          *zap.Logger

	flying  []*component.Projectile
	hitMask types.LayerMask
}

func NewProjectileSystem(ecs *entity.ECS, query physics.SpatialQuery, projectilePool *pool.ProjectilePool, eventDispatcher *event.Dispatcher, logger *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:             ecs,
		query:           query,
		pool:            projectilePool,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		hitMask:         types.MaskOf(types.LayerPlayer, types.LayerObstacle),
	}
}

func (s *ProjectileSystem) Pool() *pool.ProjectilePool { return s.pool }

// Flying: снаряды в полёте, для отрисовки.
func (s *ProjectileSystem) Flying() []*component.Projectile { return s.flying }

// Launch отправляет активный снаряд в полёт.
func (s *ProjectileSystem) Launch(p *component.Projectile) {
	if p == nil || !p.Active {
		return
	}
	s.flying = append(s.flying, p)
}

// ReturnToPool возвращает снаряд, если он всё ещё одолжен по той же выдаче.
// Опоздавший таймер (снаряд уже вернулся после попадания или выдан заново) ничего не делает.
func (s *ProjectileSystem) ReturnToPool(p *component.Projectile, lease uint32) {
	if p == nil || p.InPool || p.Lease != lease {
		return
	}
	s.recycle(p)
	s.compact()
}

func (s *ProjectileSystem) recycle(p *component.Projectile) {
	s.pool.Release(p)
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, p := range s.flying {
		if !p.Active {
			continue
		}
		step := p.Speed * float32(deltaTime)
		if step <= 0 {
			continue
		}
		if hit, ok := s.query.Raycast(p.Position, p.Direction, step, s.hitMask); ok {
			p.Position = hit.Point
			s.onCollision(p, hit)
			continue
		}
		p.Position = p.Position.AddScaled(p.Direction, step)
	}
	s.compact()
}

// onCollision наносит урон ровно один раз за столкновение и возвращает снаряд в пул.
func (s *ProjectileSystem) onCollision(p *component.Projectile, hit physics.RaycastHit) {
	damageable, dealt := s.ecs.Damageables[hit.Entity]
	if dealt {
		damageable.TakeDamage(p.Damage)
	}
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.ProjectileHit,
		Data: event.HitData{Turret: p.Owner, Target: hit.Entity, Damage: p.Damage, Dealt: dealt},
	})
	s.logger.Debug("projectile hit",
		zap.Uint32("turret", uint32(p.Owner)),
		zap.Uint32("target", uint32(hit.Entity)),
		zap.Bool("damageable", dealt))
	s.recycle(p)
}

// compact убирает из списка полёта всё, что уже неактивно.
func (s *ProjectileSystem) compact() {
	kept := s.flying[:0]
	for _, p := range s.flying {
		if p.Active && !p.InPool {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.flying); i++ {
		s.flying[i] = nil
	}
	s.flying = kept
}

// Clear возвращает в пул всё, что летит.
func (s *ProjectileSystem) Clear() {
	for _, p := range s.flying {
		s.recycle(p)
	}
	s.compact()
}
