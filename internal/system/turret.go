// internal/system/turret.go
package system

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/physics"
	"go-turret-defense/internal/schedule"
	"go-turret-defense/internal/tween"
	"go-turret-defense/internal/types"
	"go-turret-defense/internal/utils"
	mathutil "go-turret-defense/pkg/utils"
	"image/color"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	channelBase = "base"
	channelGun  = "gun"
)

// aimManeuver хранит пару твинов наведения: поворот основания и доводка ствола.
type aimManeuver struct {
	base *tween.Tween
	gun  *tween.Tween
}

// turretRuntime: то, что система держит про турель помимо компонента.
type turretRuntime struct {
	aim       *aimManeuver
	returning bool
	trace     *rate.Limiter
}

// TurretSystem: поиск цели, наведение и стрельба. Каждая турель
// обрабатывается целиком, прежде чем система переходит к следующей.
type TurretSystem struct {
	ecs             *entity.ECS
	query           physics.SpatialQuery
	tweener         *tween.Tweener
	scheduler       *schedule.Queue
	projectiles     *ProjectileSystem
	eventDispatcher *event.Dispatcher
	rng             *utils.PRNGService
	logger          *zap.Logger

	traceLimiter config.Limiter
	runtime      map[types.EntityID]*turretRuntime
}

func NewTurretSystem(
	ecs *entity.ECS,
	query physics.SpatialQuery,
	tweener *tween.Tweener,
	scheduler *schedule.Queue,
	projectiles *ProjectileSystem,
	eventDispatcher *event.Dispatcher,
	rng *utils.PRNGService,
	logger *zap.Logger,
	traceLimiter config.Limiter,
) *TurretSystem {
	s := &TurretSystem{
		ecs:             ecs,
		query:           query,
		tweener:         tweener,
		scheduler:       scheduler,
		projectiles:     projectiles,
		eventDispatcher: eventDispatcher,
		rng:             rng,
		logger:          logger,
		traceLimiter:    traceLimiter,
		runtime:         make(map[types.EntityID]*turretRuntime),
	}
	eventDispatcher.Subscribe(event.TurretRemoved, s)
	return s
}

// OnEvent забывает состояние удалённой турели, останавливает её твины
// и возвращает цвет подкрашенной преграде.
func (s *TurretSystem) OnEvent(e event.Event) {
	if e.Type != event.TurretRemoved {
		return
	}
	if id, ok := e.Data.(types.EntityID); ok {
		if t, ok := s.ecs.Turrets[id]; ok {
			s.clearObstacle(t)
		}
		s.tweener.KillOwner(id)
		delete(s.runtime, id)
	}
}

func (s *TurretSystem) runtimeOf(id types.EntityID) *turretRuntime {
	rt, ok := s.runtime[id]
	if !ok {
		rt = &turretRuntime{trace: s.traceLimiter.Limiter()}
		s.runtime[id] = rt
	}
	return rt
}

func (s *TurretSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.TurretIDs() {
		turret := s.ecs.Turrets[id]
		tr, ok := s.ecs.Transforms[id]
		if !ok {
			continue
		}
		s.updateTurret(id, turret, tr, float32(deltaTime))
	}
}

func (s *TurretSystem) updateTurret(id types.EntityID, t *component.Turret, tr *component.Transform, dt float32) {
	switch t.State {
	case component.TurretIdle, component.TurretAiming, component.TurretReadyToFire, component.TurretAttacking:
	default:
		t.State = component.TurretIdle
	}

	t.TimeSinceLastAttack += dt
	t.HasTarget = true
	t.DebugRay = nil

	candidates := s.query.OverlapSphere(tr.Position, t.Stats.Range, t.Stats.TargetMask)
	if len(candidates) == 0 {
		t.HasTarget = false
		t.IsObstacleBlocking = false
		t.State = component.TurretIdle
		s.returnToDefault(id, t)
		s.clearObstacle(t)
		return
	}

	aimed := false
	for _, candidate := range candidates {
		ctr, ok := s.ecs.Transforms[candidate]
		if !ok {
			continue
		}
		if collider, ok := s.ecs.Colliders[candidate]; ok && collider.Tag == types.TagPlayer {
			aimPoint := s.aimPoint(candidate, ctr)
			if t.State != component.TurretReadyToFire && !aimed {
				s.aimAt(id, t, tr, ctr.Position, aimPoint)
				aimed = true
			}

			t.IsObstacleBlocking = s.checkEligibility(id, t, tr, ctr.Position, aimPoint)
			s.trace(id, t)

			if ctr.Position.Distance(tr.Position) < t.Stats.SafeZoneRange {
				t.HasTarget = false
				return
			}

			if t.State == component.TurretReadyToFire && t.InsideTurretArc && t.InsideBarrelAngle && !t.IsObstacleBlocking {
				s.performAttack(id, t, candidate)
				t.State = component.TurretAttacking
			}

			if t.State == component.TurretAttacking || t.State == component.TurretReadyToFire {
				t.HasTarget = true
				return
			}
		}

		t.InsideBarrelAngle = true
		t.InsideTurretArc = insideArc(t, tr, ctr.Position)
		if !t.InsideTurretArc {
			t.HasTarget = false
		}
	}
}

// aimPoint: якорь головы, если он есть, иначе позиция цели.
func (s *TurretSystem) aimPoint(target types.EntityID, tr *component.Transform) geom.Vec3 {
	if anchor, ok := s.ecs.HeadAnchors[target]; ok {
		return tr.Position.Add(anchor.Offset)
	}
	return tr.Position
}

// GunPosition: точка вращения ствола в мире.
func GunPosition(t *component.Turret, tr *component.Transform) geom.Vec3 {
	return tr.Position.Add(tr.Rotation.Rotate(t.Stats.GunOffset))
}

// MuzzlePosition: дульный срез с учётом текущего поворота ствола.
func MuzzlePosition(t *component.Turret, tr *component.Transform) geom.Vec3 {
	return GunPosition(t, tr).Add(t.GunRotation.Rotate(t.Stats.MuzzleOffset))
}

func insideArc(t *component.Turret, tr *component.Transform, target geom.Vec3) bool {
	direction := target.Sub(tr.Position).Normalized()
	angle := tr.Forward().Angle(direction)
	return angle <= t.Stats.TargetArc/2
}

// aimAt запускает манёвр наведения или, если он уже идёт, перенацеливает его.
func (s *TurretSystem) aimAt(id types.EntityID, t *component.Turret, tr *component.Transform, targetPos, aimPoint geom.Vec3) {
	rt := s.runtimeOf(id)
	baseKey := tween.Key{Owner: id, Channel: channelBase}
	gunKey := tween.Key{Owner: id, Channel: channelGun}

	horizontal := geom.Vec3{X: targetPos.X - tr.Position.X, Z: targetPos.Z - tr.Position.Z}
	baseTo := t.BaseRotation
	if horizontal.LengthSquared() > 0 {
		baseTo = geom.LookRotation(horizontal, geom.Up)
	}

	gunPos := GunPosition(t, tr)
	dir := aimPoint.Sub(gunPos).Normalized()
	finalAim := aimPoint.AddScaled(dir, t.Stats.GunElevationOffset)
	gunTo := geom.LookRotation(finalAim.Sub(gunPos), geom.Up)

	if rt.aim != nil && !rt.aim.gun.Done() {
		if !s.tweener.Retarget(baseKey, baseTo) {
			rt.aim.base = s.tweener.Rotate(baseKey, &t.BaseRotation, baseTo, config.AimBaseDuration)
		}
		s.tweener.Retarget(gunKey, gunTo)
		return
	}

	rt.returning = false
	if t.State == component.TurretIdle {
		t.State = component.TurretAiming
	}
	maneuver := &aimManeuver{}
	maneuver.base = s.tweener.Rotate(baseKey, &t.BaseRotation, baseTo, config.AimBaseDuration)
	maneuver.gun = s.tweener.Rotate(gunKey, &t.GunRotation, gunTo, config.AimGunDuration).OnComplete(func() {
		t.State = component.TurretReadyToFire
		if rt.aim == maneuver {
			rt.aim = nil
		}
	})
	rt.aim = maneuver
}

// returnToDefault плавно возвращает основание и ствол в исходное положение.
// Идущее наведение при этом обрывается.
func (s *TurretSystem) returnToDefault(id types.EntityID, t *component.Turret) {
	rt := s.runtimeOf(id)
	if rt.returning && rt.aim == nil {
		return
	}
	rt.aim = nil
	rt.returning = true
	s.tweener.Rotate(tween.Key{Owner: id, Channel: channelBase}, &t.BaseRotation, t.DefaultBaseRotation, config.ReturnToDefaultDuration)
	s.tweener.Rotate(tween.Key{Owner: id, Channel: channelGun}, &t.GunRotation, t.DefaultGunRotation, config.ReturnToDefaultDuration)
}

// checkEligibility проверяет угол возвышения, дугу и линию видимости.
// Возвращает true, если цель закрыта преградой.
func (s *TurretSystem) checkEligibility(id types.EntityID, t *component.Turret, tr *component.Transform, targetPos, aimPoint geom.Vec3) bool {
	gunPos := GunPosition(t, tr)
	toTarget := aimPoint.Sub(gunPos)
	distance := toTarget.Length()
	dir := toTarget.Normalized()

	elevation := math32.Asin(mathutil.Clamp(dir.Y, -1, 1)) * geom.Rad2Deg
	if elevation < t.Stats.FiringAngle {
		// ниже пола ствола: цель недоступна, но это не преграда
		if t.Stats.Debug {
			s.logger.Debug("target below firing angle",
				zap.Uint32("turret", uint32(id)),
				zap.Float32("elevation", elevation))
		}
		t.HasTarget = false
		t.InsideBarrelAngle = false
		return false
	}

	t.InsideBarrelAngle = true
	t.InsideTurretArc = insideArc(t, tr, targetPos)

	if hit, ok := s.query.Raycast(gunPos, dir, t.Stats.Range, t.Stats.ObstacleMask); ok && hit.Distance < distance {
		s.markObstacle(id, t, hit.Entity)
		s.recordRay(t, gunPos, dir, config.RayObstructedColor)
		return true
	}

	s.clearObstacle(t)
	if t.InsideTurretArc {
		s.recordRay(t, gunPos, dir, config.RayInArcColor)
	} else {
		s.recordRay(t, gunPos, dir, config.RayOutOfArcColor)
	}
	return false
}

func (s *TurretSystem) recordRay(t *component.Turret, from, dir geom.Vec3, c color.RGBA) {
	if !t.Stats.Debug {
		return
	}
	t.DebugRay = &component.DebugRay{From: from, To: from.AddScaled(dir, t.Stats.Range), Color: c}
}

// markObstacle запоминает преграду и в режиме отладки подсвечивает её.
func (s *TurretSystem) markObstacle(id types.EntityID, t *component.Turret, obstacle types.EntityID) {
	t.HasTarget = false
	if obstacle != t.LastObstacle {
		s.clearObstacle(t)
		t.LastObstacle = obstacle
		if _, ok := s.ecs.Materials[obstacle]; !ok {
			s.logger.Info("obstacle has no material", zap.Uint32("obstacle", uint32(obstacle)))
		}
		s.logger.Debug("obstacle between turret and target",
			zap.Uint32("turret", uint32(id)),
			zap.Uint32("obstacle", uint32(obstacle)))
	}
	if !t.Stats.Debug || t.TintsObstacle {
		return
	}
	if material, ok := s.ecs.Materials[obstacle]; ok {
		material.Tint(config.DebugObstacleColor)
		t.TintsObstacle = true
	}
}

// clearObstacle снимает подсветку и забывает преграду.
func (s *TurretSystem) clearObstacle(t *component.Turret) {
	if t.LastObstacle == 0 {
		return
	}
	s.releaseTint(t)
	t.LastObstacle = 0
}

func (s *TurretSystem) releaseTint(t *component.Turret) {
	if !t.TintsObstacle {
		return
	}
	if material, ok := s.ecs.Materials[t.LastObstacle]; ok {
		material.Untint()
	}
	t.TintsObstacle = false
}

// performAttack стреляет, если прошла перезарядка.
func (s *TurretSystem) performAttack(id types.EntityID, t *component.Turret, target types.EntityID) {
	if t.TimeSinceLastAttack < t.Stats.AttackCooldown {
		if t.Stats.Debug {
			s.logger.Debug("still in cooldown", zap.Uint32("turret", uint32(id)))
		}
		return
	}
	if _, ok := s.ecs.Damageables[target]; ok {
		s.shoot(id, t)
	}
	t.TimeSinceLastAttack = 0
	t.State = component.TurretAiming
	if t.Stats.Debug {
		s.logger.Debug("attack carried out",
			zap.Uint32("turret", uint32(id)),
			zap.Uint32("target", uint32(target)))
	}
}

// shoot берёт снаряд из пула и выпускает его из дульного среза.
func (s *TurretSystem) shoot(id types.EntityID, t *component.Turret) {
	tr := s.ecs.Transforms[id]
	p := s.projectiles.Pool().Acquire()
	p.SetDamage(t.Stats.Damage)
	p.Speed = t.Stats.ProjectileSpeed
	p.Owner = id
	p.Position = MuzzlePosition(t, tr)

	dir := t.GunRotation.Forward()
	if t.Stats.SpreadBullets {
		dir = s.addVariance(dir, t.Stats.BulletSpread)
	}
	p.Direction = dir
	p.Rotation = geom.LookRotation(dir, geom.Up)
	p.SetActive(true)
	s.projectiles.Launch(p)

	lease := p.Lease
	s.scheduler.After(config.ProjectileLifetime, func() {
		s.projectiles.ReturnToPool(p, lease)
	})
	s.eventDispatcher.Dispatch(event.Event{Type: event.ProjectileFired, Data: id})
}

// addVariance добавляет к направлению случайное отклонение по каждой оси в [-spread, spread].
func (s *TurretSystem) addVariance(dir, spread geom.Vec3) geom.Vec3 {
	variance := geom.Vec3{
		X: s.rng.Range(-spread.X, spread.X),
		Y: s.rng.Range(-spread.Y, spread.Y),
		Z: s.rng.Range(-spread.Z, spread.Z),
	}
	result := dir.Add(variance).Normalized()
	if result.LengthSquared() == 0 {
		return dir
	}
	return result
}

// trace пишет сводку по доступности цели не чаще, чем разрешает лимитер.
func (s *TurretSystem) trace(id types.EntityID, t *component.Turret) {
	if !t.Stats.Debug || !s.runtimeOf(id).trace.Allow() {
		return
	}
	s.logger.Debug("target availability",
		zap.Uint32("turret", uint32(id)),
		zap.Stringer("state", t.State),
		zap.Bool("barrelAngle", t.InsideBarrelAngle),
		zap.Bool("arc", t.InsideTurretArc),
		zap.Bool("obstacle", t.IsObstacleBlocking))
}

// ToggleDebug включает или выключает отладку у всех турелей и возвращает новое значение.
func (s *TurretSystem) ToggleDebug() bool {
	enabled := false
	for _, t := range s.ecs.Turrets {
		if t.Stats.Debug {
			enabled = true
			break
		}
	}
	enabled = !enabled
	for _, t := range s.ecs.Turrets {
		t.Stats.Debug = enabled
		if !enabled {
			t.DebugRay = nil
			s.releaseTint(t)
		}
	}
	return enabled
}
