package system

import (
	"image/color"
	"testing"

	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/utils"
)

func TestTurret_EngagesVisibleTarget(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	_, target := h.addPlayer(geom.Vec3{Z: 5})

	h.step(frame)
	if turret.State != component.TurretAiming {
		t.Fatalf("state = %s, want Aiming", turret.State)
	}
	if !turret.HasTarget || !turret.InsideBarrelAngle || !turret.InsideTurretArc || turret.IsObstacleBlocking {
		t.Fatalf("unexpected flags %+v", turret)
	}

	h.run(1.55)
	if got := h.pool.Stats().Acquired; got != 1 {
		t.Fatalf("acquired %d projectiles, want 1", got)
	}
	if turret.State != component.TurretAttacking && turret.State != component.TurretReadyToFire {
		t.Errorf("state = %s after the first shot", turret.State)
	}
	if !turret.CanAttackTarget() {
		t.Errorf("turret should report an actionable target")
	}
	if target.hits != 1 || target.damage != 10 {
		t.Errorf("target took %d hits / %d damage, want 1 / 10", target.hits, target.damage)
	}
	if len(h.projectiles.Flying()) != 0 || h.pool.Inactive() != 1 {
		t.Errorf("projectile should be back in the pool after the hit")
	}
}

func TestTurret_CooldownGatesShots(t *testing.T) {
	tests := []struct {
		name     string
		cooldown float32
		want     int
	}{
		{"cooldown shorter than the aim cycle", 1, 3},
		{"cooldown skips every other cycle", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			stats := defaultStats()
			stats.AttackCooldown = tt.cooldown
			_, turret := h.addTurret(geom.Zero, stats)
			h.addPlayer(geom.Vec3{Z: 5})

			h.run(3.5)
			if got := h.pool.Stats().Acquired; got != tt.want {
				t.Errorf("acquired %d, want %d", got, tt.want)
			}
			if turret.TimeSinceLastAttack < 0 {
				t.Errorf("timer went negative: %v", turret.TimeSinceLastAttack)
			}
		})
	}
}

func TestTurret_SafeZoneOverridesEverything(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	_, target := h.addPlayer(geom.Vec3{Z: 1})

	for i := 0; i < 60; i++ {
		h.step(frame)
		if turret.HasTarget {
			t.Fatalf("frame %d: target inside the safe zone reported as actionable", i)
		}
	}
	if h.pool.Stats().Acquired != 0 || target.hits != 0 {
		t.Errorf("turret fired into its safe zone")
	}
}

func TestTurret_ElevationFloorBlocksFiring(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.FiringAngle = 10 // цель видна под углом около 8 градусов
	_, turret := h.addTurret(geom.Zero, stats)
	h.addPlayer(geom.Vec3{Z: 5})

	h.step(frame)
	if turret.HasTarget {
		t.Errorf("target below the firing angle should not be actionable")
	}
	if turret.IsObstacleBlocking {
		t.Errorf("elevation failure is not an obstruction")
	}

	h.run(3)
	if got := h.pool.Stats().Acquired; got != 0 {
		t.Errorf("turret fired %d times below its firing angle", got)
	}
}

func TestTurret_ObstacleBlocksAndIsTinted(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.Debug = true
	_, turret := h.addTurret(geom.Zero, stats)
	h.addPlayer(geom.Vec3{Z: 5})
	crate := color.RGBA{120, 90, 60, 255}
	wall := h.addObstacle(geom.Vec3{Y: 1, Z: 2.5}, geom.Vec3{X: 1, Y: 1, Z: 0.2}, crate)

	h.step(frame)
	if !turret.IsObstacleBlocking || turret.HasTarget {
		t.Fatalf("obstacle should block: blocking=%v hasTarget=%v", turret.IsObstacleBlocking, turret.HasTarget)
	}
	if turret.LastObstacle != wall {
		t.Errorf("last obstacle = %d, want %d", turret.LastObstacle, wall)
	}
	if got := h.ecs.Materials[wall].Color; got != config.DebugObstacleColor {
		t.Errorf("obstacle colour = %v, want debug tint", got)
	}
	if turret.DebugRay == nil || turret.DebugRay.Color != config.RayObstructedColor {
		t.Errorf("expected a red debug ray, got %+v", turret.DebugRay)
	}

	h.run(2)
	if h.pool.Stats().Acquired != 0 {
		t.Errorf("turret fired through an obstacle")
	}

	// Убираем стену: цвет восстанавливается, преграда забывается.
	h.ecs.Transforms[wall].Position = geom.Vec3{X: 30}
	h.step(frame)
	if turret.IsObstacleBlocking {
		t.Errorf("obstruction must be recomputed every frame")
	}
	if got := h.ecs.Materials[wall].Color; got != crate {
		t.Errorf("obstacle colour = %v, want restored %v", got, crate)
	}
	if turret.LastObstacle != 0 {
		t.Errorf("last obstacle should be cleared")
	}
}

func TestTurret_ObstacleNotTintedWithoutDebug(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	h.addPlayer(geom.Vec3{Z: 5})
	crate := color.RGBA{120, 90, 60, 255}
	wall := h.addObstacle(geom.Vec3{Y: 1, Z: 2.5}, geom.Vec3{X: 1, Y: 1, Z: 0.2}, crate)

	h.step(frame)
	if !turret.IsObstacleBlocking {
		t.Fatalf("obstacle should block")
	}
	if got := h.ecs.Materials[wall].Color; got != crate {
		t.Errorf("obstacle tinted with debug off: %v", got)
	}
	if turret.DebugRay != nil {
		t.Errorf("debug ray recorded with debug off")
	}
}

func TestTurret_OutOfArc(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	h.addPlayer(geom.Vec3{X: 5})

	h.step(frame)
	if turret.InsideTurretArc || turret.HasTarget {
		t.Errorf("target at 90 degrees should be outside a 60 degree arc")
	}
	h.run(3)
	if h.pool.Stats().Acquired != 0 {
		t.Errorf("turret fired outside its arc")
	}
}

func TestTurret_EmptyQueryResets(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	player, _ := h.addPlayer(geom.Vec3{X: 2, Z: 5})

	h.run(0.5)
	if turret.BaseRotation.Angle(geom.Identity) < 1 {
		t.Fatalf("base should have started turning toward the target")
	}

	h.ecs.Transforms[player].Position = geom.Vec3{Z: 40}
	h.step(frame)
	if turret.State != component.TurretIdle || turret.HasTarget || turret.IsObstacleBlocking {
		t.Fatalf("state=%s hasTarget=%v blocking=%v after losing the target", turret.State, turret.HasTarget, turret.IsObstacleBlocking)
	}

	h.run(config.ReturnToDefaultDuration + 0.1)
	if a := turret.BaseRotation.Angle(turret.DefaultBaseRotation); a > 0.5 {
		t.Errorf("base not back at rest, off by %v degrees", a)
	}
	if a := turret.GunRotation.Angle(turret.DefaultGunRotation); a > 0.5 {
		t.Errorf("gun not back at rest, off by %v degrees", a)
	}
	if turret.State != component.TurretIdle {
		t.Errorf("aim completion leaked after reset, state=%s", turret.State)
	}
}

func TestTurret_UnknownStateFallsBackToIdle(t *testing.T) {
	h := newHarness(t)
	_, turret := h.addTurret(geom.Zero, defaultStats())
	turret.State = component.TurretState(42)

	h.step(frame)
	if turret.State != component.TurretIdle {
		t.Errorf("state = %s, want Idle", turret.State)
	}
}

func TestTurret_AddVarianceStaysNormalized(t *testing.T) {
	h := newHarness(t)
	h.turrets.rng = utils.NewPRNGService(3)

	if got := h.turrets.addVariance(geom.Forward, geom.Zero); got != geom.Forward {
		t.Errorf("zero spread changed the direction: %+v", got)
	}
	for i := 0; i < 50; i++ {
		dir := h.turrets.addVariance(geom.Forward, geom.Vec3{X: 0.1, Y: 0.1, Z: 0.1})
		if l := dir.Length(); l < 0.999 || l > 1.001 {
			t.Fatalf("direction not normalized: %v", l)
		}
		if angle := dir.Angle(geom.Forward); angle > 10 {
			t.Fatalf("spread too wide: %v degrees", angle)
		}
	}
}

func TestTurret_ShotRecycledByLifetime(t *testing.T) {
	h := newHarness(t)
	id, turret := h.addTurret(geom.Zero, defaultStats())
	turret.GunRotation = geom.LookRotation(geom.Up, geom.Forward)

	h.turrets.shoot(id, turret)
	if len(h.projectiles.Flying()) != 1 {
		t.Fatalf("projectile not launched")
	}
	h.run(config.ProjectileLifetime - 0.5)
	if len(h.projectiles.Flying()) != 1 {
		t.Fatalf("projectile returned too early")
	}
	h.run(1)
	if len(h.projectiles.Flying()) != 0 || h.pool.Inactive() != 1 {
		t.Errorf("projectile should be back in the pool after its lifetime")
	}
}

func TestTurret_AimsAtPositionWithoutHeadAnchor(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.FiringAngle = -10 // центр цели ниже ствола
	_, turret := h.addTurret(geom.Zero, stats)
	id, target := h.addPlayer(geom.Vec3{Z: 5})
	delete(h.ecs.HeadAnchors, id)

	h.step(frame)
	h.run(1.55)
	if !turret.InsideBarrelAngle {
		t.Fatalf("centre of the target should be within the barrel angle")
	}
	if target.hits != 1 {
		t.Errorf("target took %d hits, want 1", target.hits)
	}
}

func TestTurret_SharedObstacleRestoresOriginalColour(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.Debug = true
	_, left := h.addTurret(geom.Vec3{X: -1}, stats)
	_, right := h.addTurret(geom.Vec3{X: 1}, stats)
	h.addPlayer(geom.Vec3{Z: 5})
	crate := color.RGBA{120, 90, 60, 255}
	wall := h.addObstacle(geom.Vec3{Y: 1, Z: 2.5}, geom.Vec3{X: 2, Y: 1, Z: 0.2}, crate)

	h.step(frame)
	if left.LastObstacle != wall || right.LastObstacle != wall {
		t.Fatalf("both turrets should be blocked by the same wall: %d %d", left.LastObstacle, right.LastObstacle)
	}
	if got := h.ecs.Materials[wall].Color; got != config.DebugObstacleColor {
		t.Fatalf("obstacle colour = %v, want debug tint", got)
	}

	h.ecs.Transforms[wall].Position = geom.Vec3{X: 30}
	h.step(frame)
	if left.LastObstacle != 0 || right.LastObstacle != 0 {
		t.Errorf("both turrets should forget the wall")
	}
	if got := h.ecs.Materials[wall].Color; got != crate {
		t.Errorf("obstacle colour = %v, want restored %v", got, crate)
	}
	if h.ecs.Materials[wall].Tinted() {
		t.Errorf("no tint should remain on the wall")
	}
}

func TestTurret_DebugOffRestoresSharedObstacle(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.Debug = true
	h.addTurret(geom.Vec3{X: -1}, stats)
	h.addTurret(geom.Vec3{X: 1}, stats)
	h.addPlayer(geom.Vec3{Z: 5})
	crate := color.RGBA{120, 90, 60, 255}
	wall := h.addObstacle(geom.Vec3{Y: 1, Z: 2.5}, geom.Vec3{X: 2, Y: 1, Z: 0.2}, crate)

	h.step(frame)
	if enabled := h.turrets.ToggleDebug(); enabled {
		t.Fatalf("debug should be switched off")
	}
	if got := h.ecs.Materials[wall].Color; got != crate {
		t.Errorf("obstacle colour = %v, want restored %v", got, crate)
	}

	h.step(frame)
	if got := h.ecs.Materials[wall].Color; got != crate {
		t.Errorf("wall must stay untinted with debug off, found %v", got)
	}
}

func TestTurret_ObstacleWithoutMaterial(t *testing.T) {
	h := newHarness(t)
	stats := defaultStats()
	stats.Debug = true
	_, turret := h.addTurret(geom.Zero, stats)
	h.addPlayer(geom.Vec3{Z: 5})
	glass := h.addObstacle(geom.Vec3{Y: 1, Z: 2.5}, geom.Vec3{X: 1, Y: 1, Z: 0.2}, color.RGBA{})
	delete(h.ecs.Materials, glass)

	h.run(0.5)
	if !turret.IsObstacleBlocking || turret.LastObstacle != glass {
		t.Fatalf("obstacle without material must still block")
	}
	if turret.TintsObstacle {
		t.Errorf("no material to tint on an obstacle without one")
	}

	h.ecs.Transforms[glass].Position = geom.Vec3{X: 30}
	h.step(frame)
	if turret.LastObstacle != 0 || turret.IsObstacleBlocking {
		t.Errorf("obstacle should be forgotten once out of the way")
	}
}
