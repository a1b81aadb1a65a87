package system

import (
	"image/color"
	"testing"

	"go-turret-defense/internal/component"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/geom"
)

func launch(h *harness, from, dir geom.Vec3) *component.Projectile {
	p := h.pool.Acquire()
	p.SetDamage(7)
	p.Speed = 10
	p.Position = from
	p.Direction = dir
	h.projectiles.Launch(p)
	return p
}

func TestProjectile_DamagesOncePerCollision(t *testing.T) {
	h := newHarness(t)
	player, target := h.addPlayer(geom.Vec3{Z: 5})

	var hits []event.HitData
	h.dispatcher.SubscribeFunc(event.ProjectileHit, func(e event.Event) {
		hits = append(hits, e.Data.(event.HitData))
	})

	p := launch(h, geom.Zero, geom.Forward)
	lease := p.Lease
	h.run(1)

	if target.hits != 1 || target.damage != 7 {
		t.Fatalf("hits=%d damage=%d, want 1 and 7", target.hits, target.damage)
	}
	if !p.InPool || p.Active {
		t.Errorf("projectile should be back in the pool")
	}
	if len(hits) != 1 || hits[0].Target != player || !hits[0].Dealt {
		t.Errorf("unexpected hit events %+v", hits)
	}

	// Опоздавший таймер жизни ничего не ломает.
	h.projectiles.ReturnToPool(p, lease)
	if h.pool.Inactive() != 1 {
		t.Errorf("late return duplicated the instance, inactive=%d", h.pool.Inactive())
	}
}

func TestProjectile_NonDamageableCollision(t *testing.T) {
	h := newHarness(t)
	h.addObstacle(geom.Vec3{Z: 3}, geom.Vec3{X: 1, Y: 1, Z: 0.5}, color.RGBA{A: 255})

	var dealt []bool
	h.dispatcher.SubscribeFunc(event.ProjectileHit, func(e event.Event) {
		dealt = append(dealt, e.Data.(event.HitData).Dealt)
	})

	p := launch(h, geom.Zero, geom.Forward)
	h.run(1)
	if !p.InPool {
		t.Errorf("projectile should be recycled after hitting an obstacle")
	}
	if len(dealt) != 1 || dealt[0] {
		t.Errorf("unexpected hit events %v", dealt)
	}
}

func TestProjectile_StaleLeaseIgnored(t *testing.T) {
	h := newHarness(t)
	p := launch(h, geom.Zero, geom.Up)
	oldLease := p.Lease

	h.projectiles.ReturnToPool(p, oldLease)
	again := launch(h, geom.Zero, geom.Up)
	if again != p {
		t.Fatalf("expected the same instance to be re-lent")
	}

	h.projectiles.ReturnToPool(p, oldLease)
	if !p.Active || p.InPool || len(h.projectiles.Flying()) != 1 {
		t.Errorf("stale return recalled a re-lent projectile")
	}
}

func TestProjectile_NilReturnIgnored(t *testing.T) {
	h := newHarness(t)
	h.projectiles.ReturnToPool(nil, 0)
	h.projectiles.Launch(nil)
	if len(h.projectiles.Flying()) != 0 || h.pool.Inactive() != 0 {
		t.Errorf("nil projectile changed state")
	}
}

func TestProjectile_ClearRecyclesEverything(t *testing.T) {
	h := newHarness(t)
	launch(h, geom.Zero, geom.Up)
	launch(h, geom.Zero, geom.Right)
	h.projectiles.Clear()
	if len(h.projectiles.Flying()) != 0 || h.pool.Inactive() != 2 {
		t.Errorf("flying=%d inactive=%d after Clear", len(h.projectiles.Flying()), h.pool.Inactive())
	}
}
