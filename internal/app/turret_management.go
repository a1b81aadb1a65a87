// internal/app/turret_management.go
package app

import (
	"fmt"
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/defs"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"

	"go.uber.org/zap"
)

// PlaceTurret creates a turret entity from its definition and registers it
// with the turrets manager. Base and gun start (and rest) facing the yaw.
func (g *Game) PlaceTurret(placement defs.TurretPlacement) (types.EntityID, error) {
	def, ok := defs.TurretLibrary[placement.DefID]
	if !ok {
		return 0, fmt.Errorf("unknown turret definition %q", placement.DefID)
	}
	stats, err := def.Stats()
	if err != nil {
		return 0, fmt.Errorf("turret %s: %w", def.ID, err)
	}
	if g.debug {
		stats.Debug = true
	}

	id := g.ECS.NewEntity()
	rotation := geom.Euler(0, placement.Yaw, 0)
	g.ECS.Transforms[id] = &component.Transform{Position: placement.Position, Rotation: rotation}
	turret := &component.Turret{
		DefID:               def.ID,
		Stats:               stats,
		BaseRotation:        rotation,
		GunRotation:         rotation,
		DefaultBaseRotation: rotation,
		DefaultGunRotation:  rotation,
	}
	g.ECS.Turrets[id] = turret
	g.TurretsManager.Register(id, turret)

	g.logger.Debug("turret placed",
		zap.String("def", def.ID),
		zap.Uint32("entity", uint32(id)))
	g.EventDispatcher.Dispatch(event.Event{Type: event.TurretPlaced, Data: id})
	return id, nil
}

// RemoveTurret removes a turret and everything attached to it. Projectiles it
// already fired keep flying and return to the pool as usual.
func (g *Game) RemoveTurret(id types.EntityID) bool {
	if _, ok := g.ECS.Turrets[id]; !ok {
		return false
	}
	// Подписчики ещё видят компоненты турели
	g.EventDispatcher.Dispatch(event.Event{Type: event.TurretRemoved, Data: id})
	g.ECS.DestroyEntity(id)
	return true
}

// TurretAt returns the turret closest to point within radius.
func (g *Game) TurretAt(point geom.Vec3, radius float32) (types.EntityID, bool) {
	best := types.EntityID(0)
	bestDistance := radius
	for _, id := range g.ECS.TurretIDs() {
		tr, ok := g.ECS.Transforms[id]
		if !ok {
			continue
		}
		if d := tr.Position.Flat().Distance(point.Flat()); d <= bestDistance {
			best, bestDistance = id, d
		}
	}
	return best, best != 0
}
