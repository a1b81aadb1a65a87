// internal/system/movement.go
package system

import (
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/geom"
)

// MovementSystem двигает игрока в плоскости XZ по его вводу.
type MovementSystem struct {
	ecs *entity.ECS
}

func NewMovementSystem(ecs *entity.ECS) *MovementSystem {
	return &MovementSystem{ecs: ecs}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for id, player := range s.ecs.Players {
		tr, ok := s.ecs.Transforms[id]
		if !ok {
			continue
		}
		input := player.Input.Flat()
		if input.LengthSquared() == 0 {
			continue
		}
		// по диагонали не быстрее, чем по оси
		dir := input.Normalized()
		tr.Position = tr.Position.AddScaled(dir, player.Speed*float32(deltaTime))
		tr.Rotation = geom.LookRotation(dir, geom.Up)
	}
}
