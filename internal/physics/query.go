// internal/physics/query.go
package physics

import (
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
)

// RaycastHit: ближайшее пересечение луча с коллайдером.
type RaycastHit struct {
	Entity   types.EntityID
	Distance float32
	Point    geom.Vec3
}

// SpatialQuery это узкий интерфейс к физике движка: только чтение, синхронно, раз в кадр.
type SpatialQuery interface {
	// OverlapSphere возвращает сущности, чьи коллайдеры пересекают сферу.
	// Порядок результата стабилен, но не отсортирован по расстоянию.
	OverlapSphere(center geom.Vec3, radius float32, mask types.LayerMask) []types.EntityID
	// Raycast ищет ближайшее попадание луча не дальше maxDistance.
	// Коллайдеры, внутри которых начинается луч, не считаются.
	Raycast(origin, direction geom.Vec3, maxDistance float32, mask types.LayerMask) (RaycastHit, bool)
}
