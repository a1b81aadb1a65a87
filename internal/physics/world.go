// internal/physics/world.go
package physics

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
	"go-turret-defense/pkg/utils"

	"github.com/chewxy/math32"
)

// World отвечает на пространственные запросы по коллайдерам из ECS.
// Сферы и AABB, перебор в порядке ID сущностей.
type World struct {
	ecs *entity.ECS
}

var _ SpatialQuery = (*World)(nil)

func NewWorld(ecs *entity.ECS) *World {
	return &World{ecs: ecs}
}

func (w *World) OverlapSphere(center geom.Vec3, radius float32, mask types.LayerMask) []types.EntityID {
	var result []types.EntityID
	for _, id := range w.ecs.ColliderIDs() {
		collider := w.ecs.Colliders[id]
		transform, ok := w.ecs.Transforms[id]
		if !ok || !mask.Contains(collider.Layer) {
			continue
		}
		if overlaps(collider, transform.Position, center, radius) {
			result = append(result, id)
		}
	}
	return result
}

func (w *World) Raycast(origin, direction geom.Vec3, maxDistance float32, mask types.LayerMask) (RaycastHit, bool) {
	dir := direction.Normalized()
	if dir == geom.Zero || maxDistance <= 0 {
		return RaycastHit{}, false
	}

	best := RaycastHit{Distance: math32.MaxFloat32}
	found := false
	for _, id := range w.ecs.ColliderIDs() {
		collider := w.ecs.Colliders[id]
		transform, ok := w.ecs.Transforms[id]
		if !ok || !mask.Contains(collider.Layer) {
			continue
		}
		var (
			distance float32
			hit      bool
		)
		switch collider.Shape {
		case component.ShapeSphere:
			distance, hit = raySphere(origin, dir, transform.Position, collider.Radius)
		case component.ShapeBox:
			distance, hit = rayBox(origin, dir, transform.Position, collider.HalfExtents)
		}
		if hit && distance <= maxDistance && distance < best.Distance {
			best = RaycastHit{Entity: id, Distance: distance, Point: origin.AddScaled(dir, distance)}
			found = true
		}
	}
	return best, found
}

func overlaps(collider *component.Collider, position, center geom.Vec3, radius float32) bool {
	switch collider.Shape {
	case component.ShapeSphere:
		reach := radius + collider.Radius
		return position.Sub(center).LengthSquared() <= reach*reach
	case component.ShapeBox:
		closest := geom.Vec3{
			X: utils.Clamp(center.X, position.X-collider.HalfExtents.X, position.X+collider.HalfExtents.X),
			Y: utils.Clamp(center.Y, position.Y-collider.HalfExtents.Y, position.Y+collider.HalfExtents.Y),
			Z: utils.Clamp(center.Z, position.Z-collider.HalfExtents.Z, position.Z+collider.HalfExtents.Z),
		}
		return closest.Sub(center).LengthSquared() <= radius*radius
	}
	return false
}

// raySphere возвращает расстояние до точки входа; dir должен быть единичным.
func raySphere(origin, dir, center geom.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	c := oc.LengthSquared() - radius*radius
	if c <= 0 {
		return 0, false // начало луча внутри сферы
	}
	b := oc.Dot(dir)
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayBox: метод плит для AABB.
func rayBox(origin, dir, center, half geom.Vec3) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)
	inside := true

	axes := [3][4]float32{
		{origin.X, dir.X, center.X - half.X, center.X + half.X},
		{origin.Y, dir.Y, center.Y - half.Y, center.Y + half.Y},
		{origin.Z, dir.Z, center.Z - half.Z, center.Z + half.Z},
	}
	for _, axis := range axes {
		o, d, lo, hi := axis[0], axis[1], axis[2], axis[3]
		if o < lo || o > hi {
			inside = false
		}
		if math32.Abs(d) < 1e-8 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	if inside {
		return 0, false
	}
	return tMin, true
}
