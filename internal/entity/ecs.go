// internal/entity/ecs.go
package entity

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/types"
	"sort"
)

type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Transforms  map[types.EntityID]*component.Transform
	Colliders   map[types.EntityID]*component.Collider
	HeadAnchors map[types.EntityID]*component.HeadAnchor
	Materials   map[types.EntityID]*component.Material
	Turrets     map[types.EntityID]*component.Turret
	Healths     map[types.EntityID]*component.Health
	Players     map[types.EntityID]*component.Player
	Damageables map[types.EntityID]component.Damageable
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Transforms:  make(map[types.EntityID]*component.Transform),
		Colliders:   make(map[types.EntityID]*component.Collider),
		HeadAnchors: make(map[types.EntityID]*component.HeadAnchor),
		Materials:   make(map[types.EntityID]*component.Material),
		Turrets:     make(map[types.EntityID]*component.Turret),
		Healths:     make(map[types.EntityID]*component.Health),
		Players:     make(map[types.EntityID]*component.Player),
		Damageables: make(map[types.EntityID]component.Damageable),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// DestroyEntity удаляет все компоненты сущности.
func (ecs *ECS) DestroyEntity(id types.EntityID) {
	delete(ecs.Transforms, id)
	delete(ecs.Colliders, id)
	delete(ecs.HeadAnchors, id)
	delete(ecs.Materials, id)
	delete(ecs.Turrets, id)
	delete(ecs.Healths, id)
	delete(ecs.Players, id)
	delete(ecs.Damageables, id)
}

// TurretIDs возвращает ID турелей по возрастанию, чтобы порядок обновления
// не зависел от порядка обхода map.
func (ecs *ECS) TurretIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Turrets))
	for id := range ecs.Turrets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ColliderIDs: то же для коллайдеров.
func (ecs *ECS) ColliderIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Colliders))
	for id := range ecs.Colliders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
