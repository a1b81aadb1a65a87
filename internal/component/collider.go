// internal/component/collider.go
package component

import (
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
)

// ColliderShape: форма коллайдера.
type ColliderShape int

const (
	ShapeSphere ColliderShape = iota
	ShapeBox
)

// Collider участвует в пространственных запросах (overlap и raycast).
type Collider struct {
	Shape       ColliderShape
	Radius      float32   // для ShapeSphere
	HalfExtents geom.Vec3 // для ShapeBox, оси выровнены по миру
	Layer       types.Layer
	Tag         types.Tag
}

// HeadAnchor: точка точного прицеливания относительно позиции сущности.
// Если её нет, турель целится в саму позицию.
type HeadAnchor struct {
	Offset geom.Vec3
}
