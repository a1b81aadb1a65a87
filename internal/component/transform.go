// internal/component/transform.go
package component

import "go-turret-defense/internal/geom"

// Transform: положение и ориентация сущности в мире.
type Transform struct {
	Position geom.Vec3
	Rotation geom.Quat
}

// Forward: направление "вперёд" сущности.
func (t *Transform) Forward() geom.Vec3 {
	return t.Rotation.Forward()
}
