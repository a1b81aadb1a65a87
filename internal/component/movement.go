// component/movement.go
package component

import "go-turret-defense/internal/geom"

// Player: управляемый игроком персонаж.
type Player struct {
	Speed float32   // единиц в секунду
	Input geom.Vec3 // желаемое направление движения в плоскости XZ
}
