// internal/component/visual.go
package component

import (
	"go-turret-defense/internal/geom"
	"image/color"
)

// DebugRay: луч от ствола к цели, который турель рисует в режиме отладки.
type DebugRay struct {
	From, To geom.Vec3
	Color    color.RGBA
}
