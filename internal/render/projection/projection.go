// internal/render/projection/projection.go
package projection

import (
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/geom"
)

// labelLift: подпись над турелью, в мировых единицах.
const labelLift float32 = 0.9

// WorldToScreen переводит мировую точку в пиксели экрана. Вид сверху: X вправо, Z вверх.
func WorldToScreen(p geom.Vec3) (float32, float32) {
	return config.ScreenWidth/2 + p.X*config.WorldScale, config.ScreenHeight/2 - p.Z*config.WorldScale
}

// ScreenToWorld: обратное преобразование, точка на полу (Y = 0).
func ScreenToWorld(x, y int) geom.Vec3 {
	return geom.Vec3{
		X: (float32(x) - config.ScreenWidth/2) / config.WorldScale,
		Z: (config.ScreenHeight/2 - float32(y)) / config.WorldScale,
	}
}

// LabelOrigin возвращает точку вывода текста шириной width, центрированного над p.
func LabelOrigin(p geom.Vec3, width int) (int, int) {
	x, y := WorldToScreen(p)
	return int(x) - width/2, int(y - labelLift*config.WorldScale)
}
