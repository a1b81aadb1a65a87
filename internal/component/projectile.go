// internal/component/projectile.go
package component

import (
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
	"image/color"
)

// Projectile представляет снаряд из пула. Между выстрелами экземпляр
// лежит в пуле неактивным, после выстрела "одолжен" турели до попадания
// или истечения времени жизни.
type Projectile struct {
	PrototypeID string
	Damage      int
	Speed       float32
	Position    geom.Vec3
	Rotation    geom.Quat
	Direction   geom.Vec3
	Color       color.RGBA
	Radius      float32
	Owner       types.EntityID

	Active bool

	// Поля ниже принадлежат пулу.
	InPool     bool
	Lease      uint32 // увеличивается при каждой выдаче из пула
	Generation uint32 // поколение прототипа, из которого создан экземпляр
}

// SetDamage задаёт урон для следующего попадания.
func (p *Projectile) SetDamage(amount int) {
	p.Damage = amount
}

func (p *Projectile) SetActive(active bool) {
	p.Active = active
}
