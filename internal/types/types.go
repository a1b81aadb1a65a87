// internal/types/types.go
package types

// EntityID: идентификатор сущности в ECS. Ноль зарезервирован под "нет сущности".
type EntityID uint32

// Layer: номер слоя коллизий.
type Layer uint8

// LayerMask: битовая маска слоёв для пространственных запросов.
type LayerMask uint32

const (
	LayerDefault Layer = iota
	LayerPlayer
	LayerObstacle
	LayerProjectile
)

// Mask возвращает маску, содержащую только этот слой.
func (l Layer) Mask() LayerMask {
	return 1 << LayerMask(l)
}

// Contains проверяет, входит ли слой в маску.
func (m LayerMask) Contains(l Layer) bool {
	return m&l.Mask() != 0
}

// MaskOf собирает маску из нескольких слоёв.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= l.Mask()
	}
	return m
}

// Tag: строковая метка сущности (аналог тега игрока).
type Tag string

const (
	TagNone   Tag = ""
	TagPlayer Tag = "Player"
)
