// component/render.go
package component

import "image/color"

// Material: цвет, которым сущность рисуется. Турели подкрашивают
// материал препятствия в режиме отладки.
// Несколько турелей могут подсвечивать один материал: исходный цвет
// возвращается, когда снята последняя подсветка.
type Material struct {
	Color color.RGBA

	original color.RGBA
	tints    int
}

// Tint перекрашивает материал, запоминая исходный цвет при первой подсветке.
func (m *Material) Tint(c color.RGBA) {
	if m.tints == 0 {
		m.original = m.Color
	}
	m.tints++
	m.Color = c
}

// Untint снимает одну подсветку.
func (m *Material) Untint() {
	if m.tints == 0 {
		return
	}
	m.tints--
	if m.tints == 0 {
		m.Color = m.original
	}
}

func (m *Material) Tinted() bool {
	return m.tints > 0
}
