// internal/component/health.go
package component

// Damageable: всё, во что может попасть снаряд.
type Damageable interface {
	TakeDamage(damage int)
}

// Health: компонент здоровья
type Health struct {
	Value          float64
	Max            float64
	CanRegenerate  bool
	RegenInterval  float64 // секунд между шагами регенерации
	IsRegenerating bool
}
