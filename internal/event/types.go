// internal/event/types.go
package event

import "go-turret-defense/internal/types"

const (
	DamageReceived   EventType = "DamageReceived"   // Сущность получила урон
	Regeneration     EventType = "Regeneration"     // Шаг регенерации здоровья
	ProjectileFired  EventType = "ProjectileFired"  // Турель выстрелила
	ProjectileHit    EventType = "ProjectileHit"    // Снаряд во что-то попал
	PrototypeChanged EventType = "PrototypeChanged" // Сменился прототип снаряда в пуле
	TurretPlaced     EventType = "TurretPlaced"
	TurretRemoved    EventType = "TurretRemoved"
)

// HealthData: данные для DamageReceived и Regeneration.
type HealthData struct {
	Entity types.EntityID
	Amount float64
	Health float64
	Max    float64
}

// HitData: данные для ProjectileHit.
type HitData struct {
	Turret types.EntityID
	Target types.EntityID
	Damage int
	Dealt  bool // у цели была возможность получать урон
}
