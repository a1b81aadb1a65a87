// internal/system/turrets_manager.go
package system

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/types"
)

// TurretsManager: реестр активных турелей уровня в порядке регистрации.
type TurretsManager struct {
	ids     []types.EntityID
	turrets map[types.EntityID]*component.Turret
}

func NewTurretsManager(eventDispatcher *event.Dispatcher) *TurretsManager {
	m := &TurretsManager{turrets: make(map[types.EntityID]*component.Turret)}
	if eventDispatcher != nil {
		eventDispatcher.Subscribe(event.TurretRemoved, m)
	}
	return m
}

// OnEvent снимает с учёта удалённые турели.
func (m *TurretsManager) OnEvent(e event.Event) {
	if e.Type != event.TurretRemoved {
		return
	}
	if id, ok := e.Data.(types.EntityID); ok {
		m.Deregister(id)
	}
}

// Register добавляет турель. Повторная регистрация заменяет компонент, не меняя порядок.
func (m *TurretsManager) Register(id types.EntityID, turret *component.Turret) {
	if turret == nil {
		return
	}
	if _, exists := m.turrets[id]; !exists {
		m.ids = append(m.ids, id)
	}
	m.turrets[id] = turret
}

func (m *TurretsManager) Deregister(id types.EntityID) {
	if _, exists := m.turrets[id]; !exists {
		return
	}
	delete(m.turrets, id)
	for i, registered := range m.ids {
		if registered == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
}

// Turrets возвращает турели в порядке регистрации.
func (m *TurretsManager) Turrets() []*component.Turret {
	result := make([]*component.Turret, 0, len(m.ids))
	for _, id := range m.ids {
		result = append(result, m.turrets[id])
	}
	return result
}

func (m *TurretsManager) Len() int { return len(m.ids) }

// AnyEngaging: хотя бы одна турель сейчас угрожает цели.
func (m *TurretsManager) AnyEngaging() bool {
	for _, id := range m.ids {
		if m.turrets[id].CanAttackTarget() {
			return true
		}
	}
	return false
}
