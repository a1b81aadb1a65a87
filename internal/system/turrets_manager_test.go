package system

import (
	"testing"

	"go-turret-defense/internal/component"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/types"
)

func TestTurretsManager_RegistrationOrderAndRemoval(t *testing.T) {
	dispatcher := event.NewDispatcher()
	m := NewTurretsManager(dispatcher)
	a, b, c := &component.Turret{}, &component.Turret{}, &component.Turret{}
	m.Register(3, a)
	m.Register(1, b)
	m.Register(2, c)
	m.Register(3, a)
	m.Register(4, nil)

	got := m.Turrets()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected order %v", got)
	}

	dispatcher.Dispatch(event.Event{Type: event.TurretRemoved, Data: types.EntityID(1)})
	got = m.Turrets()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("turret 1 not deregistered: %v", got)
	}
	m.Deregister(42)
	if m.Len() != 2 {
		t.Errorf("unknown id changed the registry")
	}
}

func TestTurretsManager_AnyEngaging(t *testing.T) {
	m := NewTurretsManager(nil)
	idle, busy := &component.Turret{}, &component.Turret{}
	m.Register(1, idle)
	m.Register(2, busy)
	if m.AnyEngaging() {
		t.Fatalf("no turret has a target yet")
	}
	busy.HasTarget = true
	if !m.AnyEngaging() {
		t.Errorf("turret 2 has a target")
	}
	m.Deregister(2)
	if m.AnyEngaging() {
		t.Errorf("deregistered turret still counted")
	}
}
