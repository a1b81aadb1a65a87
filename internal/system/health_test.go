package system

import (
	"math"
	"testing"

	"go-turret-defense/internal/component"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/schedule"
	"go-turret-defense/internal/types"

	"go.uber.org/zap"
)

type fakeEngagement struct{ engaging bool }

func (f *fakeEngagement) AnyEngaging() bool { return f.engaging }

type fakeAudio struct {
	ouches     int
	heartbeats []float64
}

func (a *fakeAudio) PlayOuch() { a.ouches++ }

func (a *fakeAudio) PlayHeartbeat(volume float64) { a.heartbeats = append(a.heartbeats, volume) }

type healthFixture struct {
	ecs        *entity.ECS
	scheduler  *schedule.Queue
	engagement *fakeEngagement
	audio      *fakeAudio
	dispatcher *event.Dispatcher
	system     *HealthSystem
	id         types.EntityID
	health     *component.Health
}

func newHealthFixture(value float64) *healthFixture {
	f := &healthFixture{
		ecs:        entity.NewECS(),
		scheduler:  schedule.NewQueue(),
		engagement: &fakeEngagement{},
		audio:      &fakeAudio{},
		dispatcher: event.NewDispatcher(),
	}
	f.system = NewHealthSystem(f.ecs, f.scheduler, f.engagement, f.dispatcher, f.audio, zap.NewNop())
	f.id = f.ecs.NewEntity()
	f.health = &component.Health{Value: value, Max: 100, CanRegenerate: true, RegenInterval: 1}
	f.ecs.Healths[f.id] = f.health
	f.system.Attach(f.id)
	return f
}

func (f *healthFixture) tick(dt float64) {
	f.system.Update(dt)
	f.scheduler.Update(dt)
}

func TestHealth_TakeDamageClampsAndNotifies(t *testing.T) {
	f := newHealthFixture(15)
	var received []event.HealthData
	f.dispatcher.SubscribeFunc(event.DamageReceived, func(e event.Event) {
		received = append(received, e.Data.(event.HealthData))
	})

	damageable, ok := f.ecs.Damageables[f.id]
	if !ok {
		t.Fatalf("controller not registered as damageable")
	}
	damageable.TakeDamage(10)
	damageable.TakeDamage(10)

	if f.health.Value != 0 {
		t.Errorf("health = %v, want 0", f.health.Value)
	}
	if f.audio.ouches != 2 {
		t.Errorf("ouches = %d, want 2", f.audio.ouches)
	}
	if len(received) != 2 || received[1].Amount != 10 || received[1].Health != 0 {
		t.Errorf("unexpected events %+v", received)
	}
}

func TestHealth_RegeneratesToMax(t *testing.T) {
	f := newHealthFixture(50)
	var regen []float64
	f.dispatcher.SubscribeFunc(event.Regeneration, func(e event.Event) {
		regen = append(regen, e.Data.(event.HealthData).Health)
	})

	f.tick(1)
	if !f.health.IsRegenerating {
		t.Fatalf("regeneration should have started")
	}
	if math.Abs(f.health.Value-60) > 1e-9 {
		t.Fatalf("health = %v after one interval, want 60", f.health.Value)
	}
	for i := 0; i < 10; i++ {
		f.tick(1)
	}
	if f.health.Value != 100 || f.health.IsRegenerating {
		t.Errorf("health=%v regenerating=%v, want full and idle", f.health.Value, f.health.IsRegenerating)
	}
	if len(regen) != 5 {
		t.Errorf("regeneration steps = %d, want 5", len(regen))
	}
	if math.Abs(f.audio.heartbeats[0]-0.5) > 1e-9 {
		t.Errorf("first heartbeat volume = %v, want 0.5", f.audio.heartbeats[0])
	}
}

func TestHealth_RegenerationStopsUnderFire(t *testing.T) {
	f := newHealthFixture(50)
	f.tick(1)
	f.engagement.engaging = true
	f.tick(1)
	if math.Abs(f.health.Value-70) > 1e-9 {
		t.Fatalf("health = %v, want 70", f.health.Value)
	}
	if f.health.IsRegenerating {
		t.Fatalf("regeneration should stop while a turret is engaging")
	}

	for i := 0; i < 5; i++ {
		f.tick(1)
	}
	if math.Abs(f.health.Value-70) > 1e-9 {
		t.Errorf("health regenerated under fire: %v", f.health.Value)
	}

	f.engagement.engaging = false
	f.tick(1)
	if math.Abs(f.health.Value-80) > 1e-9 {
		t.Errorf("health = %v after fire stopped, want 80", f.health.Value)
	}
}

func TestHealth_NoRegenerationWhenDisabled(t *testing.T) {
	f := newHealthFixture(50)
	f.health.CanRegenerate = false
	for i := 0; i < 3; i++ {
		f.tick(1)
	}
	if f.health.Value != 50 || f.scheduler.Len() != 0 {
		t.Errorf("health=%v pending=%d, want untouched", f.health.Value, f.scheduler.Len())
	}
}

func TestHealth_DetachCancelsRegeneration(t *testing.T) {
	f := newHealthFixture(50)
	f.tick(0)
	f.system.Detach(f.id)
	f.scheduler.Update(1)
	if f.health.Value != 50 {
		t.Errorf("detached controller kept regenerating: %v", f.health.Value)
	}
	if _, ok := f.ecs.Damageables[f.id]; ok {
		t.Errorf("detached entity still damageable")
	}
}

func TestHeartbeatVolume(t *testing.T) {
	tests := []struct {
		health, max, want float64
	}{
		{100, 100, 0.1},
		{0, 100, 1},
		{50, 100, 0.6},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := HeartbeatVolume(tt.health, tt.max); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HeartbeatVolume(%v, %v) = %v, want %v", tt.health, tt.max, got, tt.want)
		}
	}
}
