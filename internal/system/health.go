// internal/system/health.go
package system

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/schedule"
	"go-turret-defense/internal/types"
	mathutil "go-turret-defense/pkg/utils"
	"sort"

	"go.uber.org/zap"
)

// AudioFeedback: звуковая обратная связь здоровья.
type AudioFeedback interface {
	PlayOuch()
	PlayHeartbeat(volume float64)
}

// EngagementSource сообщает, стреляет ли кто-то по игроку прямо сейчас.
type EngagementSource interface {
	AnyEngaging() bool
}

// HealthController: здоровье конкретной сущности. Реализует component.Damageable.
type HealthController struct {
	id     types.EntityID
	health *component.Health
	system *HealthSystem
}

// TakeDamage уменьшает здоровье (не ниже нуля), играет "ouch" и рассылает DamageReceived.
func (c *HealthController) TakeDamage(damage int) {
	h := c.health
	h.Value -= float64(damage)
	if h.Value < 0 {
		h.Value = 0
	}
	if c.system.audio != nil {
		c.system.audio.PlayOuch()
	}
	c.system.logger.Debug("damage taken",
		zap.Uint32("entity", uint32(c.id)),
		zap.Int("damage", damage),
		zap.Float64("health", h.Value))
	c.system.eventDispatcher.Dispatch(event.Event{
		Type: event.DamageReceived,
		Data: event.HealthData{Entity: c.id, Amount: float64(damage), Health: h.Value, Max: h.Max},
	})
}

func (c *HealthController) Health() *component.Health { return c.health }

// HealthSystem ведёт регенерацию: пока ни одна турель не угрожает,
// раз в RegenInterval добавляется config.RegenFraction от максимума.
type HealthSystem struct {
	ecs             *entity.ECS
	scheduler       *schedule.Queue
	engagement      EngagementSource
	eventDispatcher *event.Dispatcher
	audio           AudioFeedback
	logger          *zap.Logger
	controllers     map[types.EntityID]*HealthController
}

func NewHealthSystem(ecs *entity.ECS, scheduler *schedule.Queue, engagement EngagementSource, eventDispatcher *event.Dispatcher, audio AudioFeedback, logger *zap.Logger) *HealthSystem {
	return &HealthSystem{
		ecs:             ecs,
		scheduler:       scheduler,
		engagement:      engagement,
		eventDispatcher: eventDispatcher,
		audio:           audio,
		logger:          logger,
		controllers:     make(map[types.EntityID]*HealthController),
	}
}

// Attach создаёт контроллер для сущности с компонентом Health и регистрирует
// его как Damageable. Без компонента возвращает nil.
func (s *HealthSystem) Attach(id types.EntityID) *HealthController {
	h, ok := s.ecs.Healths[id]
	if !ok {
		return nil
	}
	if h.RegenInterval <= 0 {
		h.RegenInterval = config.DefaultRegenInterval
	}
	c := &HealthController{id: id, health: h, system: s}
	s.controllers[id] = c
	s.ecs.Damageables[id] = c
	return c
}

func (s *HealthSystem) Controller(id types.EntityID) *HealthController {
	return s.controllers[id]
}

func (s *HealthSystem) Update(deltaTime float64) {
	ids := make([]types.EntityID, 0, len(s.controllers))
	for id := range s.controllers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		c := s.controllers[id]
		if _, alive := s.ecs.Healths[id]; !alive {
			delete(s.controllers, id)
			continue
		}
		h := c.health
		if !h.CanRegenerate || h.IsRegenerating || h.Value >= h.Max {
			continue
		}
		if s.engagement.AnyEngaging() {
			continue
		}
		h.IsRegenerating = true
		s.regenStep(c)
	}
}

// regenStep делает одну итерацию цикла регенерации: проверка, ожидание, прибавка.
func (s *HealthSystem) regenStep(c *HealthController) {
	h := c.health
	if h.Value >= h.Max || s.controllers[c.id] != c {
		h.IsRegenerating = false
		return
	}
	if s.engagement.AnyEngaging() {
		h.IsRegenerating = false
		return
	}
	s.scheduler.After(h.RegenInterval, func() {
		if s.controllers[c.id] != c {
			h.IsRegenerating = false
			return
		}
		h.Value = mathutil.Clamp(h.Value+h.Max*config.RegenFraction, 0, h.Max)
		s.eventDispatcher.Dispatch(event.Event{
			Type: event.Regeneration,
			Data: event.HealthData{Entity: c.id, Amount: h.Max * config.RegenFraction, Health: h.Value, Max: h.Max},
		})
		if s.audio != nil {
			s.audio.PlayHeartbeat(HeartbeatVolume(h.Value, h.Max))
		}
		s.regenStep(c)
	})
}

// HeartbeatVolume: чем меньше здоровья, тем громче сердце.
func HeartbeatVolume(health, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return mathutil.Clamp(1-health/max+config.HeartbeatVolumeBias, 0, 1)
}

// Detach убирает контроллер; запланированный шаг регенерации станет пустым.
func (s *HealthSystem) Detach(id types.EntityID) {
	delete(s.controllers, id)
	delete(s.ecs.Damageables, id)
}
