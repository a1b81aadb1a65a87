// internal/app/game.go
package app

import (
	"fmt"
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/defs"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/physics"
	"go-turret-defense/internal/pool"
	"go-turret-defense/internal/schedule"
	"go-turret-defense/internal/system"
	"go-turret-defense/internal/tween"
	"go-turret-defense/internal/types"
	"go-turret-defense/internal/utils"

	"go.uber.org/zap"
)

// Game holds the simulation: ECS, systems and the scene they run on.
// Rendering and input live in the state package.
type Game struct {
	ECS              *entity.ECS
	EventDispatcher  *event.Dispatcher
	World            *physics.World
	Tweener          *tween.Tweener
	Scheduler        *schedule.Queue
	Pool             *pool.ProjectilePool
	Catalog          *defs.ProjectileCatalog
	MovementSystem   *system.MovementSystem
	TurretSystem     *system.TurretSystem
	ProjectileSystem *system.ProjectileSystem
	HealthSystem     *system.HealthSystem
	TurretsManager   *system.TurretsManager
	Rng              *utils.PRNGService
	PlayerID         types.EntityID

	logger   *zap.Logger
	debug    bool
	gameTime float64
}

// prototypeSink меняет прототип пула и сообщает об этом HUD.
type prototypeSink struct {
	pool            *pool.ProjectilePool
	eventDispatcher *event.Dispatcher
}

func (s prototypeSink) SetPrototype(def *defs.ProjectileDefinition) {
	if def == nil {
		return
	}
	s.pool.SetPrototype(def)
	s.eventDispatcher.Dispatch(event.Event{Type: event.PrototypeChanged, Data: def.Name})
}

// NewGame initializes a new game instance. feedback may be nil when audio is off.
func NewGame(settings config.Settings, feedback system.AudioFeedback, logger *zap.Logger) *Game {
	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	world := physics.NewWorld(ecs)
	projectilePool := pool.NewProjectilePool(nil, logger.Named("pool"))
	rng := utils.NewPRNGService(settings.Seed)

	g := &Game{
		ECS:             ecs,
		EventDispatcher: eventDispatcher,
		World:           world,
		Tweener:         tween.NewTweener(),
		Scheduler:       schedule.NewQueue(),
		Pool:            projectilePool,
		MovementSystem:  system.NewMovementSystem(ecs),
		TurretsManager:  system.NewTurretsManager(eventDispatcher),
		Rng:             rng,
		logger:          logger,
		debug:           settings.Debug,
	}
	g.ProjectileSystem = system.NewProjectileSystem(ecs, world, projectilePool, eventDispatcher, logger.Named("projectile"))
	g.TurretSystem = system.NewTurretSystem(ecs, world, g.Tweener, g.Scheduler, g.ProjectileSystem, eventDispatcher, rng, logger.Named("turret"), settings.TraceLimiter)
	g.HealthSystem = system.NewHealthSystem(ecs, g.Scheduler, g.TurretsManager, eventDispatcher, feedback, logger.Named("health"))

	g.Catalog = defs.NewProjectileCatalog(defs.ProjectileLibrary, prototypeSink{pool: projectilePool, eventDispatcher: eventDispatcher})
	g.Catalog.Select(0)
	return g
}

// LoadScene spawns the player, obstacles and turrets described by scene.
// A turret with an unknown definition fails the whole load.
func (g *Game) LoadScene(scene *defs.SceneDefinition) error {
	g.PlayerID = g.createPlayerEntity(scene.Player)
	for _, obstacle := range scene.Obstacles {
		g.createObstacleEntity(obstacle)
	}
	for i, placement := range scene.Turrets {
		if _, err := g.PlaceTurret(placement); err != nil {
			return fmt.Errorf("scene turret %d: %w", i, err)
		}
	}
	g.logger.Info("scene loaded",
		zap.Int("turrets", g.TurretsManager.Len()),
		zap.Int("obstacles", len(scene.Obstacles)))
	return nil
}

// Update advances one frame. Turrets read the player position after it
// moved; projectiles fly after the tweens settled the guns.
func (g *Game) Update(deltaTime float64) {
	g.gameTime += deltaTime
	g.ECS.GameTime = g.gameTime

	g.MovementSystem.Update(deltaTime)
	g.TurretSystem.Update(deltaTime)
	g.Tweener.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.Scheduler.Update(deltaTime)
	g.HealthSystem.Update(deltaTime)
}

func (g *Game) GetGameTime() float64 {
	return g.gameTime
}

// SetPlayerInput задаёт желаемое направление движения игрока в плоскости XZ.
func (g *Game) SetPlayerInput(direction geom.Vec3) {
	if player, ok := g.ECS.Players[g.PlayerID]; ok {
		player.Input = direction
	}
}

// PlayerHealth возвращает здоровье игрока или nil, если игрока нет.
func (g *Game) PlayerHealth() *component.Health {
	return g.ECS.Healths[g.PlayerID]
}

// ToggleDebug переключает отладку на всех турелях.
func (g *Game) ToggleDebug() bool {
	g.debug = g.TurretSystem.ToggleDebug()
	g.logger.Info("turret debug toggled", zap.Bool("debug", g.debug))
	return g.debug
}

// NextProjectile и PreviousProjectile листают каталог снарядов.
func (g *Game) NextProjectile() bool { return g.Catalog.Next() }

func (g *Game) PreviousProjectile() bool { return g.Catalog.Previous() }

// ClearProjectiles возвращает все летящие снаряды в пул.
func (g *Game) ClearProjectiles() {
	g.ProjectileSystem.Clear()
}

func (g *Game) createPlayerEntity(def defs.PlayerDefinition) types.EntityID {
	id := g.ECS.NewEntity()
	radius := def.Radius
	if radius <= 0 {
		radius = 0.5
	}
	g.ECS.Transforms[id] = &component.Transform{Position: def.Position, Rotation: geom.Identity}
	g.ECS.Colliders[id] = &component.Collider{
		Shape:  component.ShapeSphere,
		Radius: radius,
		Layer:  types.LayerPlayer,
		Tag:    types.TagPlayer,
	}
	if def.HeadOffset != nil {
		g.ECS.HeadAnchors[id] = &component.HeadAnchor{Offset: *def.HeadOffset}
	}
	g.ECS.Players[id] = &component.Player{Speed: def.Speed}

	maxHealth := def.MaxHealth
	if maxHealth <= 0 {
		maxHealth = def.Health
	}
	g.ECS.Healths[id] = &component.Health{
		Value:         def.Health,
		Max:           maxHealth,
		CanRegenerate: def.CanRegenerate,
		RegenInterval: def.RegenInterval,
	}
	g.HealthSystem.Attach(id)
	return id
}

func (g *Game) createObstacleEntity(def defs.ObstacleDefinition) types.EntityID {
	id := g.ECS.NewEntity()
	g.ECS.Transforms[id] = &component.Transform{Position: def.Position, Rotation: geom.Identity}
	g.ECS.Colliders[id] = &component.Collider{
		Shape:       component.ShapeBox,
		HalfExtents: def.HalfExtents,
		Layer:       types.LayerObstacle,
	}
	if !def.NoMaterial {
		g.ECS.Materials[id] = &component.Material{Color: def.Color}
	}
	return id
}
