// internal/pool/projectile_pool.go
package pool

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/defs"

	"go.uber.org/zap"
)

// Stats: счётчики пула для HUD и тестов.
type Stats struct {
	Allocated int // всего создано экземпляров
	Acquired  int
	Released  int
	Discarded int // выброшено при смене прототипа или возвращено устаревшим
}

// discardedGeneration помечает выброшенные экземпляры. Поколения пула начинаются с 1.
const discardedGeneration uint32 = 0

// ProjectilePool: FIFO-пул снарядов одного прототипа. Живёт в игровом цикле,
// без блокировок: смена прототипа выполняется между обновлениями систем.
type ProjectilePool struct {
	prototype  *defs.ProjectileDefinition
	generation uint32
	inactive   []*component.Projectile
	stats      Stats
	logger     *zap.Logger
}

// NewProjectilePool создаёт пустой пул. Предзаполнение делает SetPrototype.
func NewProjectilePool(prototype *defs.ProjectileDefinition, logger *zap.Logger) *ProjectilePool {
	if prototype == nil {
		prototype = defs.DefaultProjectile
	}
	return &ProjectilePool{
		prototype:  prototype,
		generation: 1,
		logger:     logger,
	}
}

func (p *ProjectilePool) create() *component.Projectile {
	p.stats.Allocated++
	return &component.Projectile{
		PrototypeID: p.prototype.ID,
		Color:       p.prototype.Visuals.Color,
		Radius:      p.prototype.Visuals.Radius,
		Generation:  p.generation,
	}
}

// Acquire выдаёт неактивный снаряд. Если пул пуст, создаётся ровно один новый.
func (p *ProjectilePool) Acquire() *component.Projectile {
	if len(p.inactive) == 0 {
		proj := p.create()
		proj.InPool = true
		p.inactive = append(p.inactive, proj)
	}
	proj := p.inactive[0]
	p.inactive[0] = nil
	p.inactive = p.inactive[1:]

	proj.InPool = false
	proj.Lease++
	proj.Active = true
	p.stats.Acquired++
	return proj
}

// Release деактивирует снаряд и кладёт его в конец очереди.
// nil, уже лежащий в пуле и уже выброшенный экземпляры игнорируются.
// Экземпляр старого прототипа деактивируется и выбрасывается один раз.
func (p *ProjectilePool) Release(proj *component.Projectile) {
	if proj == nil || proj.InPool || proj.Generation == discardedGeneration {
		return
	}
	proj.Active = false
	if proj.Generation != p.generation {
		proj.Generation = discardedGeneration
		p.stats.Discarded++
		return
	}
	proj.InPool = true
	p.inactive = append(p.inactive, proj)
	p.stats.Released++
}

// SetPrototype меняет шаблон: все неактивные экземпляры выбрасываются,
// создаётся config.PoolPrewarmCount новых.
func (p *ProjectilePool) SetPrototype(def *defs.ProjectileDefinition) {
	if def == nil {
		return
	}
	for i, proj := range p.inactive {
		proj.InPool = false
		proj.Generation = discardedGeneration
		p.inactive[i] = nil
	}
	p.stats.Discarded += len(p.inactive)
	p.inactive = p.inactive[:0]

	p.prototype = def
	p.generation++
	for i := 0; i < config.PoolPrewarmCount; i++ {
		proj := p.create()
		proj.InPool = true
		p.inactive = append(p.inactive, proj)
	}
	if p.logger != nil {
		p.logger.Debug("projectile prototype changed",
			zap.String("prototype", def.ID),
			zap.Uint32("generation", p.generation),
			zap.Int("prewarmed", config.PoolPrewarmCount))
	}
}

func (p *ProjectilePool) Prototype() *defs.ProjectileDefinition { return p.prototype }

// Inactive: число экземпляров, ожидающих выдачи.
func (p *ProjectilePool) Inactive() int { return len(p.inactive) }

// Allocated: сколько экземпляров создано за всё время.
func (p *ProjectilePool) Allocated() int { return p.stats.Allocated }

func (p *ProjectilePool) Stats() Stats { return p.stats }
