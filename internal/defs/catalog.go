// internal/defs/catalog.go
package defs

// PrototypeSink receives the selected projectile prototype.
type PrototypeSink interface {
	SetPrototype(def *ProjectileDefinition)
}

// ProjectileCatalog cycles through projectile prototypes for live tuning and
// pushes the selection into the pool.
type ProjectileCatalog struct {
	prototypes []*ProjectileDefinition
	index      int
	sink       PrototypeSink
}

// NewProjectileCatalog skips nil entries and falls back to DefaultProjectile
// when nothing usable is left.
func NewProjectileCatalog(prototypes []*ProjectileDefinition, sink PrototypeSink) *ProjectileCatalog {
	usable := make([]*ProjectileDefinition, 0, len(prototypes))
	for _, def := range prototypes {
		if def != nil {
			usable = append(usable, def)
		}
	}
	if len(usable) == 0 {
		usable = append(usable, DefaultProjectile)
	}
	return &ProjectileCatalog{prototypes: usable, sink: sink}
}

// Select makes prototype i current. Out-of-range indexes keep the current
// prototype, which is pushed to the pool again either way.
func (c *ProjectileCatalog) Select(i int) *ProjectileDefinition {
	if i >= 0 && i < len(c.prototypes) {
		c.index = i
	}
	current := c.prototypes[c.index]
	c.sink.SetPrototype(current)
	return current
}

// Next selects the following prototype. Returns false at the end of the list.
func (c *ProjectileCatalog) Next() bool {
	if c.index+1 >= len(c.prototypes) {
		return false
	}
	c.Select(c.index + 1)
	return true
}

// Previous selects the preceding prototype. Returns false at the start of the list.
func (c *ProjectileCatalog) Previous() bool {
	if c.index-1 < 0 {
		return false
	}
	c.Select(c.index - 1)
	return true
}

func (c *ProjectileCatalog) Index() int { return c.index }

func (c *ProjectileCatalog) Current() *ProjectileDefinition { return c.prototypes[c.index] }

func (c *ProjectileCatalog) Len() int { return len(c.prototypes) }
