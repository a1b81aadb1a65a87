// internal/defs/projectiles.go
package defs

import "image/color"

// ProjectileDefinition is the prototype the projectile pool manufactures copies of.
type ProjectileDefinition struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Visuals Visuals `json:"visuals"`
}

// DefaultProjectile is used when no definitions file is available.
var DefaultProjectile = &ProjectileDefinition{
	ID:   "LASER_RED",
	Name: "Red laser",
	Visuals: Visuals{
		Color:  color.RGBA{255, 60, 60, 255},
		Radius: 0.15,
	},
}
