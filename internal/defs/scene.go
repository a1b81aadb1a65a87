// internal/defs/scene.go
package defs

import (
	"go-turret-defense/internal/geom"
	"image/color"
)

// PlayerDefinition describes the player spawn.
type PlayerDefinition struct {
	Position      geom.Vec3  `json:"position"`
	Radius        float32    `json:"radius"`
	HeadOffset    *geom.Vec3 `json:"head_offset,omitempty"` // nil: aim at the collider centre
	Speed         float32    `json:"speed"`
	Health        float64    `json:"health"`
	MaxHealth     float64    `json:"max_health"`
	CanRegenerate bool       `json:"can_regenerate"`
	RegenInterval float64    `json:"regen_interval"`
}

// TurretPlacement puts a turret definition into the scene.
type TurretPlacement struct {
	DefID    string    `json:"def_id"`
	Position geom.Vec3 `json:"position"`
	Yaw      float32   `json:"yaw"` // degrees around the up axis
}

// ObstacleDefinition is an axis-aligned box the player can hide behind.
type ObstacleDefinition struct {
	Name        string     `json:"name"`
	Position    geom.Vec3  `json:"position"`
	HalfExtents geom.Vec3  `json:"half_extents"`
	Color       color.RGBA `json:"color"`
	NoMaterial  bool       `json:"no_material,omitempty"`
}

// SceneDefinition is the whole level layout.
type SceneDefinition struct {
	Player    PlayerDefinition     `json:"player"`
	Turrets   []TurretPlacement    `json:"turrets"`
	Obstacles []ObstacleDefinition `json:"obstacles"`
}
