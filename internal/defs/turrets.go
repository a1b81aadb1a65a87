// internal/defs/turrets.go
package defs

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
)

// TurretDefinition holds all the static data for a specific type of turret.
// Angles are in degrees, distances in world units, times in seconds.
type TurretDefinition struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Range              float32   `json:"range"`
	FiringAngle        float32   `json:"firing_angle"`
	TargetArc          float32   `json:"target_arc"`
	SafeZoneRange      float32   `json:"safe_zone_range"`
	GunElevationOffset float32   `json:"gun_elevation_offset"`
	AttackCooldown     float32   `json:"attack_cooldown"`
	ProjectileSpeed    float32   `json:"projectile_speed"`
	Damage             int       `json:"damage"`
	SpreadBullets      bool      `json:"spread_bullets"`
	BulletSpread       geom.Vec3 `json:"bullet_spread"`
	GunOffset          geom.Vec3 `json:"gun_offset"`
	MuzzleOffset       geom.Vec3 `json:"muzzle_offset"`
	ArcTiltAngle       float32   `json:"arc_tilt_angle"`
	TargetLayers       []string  `json:"target_layers,omitempty"`
	ObstacleLayers     []string  `json:"obstacle_layers,omitempty"`
	Debug              bool      `json:"debug"`
	Visuals            Visuals   `json:"visuals"`
}

// Stats converts the definition into the runtime component parameters.
func (d *TurretDefinition) Stats() (component.TurretStats, error) {
	targetMask, err := ParseLayerMask(d.TargetLayers, types.LayerPlayer.Mask())
	if err != nil {
		return component.TurretStats{}, err
	}
	obstacleMask, err := ParseLayerMask(d.ObstacleLayers, types.LayerObstacle.Mask())
	if err != nil {
		return component.TurretStats{}, err
	}
	return component.TurretStats{
		Range:              d.Range,
		FiringAngle:        d.FiringAngle,
		TargetArc:          d.TargetArc,
		SafeZoneRange:      d.SafeZoneRange,
		GunElevationOffset: d.GunElevationOffset,
		AttackCooldown:     d.AttackCooldown,
		ProjectileSpeed:    d.ProjectileSpeed,
		Damage:             d.Damage,
		SpreadBullets:      d.SpreadBullets,
		BulletSpread:       d.BulletSpread,
		GunOffset:          d.GunOffset,
		MuzzleOffset:       d.MuzzleOffset,
		ArcTiltAngle:       d.ArcTiltAngle,
		TargetMask:         targetMask,
		ObstacleMask:       obstacleMask,
		Debug:              d.Debug,
	}, nil
}
