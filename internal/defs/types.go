// internal/defs/types.go
package defs

import (
	"fmt"
	"go-turret-defense/internal/types"
	"image/color"
)

// Visuals contains parameters for rendering an entity in the debug view.
type Visuals struct {
	Color  color.RGBA `json:"color"`
	Radius float32    `json:"radius"`
}

var layerNames = map[string]types.Layer{
	"Default":    types.LayerDefault,
	"Player":     types.LayerPlayer,
	"Obstacle":   types.LayerObstacle,
	"Projectile": types.LayerProjectile,
}

// ParseLayerMask builds a mask from layer names. An empty list yields fallback.
func ParseLayerMask(names []string, fallback types.LayerMask) (types.LayerMask, error) {
	if len(names) == 0 {
		return fallback, nil
	}
	var mask types.LayerMask
	for _, name := range names {
		layer, ok := layerNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", name)
		}
		mask |= layer.Mask()
	}
	return mask, nil
}
