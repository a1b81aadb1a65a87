// internal/defs/loader.go
package defs

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TurretLibrary is a map to hold all turret definitions, keyed by their ID.
var TurretLibrary map[string]TurretDefinition

// ProjectileLibrary holds projectile prototypes in file order; the order is the
// cycling order used by the projectile catalog.
var ProjectileLibrary []*ProjectileDefinition

func readJSON(path string, v interface{}) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(file, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// LoadTurretDefinitions reads the turret configuration file and populates the TurretLibrary.
func LoadTurretDefinitions(path string) error {
	var turretDefs []TurretDefinition
	if err := readJSON(path, &turretDefs); err != nil {
		return err
	}

	library := make(map[string]TurretDefinition, len(turretDefs))
	for _, def := range turretDefs {
		if def.ID == "" {
			return fmt.Errorf("turret definition without id in %s", path)
		}
		if _, err := def.Stats(); err != nil {
			return fmt.Errorf("turret %s: %w", def.ID, err)
		}
		library[def.ID] = def
	}
	TurretLibrary = library
	return nil
}

// LoadProjectileDefinitions reads the projectile prototypes and populates the ProjectileLibrary.
func LoadProjectileDefinitions(path string) error {
	var projectileDefs []*ProjectileDefinition
	if err := readJSON(path, &projectileDefs); err != nil {
		return err
	}
	if len(projectileDefs) == 0 {
		return fmt.Errorf("no projectile definitions in %s", path)
	}
	for i, def := range projectileDefs {
		if def == nil {
			return fmt.Errorf("projectile definition %d is null in %s", i, path)
		}
	}
	ProjectileLibrary = projectileDefs
	return nil
}

// LoadScene reads a level layout.
func LoadScene(path string) (*SceneDefinition, error) {
	var scene SceneDefinition
	if err := readJSON(path, &scene); err != nil {
		return nil, err
	}
	for i, placement := range scene.Turrets {
		if _, ok := TurretLibrary[placement.DefID]; !ok {
			return nil, fmt.Errorf("scene turret %d: unknown definition %q", i, placement.DefID)
		}
	}
	return &scene, nil
}
