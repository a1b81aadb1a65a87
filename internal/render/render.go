// internal/render/render.go
package render

import (
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/entity"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/render/projection"
	"go-turret-defense/internal/system"
	"go-turret-defense/internal/types"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// RenderSystem рисует сцену сверху: X вправо, Z вверх по экрану.
type RenderSystem struct {
	ecs         *entity.ECS
	projectiles *system.ProjectileSystem
}

func NewRenderSystem(ecs *entity.ECS, projectiles *system.ProjectileSystem) *RenderSystem {
	return &RenderSystem{ecs: ecs, projectiles: projectiles}
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawGrid(screen)

	// Сначала препятствия, чтобы всё остальное было поверх
	for _, id := range Obstacles(s.ecs) {
		collider := s.ecs.Colliders[id]
		tr, ok := s.ecs.Transforms[id]
		if !ok || collider.Shape != component.ShapeBox {
			continue
		}
		c := color.RGBA{128, 128, 128, 255}
		if material, ok := s.ecs.Materials[id]; ok {
			c = material.Color
		}
		x, y := projection.WorldToScreen(tr.Position.Add(geom.Vec3{X: -collider.HalfExtents.X, Z: collider.HalfExtents.Z}))
		w := 2 * collider.HalfExtents.X * config.WorldScale
		h := 2 * collider.HalfExtents.Z * config.WorldScale
		vector.DrawFilledRect(screen, x, y, w, h, c, true)
		vector.StrokeRect(screen, x, y, w, h, 2, Darken(c, 0.5), true)
	}

	for _, id := range s.ecs.TurretIDs() {
		tr, ok := s.ecs.Transforms[id]
		if !ok {
			continue
		}
		s.drawTurret(screen, s.ecs.Turrets[id], tr)
	}

	for id := range s.ecs.Players {
		tr, ok := s.ecs.Transforms[id]
		if !ok {
			continue
		}
		radius := float32(0.5)
		if collider, ok := s.ecs.Colliders[id]; ok && collider.Shape == component.ShapeSphere {
			radius = collider.Radius
		}
		x, y := projection.WorldToScreen(tr.Position)
		vector.DrawFilledCircle(screen, x, y, radius*config.WorldScale, config.PlayerColor, true)
		fx, fy := projection.WorldToScreen(tr.Position.AddScaled(tr.Forward(), radius*1.5))
		vector.StrokeLine(screen, x, y, fx, fy, 2, config.TextLightColor, true)
	}

	for _, p := range s.projectiles.Flying() {
		x, y := projection.WorldToScreen(p.Position)
		tx, ty := projection.WorldToScreen(p.Position.AddScaled(p.Direction, -0.6))
		vector.StrokeLine(screen, tx, ty, x, y, 2, p.Color, true)
		vector.DrawFilledCircle(screen, x, y, p.Radius*config.WorldScale, p.Color, true)
	}
}

func (s *RenderSystem) drawGrid(screen *ebiten.Image) {
	const step = 2
	for i := float32(-40); i <= 40; i += step {
		x0, y0 := projection.WorldToScreen(geom.Vec3{X: i, Z: -40})
		x1, y1 := projection.WorldToScreen(geom.Vec3{X: i, Z: 40})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridColor, false)
		x0, y0 = projection.WorldToScreen(geom.Vec3{X: -40, Z: i})
		x1, y1 = projection.WorldToScreen(geom.Vec3{X: 40, Z: i})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridColor, false)
	}
}

func (s *RenderSystem) drawTurret(screen *ebiten.Image, t *component.Turret, tr *component.Transform) {
	x, y := projection.WorldToScreen(tr.Position)
	if t.Stats.Debug {
		s.drawGizmos(screen, t, tr)
	}

	vector.DrawFilledCircle(screen, x, y, 0.6*config.WorldScale, config.TurretBaseColor, true)
	vector.StrokeCircle(screen, x, y, 0.6*config.WorldScale, 2, Darken(config.TurretBaseColor, 0.5), true)
	// ствол: проекция направления дула на плоскость
	gx, gy := projection.WorldToScreen(system.GunPosition(t, tr))
	mx, my := projection.WorldToScreen(system.GunPosition(t, tr).AddScaled(t.GunRotation.Forward(), 1.2))
	vector.StrokeLine(screen, gx, gy, mx, my, 4, config.TurretGunColor, true)

	if t.Stats.Debug {
		label := t.State.String()
		bounds := text.BoundString(basicfont.Face7x13, label)
		lx, ly := projection.LabelOrigin(tr.Position, bounds.Dx())
		text.Draw(screen, label, basicfont.Face7x13, lx, ly, config.TextLightColor)
	}
}

// drawGizmos: радиус, дуга наведения, безопасная зона и луч к цели.
func (s *RenderSystem) drawGizmos(screen *ebiten.Image, t *component.Turret, tr *component.Transform) {
	x, y := projection.WorldToScreen(tr.Position)
	vector.StrokeCircle(screen, x, y, t.Stats.Range*config.WorldScale, 1, config.RangeColor, true)

	forward := tr.Forward()
	half := t.Stats.TargetArc / 2
	for i := -half; i < half; i++ {
		dir := geom.Euler(0, i, t.Stats.ArcTiltAngle).Rotate(forward)
		ex, ey := projection.WorldToScreen(tr.Position.AddScaled(dir, t.Stats.Range))
		vector.StrokeLine(screen, x, y, ex, ey, 1, config.ArcColor, false)
	}
	for i := -half; i <= half; i++ {
		dir := geom.Euler(0, i, t.Stats.ArcTiltAngle).Rotate(forward)
		ex, ey := projection.WorldToScreen(tr.Position.AddScaled(dir, t.Stats.SafeZoneRange))
		vector.StrokeLine(screen, x, y, ex, ey, 1, config.SafeZoneColor, false)
	}

	if ray := t.DebugRay; ray != nil {
		fx, fy := projection.WorldToScreen(ray.From)
		tx, ty := projection.WorldToScreen(ray.To)
		vector.StrokeLine(screen, fx, fy, tx, ty, 1.5, ray.Color, true)
	}
}

// Obstacles: сущности на слое препятствий, по возрастанию ID.
func Obstacles(ecs *entity.ECS) []types.EntityID {
	var result []types.EntityID
	for _, id := range ecs.ColliderIDs() {
		if ecs.Colliders[id].Layer == types.LayerObstacle {
			result = append(result, id)
		}
	}
	return result
}
