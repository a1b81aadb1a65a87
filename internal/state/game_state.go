// internal/state/game_state.go
package state

import (
	"fmt"
	game "go-turret-defense/internal/app"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/defs"
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/render"
	"go-turret-defense/internal/render/projection"
	"go-turret-defense/internal/ui"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// радиус клика по турели в мировых единицах
const pickRadius = 1.0

// GameState отвечает за ввод, отрисовка сцены и HUD поверх симуляции.
type GameState struct {
	sm          *StateMachine
	game        *game.Game
	renderer    *render.RenderSystem
	healthBar   *ui.HealthBar
	turretPanel *ui.TurretPanel
	fontFace    font.Face

	turretDefs []string // ID определений по алфавиту, выбор клавишами 1-9
	placeDef   int
}

func NewGameState(sm *StateMachine, gameLogic *game.Game, face font.Face) *GameState {
	health, maxHealth := 0.0, 0.0
	if h := gameLogic.PlayerHealth(); h != nil {
		health, maxHealth = h.Value, h.Max
	}

	turretDefs := make([]string, 0, len(defs.TurretLibrary))
	for id := range defs.TurretLibrary {
		turretDefs = append(turretDefs, id)
	}
	sort.Strings(turretDefs)

	return &GameState{
		sm:          sm,
		game:        gameLogic,
		renderer:    render.NewRenderSystem(gameLogic.ECS, gameLogic.ProjectileSystem),
		healthBar:   ui.NewHealthBar(40, 20, gameLogic.PlayerID, health, maxHealth, face, gameLogic.EventDispatcher),
		turretPanel: ui.NewTurretPanel(face, gameLogic.TurretsManager, gameLogic.Pool, gameLogic.EventDispatcher),
		fontFace:    face,
		turretDefs:  turretDefs,
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.game.SetPlayerInput(geom.Zero)
		g.sm.Push(NewPauseState(g.sm, g.fontFace))
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.game.ToggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.game.NextProjectile()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.game.PreviousProjectile()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.turretPanel.Toggle()
	}
	for i := 0; i < len(g.turretDefs) && i < 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			g.placeDef = i
		}
	}

	g.game.SetPlayerInput(readMovement())

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.handleGameClick(ebiten.MouseButtonLeft)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.handleGameClick(ebiten.MouseButtonRight)
	}

	g.game.Update(deltaTime)
	g.healthBar.Update(deltaTime)
	g.turretPanel.Update()
}

// readMovement собирает направление из WASD и стрелок; Z, вверх по экрану.
func readMovement() geom.Vec3 {
	var dir geom.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	return dir
}

func (g *GameState) handleGameClick(button ebiten.MouseButton) {
	x, y := ebiten.CursorPosition()
	point := projection.ScreenToWorld(x, y)

	switch button {
	case ebiten.MouseButtonLeft:
		if len(g.turretDefs) == 0 {
			return
		}
		if _, taken := g.game.TurretAt(point, pickRadius); taken {
			return
		}
		// Новая турель смотрит на игрока
		yaw := float32(0)
		if tr, ok := g.game.ECS.Transforms[g.game.PlayerID]; ok {
			yaw = tr.Position.Sub(point).Yaw()
		}
		g.game.PlaceTurret(defs.TurretPlacement{DefID: g.turretDefs[g.placeDef], Position: point, Yaw: yaw})
	case ebiten.MouseButtonRight:
		if id, ok := g.game.TurretAt(point, pickRadius); ok {
			g.game.RemoveTurret(id)
		}
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	g.renderer.Draw(screen)
	g.healthBar.Draw(screen)
	g.turretPanel.Draw(screen)

	hint := fmt.Sprintf("Projectile: %s   Place: %s", g.game.Catalog.Current().Name, g.placeDefName())
	text.Draw(screen, hint, g.fontFace, 10, config.ScreenHeight-10, config.TextLightColor)
}

func (g *GameState) placeDefName() string {
	if len(g.turretDefs) == 0 {
		return "-"
	}
	def := defs.TurretLibrary[g.turretDefs[g.placeDef]]
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}

func (g *GameState) Exit() {
	g.game.ClearProjectiles()
}
