// internal/ui/turret_panel.go
package ui

import (
	"fmt"
	"go-turret-defense/internal/component"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/pool"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelWidth     = 290
	panelMargin    = 5
	animationSpeed = 20.0
	lineHeight     = 18
	maxTurretLines = 12
)

// TurretSource: то, откуда панель берёт список турелей.
type TurretSource interface {
	Turrets() []*component.Turret
}

// TurretPanel показывает выезжающую справа панель отладки: прототип снаряда,
// счётчики пула и состояние каждой турели.
type TurretPanel struct {
	IsVisible bool

	fontFace font.Face
	turrets  TurretSource
	pool     *pool.ProjectilePool
	currentX float64
	targetX  float64

	prototype string
	lastHit   string
}

func NewTurretPanel(face font.Face, turrets TurretSource, projectilePool *pool.ProjectilePool, dispatcher *event.Dispatcher) *TurretPanel {
	p := &TurretPanel{
		fontFace:  face,
		turrets:   turrets,
		pool:      projectilePool,
		currentX:  config.ScreenWidth,
		targetX:   config.ScreenWidth,
		prototype: projectilePool.Prototype().Name,
	}
	dispatcher.Subscribe(event.PrototypeChanged, p)
	dispatcher.Subscribe(event.ProjectileHit, p)
	return p
}

func (p *TurretPanel) OnEvent(e event.Event) {
	switch e.Type {
	case event.PrototypeChanged:
		if name, ok := e.Data.(string); ok {
			p.prototype = name
		}
	case event.ProjectileHit:
		if hit, ok := e.Data.(event.HitData); ok {
			p.lastHit = fmt.Sprintf("turret %d -> %d (%d)", hit.Turret, hit.Target, hit.Damage)
		}
	}
}

// Toggle показывает или прячет панель.
func (p *TurretPanel) Toggle() {
	if p.targetX < config.ScreenWidth {
		p.targetX = config.ScreenWidth
		return
	}
	p.IsVisible = true
	p.targetX = config.ScreenWidth - panelWidth
}

func (p *TurretPanel) Update() {
	if p.currentX == p.targetX {
		return
	}
	diff := p.targetX - p.currentX
	if math.Abs(diff) < animationSpeed {
		p.currentX = p.targetX
	} else if diff > 0 {
		p.currentX += animationSpeed
	} else {
		p.currentX -= animationSpeed
	}
	if p.currentX >= config.ScreenWidth {
		p.IsVisible = false
	}
}

// Lines: текст панели построчно.
func (p *TurretPanel) Lines() []string {
	stats := p.pool.Stats()
	lines := []string{
		"Projectile: " + p.prototype,
		fmt.Sprintf("Pool: %d free / %d allocated", p.pool.Inactive(), stats.Allocated),
		fmt.Sprintf("Acquired %d  Released %d  Discarded %d", stats.Acquired, stats.Released, stats.Discarded),
	}
	if p.lastHit != "" {
		lines = append(lines, "Last hit: "+p.lastHit)
	}
	turrets := p.turrets.Turrets()
	lines = append(lines, fmt.Sprintf("Turrets: %d", len(turrets)))
	for i, t := range turrets {
		if i == maxTurretLines {
			lines = append(lines, fmt.Sprintf("  ... %d more", len(turrets)-i))
			break
		}
		line := fmt.Sprintf("  %s %s", t.DefID, t.State)
		if t.HasTarget {
			line += " *"
		}
		if t.IsObstacleBlocking {
			line += " blocked"
		}
		lines = append(lines, line)
	}
	return lines
}

func (p *TurretPanel) Draw(screen *ebiten.Image) {
	if !p.IsVisible && p.currentX >= config.ScreenWidth {
		return
	}

	lines := p.Lines()
	panelRect := image.Rect(
		int(p.currentX)+panelMargin,
		panelMargin,
		int(p.currentX)+panelWidth-panelMargin,
		panelMargin+20+len(lines)*lineHeight,
	)

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	y := panelRect.Min.Y + lineHeight
	for _, line := range lines {
		text.Draw(screen, line, p.fontFace, panelRect.Min.X+10, y, config.TextLightColor)
		y += lineHeight
	}
}
