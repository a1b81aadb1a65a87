// internal/ui/health_bar.go
package ui

import (
	"fmt"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/event"
	"go-turret-defense/internal/types"
	"go-turret-defense/internal/utils"
	mathutil "go-turret-defense/pkg/utils"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// HealthBar показывает здоровье игрока. Значение обновляется по событиям,
// отображаемая полоска догоняет его плавно.
type HealthBar struct {
	X, Y     float32
	Entity   types.EntityID
	fontFace font.Face

	health    float64 // настоящее значение из последнего события
	max       float64
	displayed float64 // то, что нарисовано сейчас

	pulse float64 // оставшееся время пульса сердца
	flash float64 // непрозрачность красной вспышки по краям экрана
}

func NewHealthBar(x, y float32, entity types.EntityID, health, max float64, face font.Face, dispatcher *event.Dispatcher) *HealthBar {
	b := &HealthBar{
		X:         x,
		Y:         y,
		Entity:    entity,
		fontFace:  face,
		health:    health,
		max:       max,
		displayed: health,
	}
	dispatcher.Subscribe(event.DamageReceived, b)
	dispatcher.Subscribe(event.Regeneration, b)
	return b
}

func (b *HealthBar) OnEvent(e event.Event) {
	data, ok := e.Data.(event.HealthData)
	if !ok || data.Entity != b.Entity {
		return
	}
	b.health = data.Health
	if data.Max > 0 {
		b.max = data.Max
	}
	switch e.Type {
	case event.DamageReceived:
		// чем меньше здоровья осталось, тем ярче вспышка
		b.flash = 0.5 - 0.5*b.Fraction()
		if b.flash < 0.15 {
			b.flash = 0.15
		}
	case event.Regeneration:
		b.pulse = config.HeartPulseTime
	}
}

func (b *HealthBar) Update(deltaTime float64) {
	step := math.Max(math.Abs(b.health-b.displayed), 1) * config.HealthBarEase * deltaTime
	b.displayed = utils.MoveTowards(b.displayed, b.health, step)
	b.pulse = math.Max(b.pulse-deltaTime, 0)
	b.flash = math.Max(b.flash-deltaTime, 0)
}

// Fraction: доля настоящего здоровья, [0, 1].
func (b *HealthBar) Fraction() float64 {
	if b.max <= 0 {
		return 0
	}
	return mathutil.Clamp01(b.health / b.max)
}

// Displayed: значение, которое сейчас нарисовано.
func (b *HealthBar) Displayed() float64 { return b.displayed }

// FillColor: цвет заливки по градиенту от красного к зелёному.
func (b *HealthBar) FillColor() color.RGBA {
	fraction := 0.0
	if b.max > 0 {
		fraction = mathutil.Clamp01(b.displayed / b.max)
	}
	return lerpColor(config.HealthLowColor, config.HealthHighColor, fraction)
}

func lerpColor(from, to color.RGBA, t float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(utils.Lerp(float64(a), float64(b), t)))
	}
	return color.RGBA{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B), mix(from.A, to.A)}
}

func (b *HealthBar) Draw(screen *ebiten.Image) {
	if b.flash > 0 {
		c := config.HealthLowColor
		c.A = uint8(255 * b.flash)
		const edge = 24
		vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, edge, c, false)
		vector.DrawFilledRect(screen, 0, config.ScreenHeight-edge, config.ScreenWidth, edge, c, false)
		vector.DrawFilledRect(screen, 0, 0, edge, config.ScreenHeight, c, false)
		vector.DrawFilledRect(screen, config.ScreenWidth-edge, 0, edge, config.ScreenHeight, c, false)
	}

	vector.DrawFilledRect(screen, b.X, b.Y, config.HealthBarWidth, config.HealthBarHeight, config.HealthBackColor, false)
	fill := float32(0)
	if b.max > 0 {
		fill = float32(mathutil.Clamp01(b.displayed/b.max)) * config.HealthBarWidth
	}
	vector.DrawFilledRect(screen, b.X, b.Y, fill, config.HealthBarHeight, b.FillColor(), false)
	vector.StrokeRect(screen, b.X, b.Y, config.HealthBarWidth, config.HealthBarHeight, 1, config.TextLightColor, false)

	// Сердце слева от полоски: на регенерации раздувается и темнеет к концу пульса
	scale := float32(0.8)
	heart := config.HeartColor
	if b.pulse > 0 {
		p := float32(b.pulse / config.HeartPulseTime)
		scale = 0.8 + 0.3*p
		heart = color.RGBA{255, 2, 2, 255}
	}
	radius := config.HealthBarHeight / 2 * scale
	vector.DrawFilledCircle(screen, b.X-radius-8, b.Y+config.HealthBarHeight/2, radius, heart, true)

	label := fmt.Sprintf("%.0f/%.0f", b.health, b.max)
	text.Draw(screen, label, b.fontFace, int(b.X)+6, int(b.Y)+config.HealthBarHeight/2+config.TextOffsetY, config.TextLightColor)
}
