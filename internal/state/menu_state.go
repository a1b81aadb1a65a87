// internal/state/menu_state.go
package state

import (
	"go-turret-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

var keyBindings = []string{
	"WASD / arrows   move",
	"LMB             place turret",
	"RMB             remove turret",
	"1-9             choose turret type",
	"[ ]             previous / next projectile",
	"F3              toggle turret debug",
	"Tab             turret panel",
	"P / Esc         pause",
	"",
	"Enter           start",
}

// MenuState: экран с управлением. Enter запускает игру.
type MenuState struct {
	sm       *StateMachine
	next     State
	fontFace font.Face
}

func NewMenuState(sm *StateMachine, next State, face font.Face) *MenuState {
	return &MenuState{sm: sm, next: next, fontFace: face}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		m.sm.SetState(m.next)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	const lineHeight = 20
	x := config.ScreenWidth/2 - 140
	y := config.ScreenHeight/2 - len(keyBindings)*lineHeight/2
	for _, line := range keyBindings {
		text.Draw(screen, line, m.fontFace, x, y, config.TextLightColor)
		y += lineHeight
	}
}

func (m *MenuState) Exit() {}
