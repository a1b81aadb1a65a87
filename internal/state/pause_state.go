// internal/state/pause_state.go
package state

import (
	"go-turret-defense/internal/config"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState лежит поверх игры: симуляция стоит, картинка замирает под затемнением.
type PauseState struct {
	stateMachine *StateMachine
	fontFace     font.Face
}

func NewPauseState(sm *StateMachine, face font.Face) *PauseState {
	return &PauseState{stateMachine: sm, fontFace: face}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.stateMachine.Pop()
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if below := s.stateMachine.Below(); below != nil {
		below.Draw(screen)
	}

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	pauseText := "PAUSED"
	bounds := text.BoundString(s.fontFace, pauseText)
	text.Draw(screen, pauseText, s.fontFace, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {}
