// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State: интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine: стек состояний. Обновляется и рисуется только верхнее;
// Push кладёт поверх (пауза), Pop возвращает к предыдущему без повторного Enter.
type StateMachine struct {
	stack []State
}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState заменяет весь стек одним состоянием.
func (sm *StateMachine) SetState(newState State) {
	for len(sm.stack) > 0 {
		sm.stack[len(sm.stack)-1].Exit()
		sm.stack = sm.stack[:len(sm.stack)-1]
	}
	sm.Push(newState)
}

// Push кладёт состояние поверх текущего; текущее не получает Exit.
func (sm *StateMachine) Push(s State) {
	if s == nil {
		return
	}
	sm.stack = append(sm.stack, s)
	s.Enter()
}

// Pop снимает верхнее состояние. Последнее состояние не снимается.
func (sm *StateMachine) Pop() {
	if len(sm.stack) < 2 {
		return
	}
	top := sm.stack[len(sm.stack)-1]
	sm.stack = sm.stack[:len(sm.stack)-1]
	top.Exit()
}

// Current: верхнее состояние или nil.
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Below: состояние под верхним, его рисует пауза.
func (sm *StateMachine) Below() State {
	if len(sm.stack) < 2 {
		return nil
	}
	return sm.stack[len(sm.stack)-2]
}

func (sm *StateMachine) Update(deltaTime float64) {
	if current := sm.Current(); current != nil {
		current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if current := sm.Current(); current != nil {
		current.Draw(screen)
	}
}
