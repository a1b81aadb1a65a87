// internal/tween/tween.go
package tween

import (
	"go-turret-defense/internal/geom"
	"go-turret-defense/internal/types"
)

// Key идентифицирует анимируемое свойство: на один ключ приходится не больше одного твина.
type Key struct {
	Owner   types.EntityID
	Channel string
}

// Tween интерполирует ориентацию: старт, цель, длительность и прошедшее время.
// Продвигается раз в тик, по завершении вызывает колбэк.
type Tween struct {
	key        Key
	target     *geom.Quat
	from, to   geom.Quat
	duration   float32
	elapsed    float32
	onComplete func()
	done       bool
	killed     bool
}

// OnComplete задаёт колбэк завершения. Убитый твин колбэк не вызывает.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Done: твин завершился или был убит.
func (t *Tween) Done() bool {
	return t.done || t.killed
}

// outQuad: сглаживание по умолчанию.
func outQuad(t float32) float32 {
	return 1 - (1-t)*(1-t)
}

// Tweener хранит активные твины и продвигает их в порядке создания.
type Tweener struct {
	tweens []*Tween
	byKey  map[Key]*Tween
}

func NewTweener() *Tweener {
	return &Tweener{byKey: make(map[Key]*Tween)}
}

// Rotate запускает поворот target к to за duration секунд.
// Уже идущий твин с тем же ключом убивается.
func (tw *Tweener) Rotate(key Key, target *geom.Quat, to geom.Quat, duration float32) *Tween {
	tw.Kill(key)
	t := &Tween{
		key:      key,
		target:   target,
		from:     *target,
		to:       to,
		duration: duration,
	}
	tw.tweens = append(tw.tweens, t)
	tw.byKey[key] = t
	return t
}

// Retarget меняет конечную ориентацию идущего твина, не сбрасывая время.
// Возвращает false, если твина с таким ключом нет.
func (tw *Tweener) Retarget(key Key, to geom.Quat) bool {
	t, ok := tw.byKey[key]
	if !ok {
		return false
	}
	t.to = to
	return true
}

// Kill останавливает твин без вызова колбэка; свойство остаётся как есть.
func (tw *Tweener) Kill(key Key) {
	if t, ok := tw.byKey[key]; ok {
		t.killed = true
		delete(tw.byKey, key)
	}
}

// KillOwner убивает все твины сущности.
func (tw *Tweener) KillOwner(owner types.EntityID) {
	for key := range tw.byKey {
		if key.Owner == owner {
			tw.Kill(key)
		}
	}
}

func (tw *Tweener) IsTweening(key Key) bool {
	_, ok := tw.byKey[key]
	return ok
}

// Len: число активных твинов.
func (tw *Tweener) Len() int {
	return len(tw.byKey)
}

// Update продвигает все твины на deltaTime. Колбэки вызываются после обхода,
// поэтому из них можно запускать новые твины.
func (tw *Tweener) Update(deltaTime float64) {
	dt := float32(deltaTime)
	var completed []*Tween
	alive := tw.tweens[:0]
	for _, t := range tw.tweens {
		if t.killed {
			continue
		}
		t.elapsed += dt
		progress := float32(1)
		if t.duration > 0 && t.elapsed < t.duration {
			progress = t.elapsed / t.duration
		}
		if progress >= 1 {
			*t.target = t.to
			t.done = true
			delete(tw.byKey, t.key)
			completed = append(completed, t)
			continue
		}
		*t.target = t.from.Slerp(t.to, outQuad(progress))
		alive = append(alive, t)
	}
	for i := len(alive); i < len(tw.tweens); i++ {
		tw.tweens[i] = nil
	}
	tw.tweens = alive

	for _, t := range completed {
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}
