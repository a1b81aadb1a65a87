// internal/schedule/queue.go
package schedule

import "container/heap"

// Timer это запись очереди: срок и отложенное действие.
type Timer struct {
	deadline  float64
	seq       uint64
	fn        func()
	index     int
	cancelled bool
	fired     bool
}

// Cancel отменяет таймер, если он ещё не сработал.
func (t *Timer) Cancel() {
	t.cancelled = true
}

func (t *Timer) Pending() bool {
	return !t.cancelled && !t.fired
}

// Queue: очередь отложенных действий на игровом времени. Опрашивается раз в тик,
// ничего не блокирует. Таймеры с одинаковым сроком срабатывают в порядке добавления.
type Queue struct {
	now    float64
	seq    uint64
	timers timerHeap
}

func NewQueue() *Queue {
	return &Queue{}
}

// Now: текущее игровое время очереди.
func (q *Queue) Now() float64 {
	return q.now
}

// Len: число ожидающих таймеров (включая отменённые, ещё не вынутые из кучи).
func (q *Queue) Len() int {
	return q.timers.Len()
}

// After планирует fn через delay секунд игрового времени.
func (q *Queue) After(delay float64, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	q.seq++
	t := &Timer{deadline: q.now + delay, seq: q.seq, fn: fn}
	heap.Push(&q.timers, t)
	return t
}

// Update сдвигает время и выполняет все наступившие таймеры.
// Таймер, добавленный из колбэка с уже наступившим сроком, сработает в этом же вызове.
func (q *Queue) Update(deltaTime float64) {
	q.now += deltaTime
	for q.timers.Len() > 0 && q.timers[0].deadline <= q.now {
		t := heap.Pop(&q.timers).(*Timer)
		if t.cancelled {
			continue
		}
		t.fired = true
		t.fn()
	}
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline == h[j].deadline {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline < h[j].deadline
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
