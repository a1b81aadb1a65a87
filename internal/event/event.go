// internal/event/event.go
package event

// EventType: тип события
type EventType string

// Event: структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener: интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// funcListener позволяет подписать обычную функцию. Хранится по указателю,
// чтобы подписку можно было сравнить при отписке.
type funcListener struct {
	fn func(Event)
}

func (l *funcListener) OnEvent(e Event) { l.fn(e) }

// Dispatcher: диспетчер событий. Работает в потоке игрового цикла, без блокировок.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher: создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe: подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeFunc подписывает функцию и возвращает Listener для последующей отписки.
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(Event)) Listener {
	l := &funcListener{fn: fn}
	d.Subscribe(eventType, l)
	return l
}

// Unsubscribe: отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			updated := make([]Listener, 0, len(listeners)-1)
			updated = append(updated, listeners[:i]...)
			d.listeners[eventType] = append(updated, listeners[i+1:]...)
			return
		}
	}
}

// Dispatch: отправка события всем подписчикам. Подписчик может отписаться
// прямо из обработчика: обход идёт по снимку списка.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// Listeners возвращает число подписчиков на событие.
func (d *Dispatcher) Listeners(eventType EventType) int {
	return len(d.listeners[eventType])
}
