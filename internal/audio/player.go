// internal/audio/player.go
package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// OneShotPlayer проигрывает клип один раз с заданной громкостью [0, 1].
type OneShotPlayer interface {
	PlayOneShot(clip Clip, volume float64)
}

// BeepPlayer смешивает одноразовые клипы в beep.Mixer. Сам является
// beep.Streamer: main отдаёт его в speaker.Play, тесты читают Stream напрямую.
type BeepPlayer struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	played     int
}

func NewBeepPlayer(sampleRate beep.SampleRate) *BeepPlayer {
	return &BeepPlayer{
		sampleRate: sampleRate,
		mixer:      &beep.Mixer{},
	}
}

func (p *BeepPlayer) SampleRate() beep.SampleRate { return p.sampleRate }

// PlayOneShot добавляет клип в микшер. Нулевая громкость: клип не добавляется.
func (p *BeepPlayer) PlayOneShot(clip Clip, volume float64) {
	if volume <= 0 {
		return
	}
	if volume > 1 {
		volume = 1
	}
	streamer := &effects.Volume{
		Streamer: clip.Streamer(p.sampleRate),
		Base:     2,
		Volume:   math.Log2(volume),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixer.Add(streamer)
	p.played++
}

// Active: сколько клипов сейчас звучит.
func (p *BeepPlayer) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Played: сколько клипов запущено за всё время.
func (p *BeepPlayer) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Stream реализует beep.Streamer. Вызывается из горутины динамика.
func (p *BeepPlayer) Stream(samples [][2]float64) (n int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

func (p *BeepPlayer) Err() error {
	return nil
}

// Clear обрывает всё, что звучит.
func (p *BeepPlayer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixer.Clear()
}
