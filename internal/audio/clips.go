// internal/audio/clips.go
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Clip: короткий синтезированный звук.
type Clip int

const (
	ClipOuchLow Clip = iota
	ClipOuchMid
	ClipOuchHigh
	ClipHeartbeat
)

func (c Clip) String() string {
	switch c {
	case ClipOuchLow:
		return "ouch-low"
	case ClipOuchMid:
		return "ouch-mid"
	case ClipOuchHigh:
		return "ouch-high"
	case ClipHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Duration: длина клипа.
func (c Clip) Duration() time.Duration {
	if c == ClipHeartbeat {
		return 450 * time.Millisecond
	}
	return 220 * time.Millisecond
}

// Streamer собирает генератор клипа, обрезанный по его длине.
func (c Clip) Streamer(sr beep.SampleRate) beep.Streamer {
	var gen beep.Streamer
	switch c {
	case ClipOuchLow:
		gen = NewOuchGenerator(sr, 330)
	case ClipOuchMid:
		gen = NewOuchGenerator(sr, 440)
	case ClipOuchHigh:
		gen = NewOuchGenerator(sr, 560)
	case ClipHeartbeat:
		gen = NewHeartbeatGenerator(sr)
	default:
		return beep.Silence(0)
	}
	return beep.Take(sr.N(c.Duration()), gen)
}

// OuchGenerator синтезирует короткий "ох", тон падающий по высоте, с быстрым затуханием.
type OuchGenerator struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	phase float64
}

func NewOuchGenerator(sr beep.SampleRate, freq float64) *OuchGenerator {
	return &OuchGenerator{sr: sr, freq: freq}
}

func (g *OuchGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// частота съезжает вниз примерно на октаву
		freq := g.freq * (1 - 0.5*math.Min(t/0.2, 1))
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(t/0.01, 1)
		envelope := attack * math.Exp(-t*12)
		sample := envelope * (0.35*math.Sin(g.phase) + 0.1*math.Sin(2*g.phase))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *OuchGenerator) Err() error {
	return nil
}

// HeartbeatGenerator: два низких удара "тук-тук".
type HeartbeatGenerator struct {
	sr  beep.SampleRate
	pos int
}

func NewHeartbeatGenerator(sr beep.SampleRate) *HeartbeatGenerator {
	return &HeartbeatGenerator{sr: sr}
}

func thump(t, start, freq float64) float64 {
	local := t - start
	if local < 0 {
		return 0
	}
	return math.Exp(-local*25) * math.Sin(2*math.Pi*freq*local)
}

func (g *HeartbeatGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.5*thump(t, 0, 55) + 0.35*thump(t, 0.18, 48)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HeartbeatGenerator) Err() error {
	return nil
}
