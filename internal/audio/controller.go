// internal/audio/controller.go
package audio

import (
	"go-turret-defense/internal/utils"
	mathutil "go-turret-defense/pkg/utils"

	"go.uber.org/zap"
)

// Controller выбирает клипы для событий здоровья и отдаёт их плееру.
type Controller struct {
	player    OneShotPlayer
	ouches    []Clip
	heartbeat Clip
	master    float64
	rng       *utils.PRNGService
	logger    *zap.Logger
}

func NewController(player OneShotPlayer, master float64, rng *utils.PRNGService, logger *zap.Logger) *Controller {
	return &Controller{
		player:    player,
		ouches:    []Clip{ClipOuchLow, ClipOuchMid, ClipOuchHigh},
		heartbeat: ClipHeartbeat,
		master:    mathutil.Clamp01(master),
		rng:       rng,
		logger:    logger,
	}
}

// RandomOuch: случайный клип из набора "ох".
func (c *Controller) RandomOuch() Clip {
	return c.ouches[c.rng.Intn(len(c.ouches))]
}

func (c *Controller) Heartbeat() Clip { return c.heartbeat }

func (c *Controller) PlayOuch() {
	c.play(c.RandomOuch(), 1)
}

// PlayHeartbeat играет сердце с громкостью volume (до учёта общей громкости).
func (c *Controller) PlayHeartbeat(volume float64) {
	c.play(c.heartbeat, volume)
}

func (c *Controller) play(clip Clip, volume float64) {
	if c.player == nil {
		return
	}
	v := mathutil.Clamp01(volume) * c.master
	c.logger.Debug("play one-shot", zap.Stringer("clip", clip), zap.Float64("volume", v))
	c.player.PlayOneShot(clip, v)
}
