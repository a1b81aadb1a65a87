// internal/config/settings.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"
)

// Settings: то, что можно поменять без пересборки. Читается из config.toml.
type Settings struct {
	Debug           bool    `toml:"debug"`
	Audio           bool    `toml:"audio"`
	Seed            int64   `toml:"seed"` // 0: сид от текущего времени
	DataDir         string  `toml:"data-dir"`
	SceneFile       string  `toml:"scene"`
	MasterVolume    float64 `toml:"master-volume"`
	AudioSampleRate int     `toml:"audio-sample-rate"`

	// Ограничение отладочного лога "цель доступна/недоступна" на одну турель.
	TraceLimiter Limiter `toml:"trace-limiter"`
}

// Limiter: не больше N событий за период Every.
type Limiter struct {
	Every duration `toml:"every"`
	N     int      `toml:"n"`
}

// Limiter собирает rate.Limiter из настроек.
func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration <= 0 {
		return rate.NewLimiter(rate.Inf, l.N)
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration читается из строки вида "500ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func DefaultSettings() Settings {
	return Settings{
		DataDir:         "assets/data",
		SceneFile:       "scene.json",
		MasterVolume:    0.8,
		AudioSampleRate: 44100,
		TraceLimiter: Limiter{
			Every: duration{Duration: time.Second},
			N:     2,
		},
	}
}

// errUnknownConfig: ключи конфига, которых нет в Settings.
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// LoadSettings читает path поверх значений по умолчанию.
// Если файла нет, возвращаются значения по умолчанию без ошибки.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var unknown errUnknownConfig
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		return Settings{}, unknown
	}
	if s.MasterVolume < 0 || s.MasterVolume > 1 {
		return Settings{}, fmt.Errorf("master-volume must be in [0, 1], got %v", s.MasterVolume)
	}
	return s, nil
}
