// cmd/game/main.go
package main

import (
	"flag"
	"go-turret-defense/internal/app"
	"go-turret-defense/internal/audio"
	"go-turret-defense/internal/config"
	"go-turret-defense/internal/defs"
	"go-turret-defense/internal/state"
	"go-turret-defense/internal/system"
	"go-turret-defense/internal/utils"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var (
	configPath = flag.String("config", "config.toml", "path to the runtime settings")
	isDebug    = flag.Bool("debug", false, "enable debug log output and turret gizmos")
	skipMenu   = flag.Bool("skip-menu", false, "start straight in the game")
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	flag.Parse()

	settings, settingsErr := config.LoadSettings(*configPath)
	if *isDebug {
		settings.Debug = true
	}

	var logger *zap.Logger
	if settings.Debug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func() { _ = logger.Sync() }()

	if settingsErr != nil {
		logger.Fatal("failed to read settings", zap.String("path", *configPath), zap.Error(settingsErr))
	}

	if err := defs.LoadTurretDefinitions(filepath.Join(settings.DataDir, "turrets.json")); err != nil {
		logger.Fatal("failed to load turret definitions", zap.Error(err))
	}
	if err := defs.LoadProjectileDefinitions(filepath.Join(settings.DataDir, "projectiles.json")); err != nil {
		logger.Warn("using the default projectile", zap.Error(err))
	}
	scene, err := defs.LoadScene(filepath.Join(settings.DataDir, settings.SceneFile))
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}

	var feedback system.AudioFeedback
	if settings.Audio {
		sampleRate := beep.SampleRate(settings.AudioSampleRate)
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Без звука игра работает
			logger.Warn("audio initialization failed", zap.Error(err))
		} else {
			player := audio.NewBeepPlayer(sampleRate)
			speaker.Play(player)
			defer speaker.Close()
			feedback = audio.NewController(player, settings.MasterVolume, utils.NewPRNGService(settings.Seed), logger.Named("audio"))
		}
	}

	gameLogic := app.NewGame(settings, feedback, logger)
	if err := gameLogic.LoadScene(scene); err != nil {
		logger.Fatal("failed to spawn scene", zap.Error(err))
	}

	face := basicfont.Face7x13
	sm := state.NewStateMachine()
	gameState := state.NewGameState(sm, gameLogic, face)
	if *skipMenu {
		sm.SetState(gameState)
	} else {
		sm.SetState(state.NewMenuState(sm, gameState, face))
	}

	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Turret Range")
	logger.Info("game start", zap.Bool("debug", settings.Debug), zap.Bool("audio", settings.Audio))
	if err := ebiten.RunGame(a); err != nil {
		logger.Error("game loop stopped", zap.Error(err))
	}
	logger.Info("game exit")
}

func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
