package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/sfx"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

// loadConfig resolves the config file, then applies --difficulty and --fps.
// A preset named in the file is used when the flag is empty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	name := flagDifficulty
	if name == "" {
		name = cfg.Host.Difficulty
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Host.FPS = flagFPS
	}
	if flagNoSound {
		cfg.Host.Sound = false
	}
	return cfg, nil
}

// newLogger writes to --log when given, otherwise to fallback. Terminal
// hosts pass io.Discard because stdout is the game screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openStore opens the score ledger. Failure is logged and play continues
// without scores.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	path := flagDBPath
	if path == "" {
		path = cfg.Host.DBPath
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database", "path", path, "error", err)
		return nil
	}
	return store
}

// openSound opens the speaker when sound is enabled.
func openSound(cfg config.Config, logger *log.Logger) (core.CuePlayer, func()) {
	return sfx.Open(cfg.Host.Sound, cfg.Host.Volume, logger)
}

// hostEnv bundles what every local host needs.
type hostEnv struct {
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
	cues   core.CuePlayer
	close  func()
}

func newHostEnv(logTo io.Writer) (*hostEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(logTo)
	if err != nil {
		return nil, err
	}
	store := openStore(cfg, logger)
	cues, closeSound := openSound(cfg, logger)

	return &hostEnv{
		cfg:    cfg,
		logger: logger,
		store:  store,
		cues:   cues,
		close: func() {
			closeSound()
			if store != nil {
				store.Close()
			}
			closeLog()
		},
	}, nil
}
