package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed-ups while playing
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// speedFactor returns how much faster than normal a preset starts.
func speedFactor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.25
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves it untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	f := speedFactor(preset)
	if f != 1.0 {
		cfg.Snake.StepMS = max(int(float64(cfg.Snake.StepMS)/f), cfg.Snake.MinStepMS)
		cfg.Tetris.BaseDropMS = max(int(float64(cfg.Tetris.BaseDropMS)/f), cfg.Tetris.MinDropMS)
		cfg.Flappy.BaseSpeed *= f
		cfg.Flappy.Gravity *= f
	}

	if preset == DifficultyFixed {
		cfg.Snake.StepDecrementMS = 0
		cfg.Tetris.DropStepMS = 0
		cfg.Flappy.SpeedStep = 0
	}
	cfg.Host.Difficulty = string(preset)
}
