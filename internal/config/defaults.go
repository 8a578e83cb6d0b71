package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the hardcoded configuration. It matches
// defaults/arcade.yaml and is used when even the embedded file fails to parse.
func Default() Config {
	return Config{
		Snake: SnakeConfig{
			Cols:            20,
			Rows:            20,
			Start:           Cell{X: 10, Y: 10},
			Food:            Cell{X: 15, Y: 15},
			StepMS:          150,
			StepDecrementMS: 2,
			MinStepMS:       50,
			PointsPerFood:   10,
			Burst:           BurstConfig{Count: 20, Life: 30, Speed: 5},
		},
		Tetris: TetrisConfig{
			Cols:          10,
			Rows:          20,
			BaseDropMS:    1000,
			DropStepMS:    100,
			MinDropMS:     100,
			LinesPerLevel: 10,
			LinePoints:    []int{0, 40, 100, 300, 1200},
			Burst:         BurstConfig{Count: 5, Life: 30, Speed: 5},
		},
		Flappy: FlappyConfig{
			ReferenceHeight: 600,
			Gravity:         0.5,
			FlapImpulse:     -10,
			BaseSpeed:       5,
			SpeedStep:       0.5,
			SpeedEvery:      5,
			PipeWidth:       80,
			PipeGap:         150,
			PipeSpacing:     300,
			MinPipeHeight:   50,
			BirdSize:        30,
			Burst:           BurstConfig{Count: 10, Life: 20, Speed: 3},
		},
		TicTacToe: TicTacToeConfig{
			XAnimFrames:   20,
			OAnimFrames:   30,
			WinAnimFrames: 30,
		},
		Host: HostConfig{
			FPS:        60,
			DBPath:     "~/.arcade/scores.db",
			Sound:      true,
			Volume:     0.5,
			Difficulty: string(DifficultyNormal),
		},
	}
}
