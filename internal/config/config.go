// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full set of tunables, one section per game plus the host.
type Config struct {
	Snake     SnakeConfig     `yaml:"snake"`
	Tetris    TetrisConfig    `yaml:"tetris"`
	Flappy    FlappyConfig    `yaml:"flappy"`
	TicTacToe TicTacToeConfig `yaml:"tictactoe"`
	Host      HostConfig      `yaml:"host"`
}

// Cell is a grid coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// BurstConfig sizes a particle burst.
type BurstConfig struct {
	Count int     `yaml:"count"`
	Life  int     `yaml:"life"`  // Frames
	Speed float64 `yaml:"speed"` // Velocity spread in pixels per frame
}

// SnakeConfig contains all configuration for Grid-Chase.
type SnakeConfig struct {
	Cols            int         `yaml:"cols"`
	Rows            int         `yaml:"rows"`
	Start           Cell        `yaml:"start"`
	Food            Cell        `yaml:"food"`
	StepMS          int         `yaml:"step_ms"`
	StepDecrementMS int         `yaml:"step_decrement_ms"`
	MinStepMS       int         `yaml:"min_step_ms"`
	PointsPerFood   int         `yaml:"points_per_food"`
	Burst           BurstConfig `yaml:"burst"`
}

// Step returns the initial step interval.
func (c SnakeConfig) Step() time.Duration { return ms(c.StepMS) }

// StepDecrement returns how much each food shortens the interval.
func (c SnakeConfig) StepDecrement() time.Duration { return ms(c.StepDecrementMS) }

// MinStep returns the interval floor.
func (c SnakeConfig) MinStep() time.Duration { return ms(c.MinStepMS) }

// TetrisConfig contains all configuration for Block-Stack.
type TetrisConfig struct {
	Cols          int         `yaml:"cols"`
	Rows          int         `yaml:"rows"`
	BaseDropMS    int         `yaml:"base_drop_ms"`
	DropStepMS    int         `yaml:"drop_step_ms"`
	MinDropMS     int         `yaml:"min_drop_ms"`
	LinesPerLevel int         `yaml:"lines_per_level"`
	LinePoints    []int       `yaml:"line_points"` // Indexed by lines cleared at once
	Burst         BurstConfig `yaml:"burst"`
}

// DropInterval returns the gravity interval for a level (1-based).
func (c TetrisConfig) DropInterval(level int) time.Duration {
	d := c.BaseDropMS - (level-1)*c.DropStepMS
	return ms(max(d, c.MinDropMS))
}

// FlappyConfig contains all configuration for Obstacle-Flight.
// Pixel values are given for a surface ReferenceHeight tall and scale with
// the real height.
type FlappyConfig struct {
	ReferenceHeight float64     `yaml:"reference_height"`
	Gravity         float64     `yaml:"gravity"`
	FlapImpulse     float64     `yaml:"flap_impulse"`
	BaseSpeed       float64     `yaml:"base_speed"`
	SpeedStep       float64     `yaml:"speed_step"`
	SpeedEvery      int         `yaml:"speed_every"` // Points between speed-ups
	PipeWidth       float64     `yaml:"pipe_width"`
	PipeGap         float64     `yaml:"pipe_gap"`
	PipeSpacing     float64     `yaml:"pipe_spacing"`
	MinPipeHeight   float64     `yaml:"min_pipe_height"`
	BirdSize        float64     `yaml:"bird_size"`
	Burst           BurstConfig `yaml:"burst"`
}

// TicTacToeConfig contains all configuration for Board-Duel.
type TicTacToeConfig struct {
	XAnimFrames   int `yaml:"x_anim_frames"`
	OAnimFrames   int `yaml:"o_anim_frames"`
	WinAnimFrames int `yaml:"win_anim_frames"`
}

// HostConfig holds settings for the hosts rather than a game.
type HostConfig struct {
	FPS        int     `yaml:"fps"`
	DBPath     string  `yaml:"db_path"`
	Sound      bool    `yaml:"sound"`
	Volume     float64 `yaml:"volume"` // 0..1
	Difficulty string  `yaml:"difficulty"`
}

// Validate reports the first setting no game can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Snake.Cols <= 0 || c.Snake.Rows <= 0 {
		errs = append(errs, fmt.Errorf("snake grid %dx%d", c.Snake.Cols, c.Snake.Rows))
	}
	if c.Snake.MinStepMS <= 0 || c.Snake.StepMS < c.Snake.MinStepMS {
		errs = append(errs, fmt.Errorf("snake step %dms below floor %dms", c.Snake.StepMS, c.Snake.MinStepMS))
	}
	if c.Tetris.Cols < 6 || c.Tetris.Rows < 4 {
		errs = append(errs, fmt.Errorf("tetris board %dx%d", c.Tetris.Cols, c.Tetris.Rows))
	}
	if len(c.Tetris.LinePoints) < 2 {
		errs = append(errs, errors.New("tetris line_points needs at least two entries"))
	}
	if c.Tetris.MinDropMS <= 0 || c.Tetris.LinesPerLevel <= 0 {
		errs = append(errs, errors.New("tetris min_drop_ms and lines_per_level must be positive"))
	}
	if c.Flappy.ReferenceHeight <= 0 || c.Flappy.SpeedEvery <= 0 {
		errs = append(errs, errors.New("flappy reference_height and speed_every must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
