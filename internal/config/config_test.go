package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	assert.Equal(t, Default(), Embedded())
	require.NoError(t, Default().Validate())
}

func TestLoadCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snake:\n  step_ms: 200\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Snake.StepMS)
	assert.Equal(t, 20, cfg.Snake.Cols, "unspecified fields keep defaults")
	assert.Equal(t, []int{0, 40, 100, 300, 1200}, cfg.Tetris.LinePoints)
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCustomInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "snake: [\n"},
		{"zero grid", "snake:\n  cols: 0\n"},
		{"step below floor", "snake:\n  step_ms: 10\n"},
		{"short line table", "tetris:\n  line_points: [0]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arcade.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg, "failed load falls back to defaults")
		})
	}
}

func TestDropInterval(t *testing.T) {
	c := Default().Tetris
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{15, 100 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := c.DropInterval(tc.level); got != tc.want {
			t.Errorf("DropInterval(%d) = %v, expected %v", tc.level, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, Default().Snake, normal.Snake)

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	assert.Less(t, hard.Snake.StepMS, 150)
	assert.Greater(t, hard.Flappy.BaseSpeed, 5.0)

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	assert.Greater(t, easy.Tetris.BaseDropMS, 1000)

	fixed := Default()
	ApplyPreset(&fixed, DifficultyFixed)
	assert.Zero(t, fixed.Snake.StepDecrementMS)
	assert.Zero(t, fixed.Flappy.SpeedStep)
	assert.Equal(t, "fixed", fixed.Host.Difficulty)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("insane")
	assert.Error(t, err)
}
