package core

import "time"

// RuntimeConfig contains host settings shared by every session.
type RuntimeConfig struct {
	Width  int           // Surface width in pixels
	Height int           // Surface height in pixels
	Frame  time.Duration // Host frame interval (default 1/60s)
	Seed   int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:  800,
		Height: 600,
		Frame:  time.Second / 60,
		Seed:   0, // 0 means use current time in platform layer
	}
}

// FrameForFPS converts a frames-per-second rate into a frame interval.
// Non-positive rates fall back to 60.
func FrameForFPS(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
