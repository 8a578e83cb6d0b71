package sfx

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Sound builds the streamer for cue c at the given linear volume. Unknown
// cues return nil.
func Sound(c core.Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case core.CueEat:
		s = Tone(660, 990, 80*time.Millisecond, WaveSquare, rate)
	case core.CueFlap:
		s = Tone(300, 520, 60*time.Millisecond, WaveTriangle, rate)
	case core.CuePlace:
		s = Tone(440, 440, 50*time.Millisecond, WaveSine, rate)
	case core.CueLine:
		// Major triad, played together.
		s = beep.Mix(
			withVolume(Tone(523.25, 523.25, 180*time.Millisecond, WaveSquare, rate), 0.4),
			withVolume(Tone(659.25, 659.25, 180*time.Millisecond, WaveSquare, rate), 0.3),
			withVolume(Tone(783.99, 783.99, 180*time.Millisecond, WaveSquare, rate), 0.3),
		)
	case core.CueWin:
		s = beep.Seq(
			Tone(523.25, 523.25, 90*time.Millisecond, WaveSquare, rate),
			Tone(659.25, 659.25, 90*time.Millisecond, WaveSquare, rate),
			Tone(783.99, 783.99, 90*time.Millisecond, WaveSquare, rate),
			Tone(1046.5, 1046.5, 200*time.Millisecond, WaveSquare, rate),
		)
	case core.CueGameOver:
		s = beep.Seq(
			Tone(392, 370, 150*time.Millisecond, WaveTriangle, rate),
			Tone(330, 311, 150*time.Millisecond, WaveTriangle, rate),
			Tone(262, 196, 350*time.Millisecond, WaveTriangle, rate),
		)
	default:
		return nil
	}
	return withVolume(s, vol)
}

// Length returns the number of samples cue c produces, or zero for unknown
// cues. The streamer is drained to count them.
func Length(c core.Cue, rate beep.SampleRate) int {
	s := Sound(c, 1, rate)
	if s == nil {
		return 0
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}
