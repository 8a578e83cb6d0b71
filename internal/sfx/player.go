package sfx

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// speakerOnce guards speaker.Init, which may run only once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player plays cues through the system speaker. Play never blocks on audio.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	logger *log.Logger
	ready  bool
}

// NewPlayer opens the speaker and starts an empty mixer on it.
func NewPlayer(volume float64, logger *log.Logger) (*Player, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("sfx: init speaker: %w", speakerErr)
	}

	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
		ready:  true,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play implements core.CuePlayer.
func (p *Player) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s := Sound(c, p.volume, SampleRate)
	if s == nil {
		p.logger.Debug("unknown cue", "cue", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still playing. Later Play calls are dropped.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

// Open returns a speaker player when enabled is set, falling back to
// silence (and logging why) when the speaker is unavailable.
func Open(enabled bool, volume float64, logger *log.Logger) (core.CuePlayer, func()) {
	if !enabled {
		return core.NopCues{}, func() {}
	}
	p, err := NewPlayer(volume, logger)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return core.NopCues{}, func() {}
	}
	return p, p.Close
}
