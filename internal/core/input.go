package core

import "time"

// Key is a host-independent key name.
// Printable keys use their rune as the name ("a", "1").
type Key string

const (
	KeyNone   Key = ""
	KeySpace  Key = "space"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyEnter  Key = "enter"
	KeyEscape Key = "esc"
)

// IsDirectional reports whether k is one of the four arrow keys.
func (k Key) IsDirectional() bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// String returns the key name.
func (k Key) String() string {
	return string(k)
}

// KeyEvent is a single key-down.
type KeyEvent struct {
	Key Key
}

// ClickEvent is a pointer click in surface pixel coordinates.
type ClickEvent struct {
	X, Y float64
}

// KeyHandler and ClickHandler receive routed input events.
type (
	KeyHandler   func(KeyEvent)
	ClickHandler func(ClickEvent)
)

// Binding identifies a registered listener.
type Binding uint64

// InputSource lets a game register and remove its own listeners.
type InputSource interface {
	OnKey(h KeyHandler) Binding
	OnClick(h ClickHandler) Binding
	Unbind(b Binding)
}

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameCallback receives the timestamp of the frame it runs in, measured from
// the host's start. Timestamps never decrease.
type FrameCallback func(ts time.Duration)

// FrameScheduler is the per-frame scheduling primitive supplied by the host.
type FrameScheduler interface {
	Request(cb FrameCallback) FrameID
	Cancel(id FrameID)
}

// AffordanceID identifies a host UI affordance.
type AffordanceID uint64

// HostUI is the part of the host's user interface the engine may touch.
type HostUI interface {
	ShowPrompt(text string)
	HidePrompt()
	SetScrollLock(locked bool)
	SetControlsVisible(visible bool)
	AddAffordance(label string, onActivate func()) AffordanceID
	RemoveAffordance(id AffordanceID)
}

// Reporter receives score and lifecycle reports from the active game.
type Reporter interface {
	ReportScore(value int)
	ReportEnded(finalScore int)
	ReportRestarted()
}

// Cue names a short sound effect.
type Cue string

const (
	CueEat      Cue = "eat"
	CueLine     Cue = "line"
	CueFlap     Cue = "flap"
	CuePlace    Cue = "place"
	CueWin      Cue = "win"
	CueGameOver Cue = "game_over"
)

// CuePlayer plays sound cues. Implementations must not block.
type CuePlayer interface {
	Play(c Cue)
}

// NopCues discards every cue.
type NopCues struct{}

// Play implements CuePlayer.
func (NopCues) Play(Cue) {}
