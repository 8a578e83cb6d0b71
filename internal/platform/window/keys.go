package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// KeyToCore maps an Ebiten key to the engine's key names. Letters and digits
// become their lowercase rune; WASD doubles as the arrow keys.
func KeyToCore(k ebiten.Key) (core.Key, bool) {
	switch k {
	case ebiten.KeyArrowUp, ebiten.KeyW:
		return core.KeyUp, true
	case ebiten.KeyArrowDown, ebiten.KeyS:
		return core.KeyDown, true
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return core.KeyLeft, true
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return core.KeyRight, true
	case ebiten.KeySpace:
		return core.KeySpace, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return core.KeyEnter, true
	case ebiten.KeyEscape:
		return core.KeyEscape, true
	}
	switch {
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return core.Key(string(rune('0' + int(k-ebiten.KeyDigit0)))), true
	case k >= ebiten.KeyNumpad0 && k <= ebiten.KeyNumpad9:
		return core.Key(string(rune('0' + int(k-ebiten.KeyNumpad0)))), true
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return core.Key(string(rune('a' + int(k-ebiten.KeyA)))), true
	}
	return core.KeyNone, false
}
