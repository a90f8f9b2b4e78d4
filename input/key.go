package input

import "github.com/gdamore/tcell/v2"

// Key is a device-independent game key
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyJump
	KeyEscape
	KeyPause
	KeyQuit
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyJump:   "space",
	KeyEscape: "escape",
	KeyPause:  "pause",
	KeyQuit:   "quit",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// FromEvent translates a tcell event into a game key
// Returns false for events that carry no game key (resize, mouse, unmapped runes)
func FromEvent(ev tcell.Event) (Key, bool) {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return KeyNone, false
	}

	switch kev.Key() {
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return KeyQuit, true
	case tcell.KeyRune:
		return fromRune(kev.Rune())
	}
	return KeyNone, false
}

// fromRune maps printable keys, vi-style hjkl mirror the arrows
func fromRune(r rune) (Key, bool) {
	switch r {
	case ' ':
		return KeyJump, true
	case 'h':
		return KeyLeft, true
	case 'l':
		return KeyRight, true
	case 'k':
		return KeyUp, true
	case 'j':
		return KeyDown, true
	case 'p':
		return KeyPause, true
	case 'q', 'Q':
		return KeyQuit, true
	}
	return KeyNone, false
}
