package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, escape)
	SpecialKeys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

func hold(k HeldKey) Intent {
	return Intent{Type: IntentHold, Key: k}
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyEscape: {Type: IntentQuit},
			tcell.KeyCtrlC:  {Type: IntentQuit},
			tcell.KeyLeft:   hold(HeldYawLeft),
			tcell.KeyRight:  hold(HeldYawRight),
			tcell.KeyUp:     hold(HeldPitchUp),
			tcell.KeyDown:   hold(HeldPitchDown),
		},

		Runes: map[rune]Intent{
			'r': {Type: IntentResetCamera},
			'R': {Type: IntentResetCamera},

			// Zoom
			'+': hold(HeldZoomIn),
			'=': hold(HeldZoomIn),
			'-': hold(HeldZoomOut),
			'_': hold(HeldZoomOut),

			// Planar and vertical pan
			'a': hold(HeldPanLeft),
			'd': hold(HeldPanRight),
			'w': hold(HeldPanForward),
			's': hold(HeldPanBack),
			'q': hold(HeldPanUp),
			'e': hold(HeldPanDown),

			// Simulation
			'p': {Type: IntentTogglePause},
			' ': {Type: IntentTogglePause},
			'[': {Type: IntentSlower},
			']': {Type: IntentFaster},
			'o': {Type: IntentToggleOrbits},
		},
	}

	for _, r := range "adwsqe" {
		kt.Runes[r-'a'+'A'] = kt.Runes[r]
	}
	for d := '1'; d <= '9'; d++ {
		kt.Runes[d] = Intent{Type: IntentFocusBody, Index: int(d - '1')}
	}
	return kt
}

// Lookup resolves a key event, ok is false for unbound keys
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Intent, bool) {
	return kt.lookup(ev.Key(), ev.Rune())
}

func (kt *KeyTable) lookup(key tcell.Key, r rune) (Intent, bool) {
	if key == tcell.KeyRune {
		in, ok := kt.Runes[r]
		return in, ok
	}
	in, ok := kt.SpecialKeys[key]
	return in, ok
}
