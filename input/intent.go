package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // Escape, Ctrl+C, window close
	IntentResize // Terminal resize event

	// Camera
	IntentResetCamera // r
	IntentFocusBody   // 1-9, Index = digit-1
	IntentHold        // Continuous camera control, Key identifies which

	// Simulation
	IntentTogglePause  // p, space
	IntentSlower       // [
	IntentFaster       // ]
	IntentToggleOrbits // o
)

func (t IntentType) String() string {
	switch t {
	case IntentNone:
		return "none"
	case IntentQuit:
		return "quit"
	case IntentResize:
		return "resize"
	case IntentResetCamera:
		return "reset"
	case IntentFocusBody:
		return "focus"
	case IntentHold:
		return "hold"
	case IntentTogglePause:
		return "pause"
	case IntentSlower:
		return "slower"
	case IntentFaster:
		return "faster"
	case IntentToggleOrbits:
		return "orbits"
	default:
		return "unknown"
	}
}

// HeldKey identifies a continuous camera control
type HeldKey uint8

const (
	HeldYawLeft HeldKey = iota
	HeldYawRight
	HeldPitchUp
	HeldPitchDown
	HeldZoomIn
	HeldZoomOut
	HeldPanLeft
	HeldPanRight
	HeldPanForward
	HeldPanBack
	HeldPanUp
	HeldPanDown

	heldKeyCount
)

// Intent is a parsed input action
type Intent struct {
	Type  IntentType
	Index int     // IntentFocusBody
	Key   HeldKey // IntentHold
}
