package input

import (
	"time"

	"github.com/lixenwraith/orrery/camera"
)

// DefaultHoldWindow is how long a key counts as held after its last press or repeat
// Terminals report no key release, so holds are inferred from auto-repeat
const DefaultHoldWindow = 150 * time.Millisecond

// KeyState tracks inferred held keys for continuous camera motion
type KeyState struct {
	window time.Duration
	last   [heldKeyCount]time.Time
}

// NewKeyState creates a key state with the given hold window
func NewKeyState(window time.Duration) *KeyState {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyState{window: window}
}

// Press records a press or repeat of k at now
func (s *KeyState) Press(k HeldKey, now time.Time) {
	if k < heldKeyCount {
		s.last[k] = now
	}
}

// Held reports whether k is considered down at now
func (s *KeyState) Held(k HeldKey, now time.Time) bool {
	if k >= heldKeyCount {
		return false
	}
	t := s.last[k]
	return !t.IsZero() && now.Sub(t) <= s.window
}

// Clear releases every key
func (s *KeyState) Clear() {
	s.last = [heldKeyCount]time.Time{}
}

// Motion snapshots held keys as camera controls
func (s *KeyState) Motion(now time.Time) camera.Motion {
	return camera.Motion{
		YawLeft:    s.Held(HeldYawLeft, now),
		YawRight:   s.Held(HeldYawRight, now),
		PitchUp:    s.Held(HeldPitchUp, now),
		PitchDown:  s.Held(HeldPitchDown, now),
		ZoomIn:     s.Held(HeldZoomIn, now),
		ZoomOut:    s.Held(HeldZoomOut, now),
		PanLeft:    s.Held(HeldPanLeft, now),
		PanRight:   s.Held(HeldPanRight, now),
		PanForward: s.Held(HeldPanForward, now),
		PanBack:    s.Held(HeldPanBack, now),
		PanUp:      s.Held(HeldPanUp, now),
		PanDown:    s.Held(HeldPanDown, now),
	}
}
