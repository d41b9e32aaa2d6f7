package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Defaults restored by Reset
const (
	DefaultDistance = 40.0
	DefaultYaw      = 0.0
	DefaultPitch    = -20.0

	MinDistance = 1.5
	MaxPitch    = 89.0

	FocusDuration = 800 * time.Millisecond
)

// Manual motion rates
const (
	YawSpeed   = 60.0 // deg/s
	PitchSpeed = 40.0 // deg/s
	ZoomSpeed  = 30.0 // units/s
	PanSpeed   = 10.0 // units/s at PanReference distance

	PanReference = 20.0
)

// Mode is the controller state discriminator
type Mode uint8

const (
	ModeManual Mode = iota
	ModeFocusing
)

func (m Mode) String() string {
	switch m {
	case ModeManual:
		return "manual"
	case ModeFocusing:
		return "focusing"
	default:
		return "unknown"
	}
}

// Clock supplies the time used to drive focus transitions
type Clock interface {
	Now() time.Time
}

// Pose is the orbit-style viewpoint: eye sits Distance away from Pan along yaw/pitch
type Pose struct {
	Distance float64
	Yaw      float64 // degrees
	Pitch    float64 // degrees
	Pan      mgl64.Vec3
}

// DefaultPose returns the reset viewpoint
func DefaultPose() Pose {
	return Pose{Distance: DefaultDistance, Yaw: DefaultYaw, Pitch: DefaultPitch}
}

// Eye returns the world position of the camera for this pose
func (p Pose) Eye() mgl64.Vec3 {
	y := mgl64.DegToRad(p.Yaw)
	pt := mgl64.DegToRad(p.Pitch)
	offset := mgl64.Vec3{
		math.Cos(pt) * math.Sin(y),
		math.Sin(pt),
		math.Cos(pt) * math.Cos(y),
	}
	return p.Pan.Add(offset.Mul(p.Distance))
}

// Lerp interpolates every field component-wise
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Distance: lerp(p.Distance, to.Distance, t),
		Yaw:      lerp(p.Yaw, to.Yaw, t),
		Pitch:    lerp(p.Pitch, to.Pitch, t),
		Pan: mgl64.Vec3{
			lerp(p.Pan[0], to.Pan[0], t),
			lerp(p.Pan[1], to.Pan[1], t),
			lerp(p.Pan[2], to.Pan[2], t),
		},
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Focus is an in-flight transition, present only while focusing
type Focus struct {
	From     Pose
	To       Pose
	Start    time.Time
	Duration time.Duration
}

// progress returns normalized elapsed time, may exceed 1
func (f *Focus) progress(now time.Time) float64 {
	if f.Duration <= 0 {
		return 1
	}
	return float64(now.Sub(f.Start)) / float64(f.Duration)
}

// Motion is the set of manual controls held during a frame
type Motion struct {
	YawLeft, YawRight   bool
	PitchUp, PitchDown  bool
	ZoomIn, ZoomOut     bool
	PanLeft, PanRight   bool
	PanForward, PanBack bool
	PanUp, PanDown      bool
}

// Controller owns the camera pose and its Manual/Focusing state machine
// A nil focus is Manual; focus fields cannot exist outside a transition
type Controller struct {
	pose  Pose
	focus *Focus
	clock Clock
}

// NewController creates a controller at the default pose in Manual mode
func NewController(clock Clock) *Controller {
	return &Controller{
		pose:  DefaultPose(),
		clock: clock,
	}
}

// Mode returns the current state
func (c *Controller) Mode() Mode {
	if c.focus != nil {
		return ModeFocusing
	}
	return ModeManual
}

// Pose returns the current viewpoint
func (c *Controller) Pose() Pose {
	return c.pose
}

// Focus returns the active transition, ok is false in Manual mode
func (c *Controller) Focus() (Focus, bool) {
	if c.focus == nil {
		return Focus{}, false
	}
	return *c.focus, true
}

// Reset forces Manual mode and restores the default pose from any state
func (c *Controller) Reset() {
	c.focus = nil
	c.pose = DefaultPose()
}

// StartFocus begins a transition toward target, re-basing from the current pose
// Yaw and pitch are kept; distance is clamped to MinDistance
func (c *Controller) StartFocus(target mgl64.Vec3, desiredDistance float64) {
	to := c.pose
	to.Distance = math.Max(desiredDistance, MinDistance)
	to.Pan = target

	c.focus = &Focus{
		From:     c.pose,
		To:       to,
		Start:    c.clock.Now(),
		Duration: FocusDuration,
	}
}

// Update advances the active mode: interpolation while focusing, motion otherwise
// Motion is ignored during a transition
func (c *Controller) Update(dt float64, m Motion) {
	if c.focus != nil {
		c.updateFocus()
		return
	}
	c.applyMotion(dt, m)
}

func (c *Controller) updateFocus() {
	t := c.focus.progress(c.clock.Now())
	if t >= 1 {
		c.pose = c.focus.To
		c.focus = nil
		return
	}
	if t < 0 {
		t = 0
	}
	c.pose = c.focus.From.Lerp(c.focus.To, t)
}

func (c *Controller) applyMotion(dt float64, m Motion) {
	p := &c.pose

	if m.YawLeft {
		p.Yaw -= YawSpeed * dt
	}
	if m.YawRight {
		p.Yaw += YawSpeed * dt
	}
	if m.PitchUp {
		p.Pitch += PitchSpeed * dt
	}
	if m.PitchDown {
		p.Pitch -= PitchSpeed * dt
	}
	p.Pitch = mgl64.Clamp(p.Pitch, -MaxPitch, MaxPitch)

	if m.ZoomIn {
		p.Distance -= ZoomSpeed * dt
	}
	if m.ZoomOut {
		p.Distance += ZoomSpeed * dt
	}
	p.Distance = math.Max(p.Distance, MinDistance)

	// Pan speed scales with zoom so movement feels constant on screen
	step := PanSpeed * dt * (p.Distance / PanReference)
	if m.PanLeft {
		p.Pan[0] -= step
	}
	if m.PanRight {
		p.Pan[0] += step
	}
	if m.PanForward {
		p.Pan[2] -= step
	}
	if m.PanBack {
		p.Pan[2] += step
	}
	if m.PanUp {
		p.Pan[1] += step
	}
	if m.PanDown {
		p.Pan[1] -= step
	}
}

// Eye returns the camera's world position
func (c *Controller) Eye() mgl64.Vec3 {
	return c.pose.Eye()
}

// Target returns the look-at point
func (c *Controller) Target() mgl64.Vec3 {
	return c.pose.Pan
}

// View returns the look-at matrix from Eye toward Target with +Y up
func (c *Controller) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.pose.Pan, mgl64.Vec3{0, 1, 0})
}
