package sim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/soniakeys/meeus/v3/julian"

	"github.com/lixenwraith/orrery/body"
)

const secondsPerDay = 86400

// State is the angular state of one body, both angles in [0, 360)
type State struct {
	OrbitDegrees    float64
	RotationDegrees float64
}

// Clock advances per-body angular state from real frame deltas
// States are indexed by registry index
type Clock struct {
	registry  *body.Registry
	states    []State
	timeScale float64
	paused    bool

	epoch   time.Time
	elapsed float64 // simulated seconds
}

// NewClock creates a clock with all angles at zero
func NewClock(registry *body.Registry, timeScale float64, epoch time.Time) *Clock {
	return &Clock{
		registry:  registry,
		states:    make([]State, registry.Len()),
		timeScale: math.Max(0, timeScale),
		epoch:     epoch,
	}
}

// Advance applies realDelta seconds of wall time, scaled by the time scale
func (c *Clock) Advance(realDelta float64) {
	if c.paused || realDelta <= 0 {
		return
	}
	simSeconds := realDelta * c.timeScale
	c.elapsed += simSeconds

	for i, b := range c.registry.All {
		s := &c.states[i]
		if rate := b.OrbitRate(); rate != 0 {
			s.OrbitDegrees = Normalize(s.OrbitDegrees + rate*simSeconds)
		}
		if rate := b.RotationRate(); rate != 0 {
			s.RotationDegrees = Normalize(s.RotationDegrees + rate*simSeconds)
		}
	}
}

// Normalize reduces an angle in degrees into [0, 360)
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -tiny + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// State returns the angular state of body i
func (c *Clock) State(i int) State {
	return c.states[i]
}

// WorldPosition returns the body's position on its XZ orbit circle, anchor at origin
func (c *Clock) WorldPosition(i int) mgl64.Vec3 {
	b, err := c.registry.At(i)
	if err != nil || b.OrbitalDistance == 0 {
		return mgl64.Vec3{}
	}
	a := mgl64.DegToRad(c.states[i].OrbitDegrees)
	return mgl64.Vec3{math.Cos(a) * b.OrbitalDistance, 0, math.Sin(a) * b.OrbitalDistance}
}

// TimeScale returns simulated seconds per real second
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// SetTimeScale sets the multiplier, negative values clamp to zero
func (c *Clock) SetTimeScale(scale float64) {
	c.timeScale = math.Max(0, scale)
}

// Pause freezes all angles until Resume
func (c *Clock) Pause() {
	c.paused = true
}

// Resume continues advancing
func (c *Clock) Resume() {
	c.paused = false
}

// IsPaused returns pause state
func (c *Clock) IsPaused() bool {
	return c.paused
}

// Elapsed returns total simulated time, saturating at the largest Duration
func (c *Clock) Elapsed() time.Duration {
	ns := c.elapsed * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// ElapsedSeconds returns total simulated time without the Duration range limit
func (c *Clock) ElapsedSeconds() float64 {
	return c.elapsed
}

// Epoch returns the calendar instant at zero elapsed time
func (c *Clock) Epoch() time.Time {
	return c.epoch
}

// Now returns the simulated calendar instant
// Whole days and the remainder are added separately so centuries of simulated time stay in range
func (c *Clock) Now() time.Time {
	days := math.Floor(c.elapsed / secondsPerDay)
	rem := c.elapsed - days*secondsPerDay
	t := c.epoch.UTC().AddDate(0, 0, int(days)).Add(time.Duration(rem * float64(time.Second)))
	return t.In(c.epoch.Location())
}

// JulianDay returns the Julian Day of the simulated instant
func (c *Clock) JulianDay() float64 {
	return julian.TimeToJD(c.epoch) + c.elapsed/secondsPerDay
}
