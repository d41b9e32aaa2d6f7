package body

// Seconds per unit of the period fields
const (
	SecondsPerHour = 3600.0
	SecondsPerDay  = 86400.0
)

// Ring describes an annulus drawn around a body in its own tilted plane
// Inner and outer radii are scales of the body radius
type Ring struct {
	Texture     string
	InnerScale  float64
	OuterScale  float64
	TiltDegrees float64
}

// Body is an immutable celestial body definition
// RotationPeriodHours is signed: negative is retrograde, zero disables spin
// OrbitalPeriodDays of zero marks the anchor
type Body struct {
	Name                string
	Texture             string
	Radius              float64
	OrbitalDistance     float64
	RotationPeriodHours float64
	OrbitalPeriodDays   float64
	AxialTiltDegrees    float64
	Emissive            bool
	Ring                *Ring
}

// IsAnchor reports whether the body is the non-orbiting center of the system
func (b *Body) IsAnchor() bool {
	return b.OrbitalPeriodDays == 0 && b.OrbitalDistance == 0
}

// OrbitRate returns orbital advance in degrees per simulated second
func (b *Body) OrbitRate() float64 {
	if b.OrbitalPeriodDays <= 0 {
		return 0
	}
	return 360.0 / (b.OrbitalPeriodDays * SecondsPerDay)
}

// RotationRate returns signed spin in degrees per simulated second
func (b *Body) RotationRate() float64 {
	switch {
	case b.RotationPeriodHours > 0:
		return 360.0 / (b.RotationPeriodHours * SecondsPerHour)
	case b.RotationPeriodHours < 0:
		return -360.0 / (-b.RotationPeriodHours * SecondsPerHour)
	default:
		return 0
	}
}

// RingRadii returns absolute inner and outer ring radii, ok is false without a ring
func (b *Body) RingRadii() (inner, outer float64, ok bool) {
	if b.Ring == nil {
		return 0, 0, false
	}
	return b.Radius * b.Ring.InnerScale, b.Radius * b.Ring.OuterScale, true
}

// FocusDistance is the camera distance requested when focusing this body
func (b *Body) FocusDistance() float64 {
	return b.Radius * 2.5
}
