package body

// Saturn ring geometry
const (
	RingInnerScale = 1.2
	RingOuterScale = 3.0
	RingTilt       = 20.0
)

// DefaultBodies returns the Sun and the eight planets in scene units
// Radii and distances are compressed for visibility; periods are real
func DefaultBodies() []Body {
	return []Body{
		{Name: "Sun", Texture: "textures/sun.png", Radius: 2.0, OrbitalDistance: 0, RotationPeriodHours: 609.12, OrbitalPeriodDays: 0, AxialTiltDegrees: 7.25, Emissive: true},
		{Name: "Mercury", Texture: "textures/mercury.png", Radius: 0.06, OrbitalDistance: 3.5, RotationPeriodHours: 1407.6, OrbitalPeriodDays: 88, AxialTiltDegrees: 0.03},
		{Name: "Venus", Texture: "textures/venus.png", Radius: 0.15, OrbitalDistance: 5.0, RotationPeriodHours: -5832.5, OrbitalPeriodDays: 225, AxialTiltDegrees: 2.64},
		{Name: "Earth", Texture: "textures/earth.png", Radius: 0.16, OrbitalDistance: 7.0, RotationPeriodHours: 23.93, OrbitalPeriodDays: 365, AxialTiltDegrees: 23.44},
		{Name: "Mars", Texture: "textures/mars.png", Radius: 0.09, OrbitalDistance: 9.0, RotationPeriodHours: 24.6, OrbitalPeriodDays: 687, AxialTiltDegrees: 25.19},
		{Name: "Jupiter", Texture: "textures/jupiter.png", Radius: 0.9, OrbitalDistance: 12.5, RotationPeriodHours: 9.9, OrbitalPeriodDays: 4333, AxialTiltDegrees: 3.13},
		{
			Name: "Saturn", Texture: "textures/saturn.png", Radius: 0.75, OrbitalDistance: 16.0, RotationPeriodHours: 10.7, OrbitalPeriodDays: 10759, AxialTiltDegrees: 26.73,
			Ring: &Ring{Texture: "textures/saturn_ring.png", InnerScale: RingInnerScale, OuterScale: RingOuterScale, TiltDegrees: RingTilt},
		},
		{Name: "Uranus", Texture: "textures/uranus.png", Radius: 0.40, OrbitalDistance: 19.0, RotationPeriodHours: -17.2, OrbitalPeriodDays: 30687, AxialTiltDegrees: 82.23},
		{Name: "Neptune", Texture: "textures/neptune.png", Radius: 0.39, OrbitalDistance: 22.0, RotationPeriodHours: 16.1, OrbitalPeriodDays: 60190, AxialTiltDegrees: 28.32},
	}
}

// Default returns the registry built from DefaultBodies
func Default() *Registry {
	r, err := NewRegistry(DefaultBodies())
	if err != nil {
		panic(err)
	}
	return r
}
