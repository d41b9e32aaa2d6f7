package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/camera"
)

// MeshKind selects the primitive a backend draws for a command
type MeshKind uint8

const (
	MeshSphere MeshKind = iota
	MeshAnnulus
	MeshOrbitGuide
)

func (k MeshKind) String() string {
	switch k {
	case MeshSphere:
		return "sphere"
	case MeshAnnulus:
		return "annulus"
	case MeshOrbitGuide:
		return "orbit"
	default:
		return "unknown"
	}
}

// Command is one draw descriptor
// Model maps the primitive's local frame (centered at origin, Y up) into world space
// Sphere uses Radius/Slices/Stacks, Annulus uses Inner/Outer/Slices, OrbitGuide uses Radius/Segments
type Command struct {
	Kind     MeshKind
	Body     int
	Model    mgl64.Mat4
	Position mgl64.Vec3
	Texture  asset.Handle

	Radius   float64
	Inner    float64
	Outer    float64
	Slices   int
	Stacks   int
	Segments int

	Emissive bool
}

// HUD carries status values for an overlay line
type HUD struct {
	SimTime   time.Time
	JulianDay float64
	TimeScale float64
	Paused    bool
	Mode      camera.Mode
	Focus     string
	Orbits    bool
	FPS       float64
}

// Frame is everything a backend needs to draw one tick
type Frame struct {
	Number   uint64
	Eye      mgl64.Vec3
	Target   mgl64.Vec3
	View     mgl64.Mat4
	Light    mgl64.Vec3
	Commands []Command
	HUD      HUD
}

// Reset clears commands while keeping capacity
func (f *Frame) Reset() {
	f.Commands = f.Commands[:0]
}

// Add appends a command
func (f *Frame) Add(cmd Command) {
	f.Commands = append(f.Commands, cmd)
}

// Renderer consumes frames
type Renderer interface {
	Render(f *Frame) error
}

// SphereModel composes translate, tilt about Z, then spin about Y
func SphereModel(pos mgl64.Vec3, tiltDeg, spinDeg float64) mgl64.Mat4 {
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(tiltDeg))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(spinDeg)))
}

// RingModel composes translate then tilt about X
func RingModel(pos mgl64.Vec3, tiltDeg float64) mgl64.Mat4 {
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(tiltDeg)))
}
