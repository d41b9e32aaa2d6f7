package engine

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/sim"
)

// Frame pacing
const (
	// FrameUpdateInterval is the default frame interval (~60 FPS)
	FrameUpdateInterval = time.Second / 60

	// MaxFrameDelta caps simulated time per frame (20 FPS equivalent)
	MaxFrameDelta = 50 * time.Millisecond
)

// Time scale bounds for faster/slower intents
const (
	MinTimeScale = 1.0
	MaxTimeScale = 1e7
)

// Tessellation hints carried on commands
const (
	AnchorSlices  = 40
	AnchorStacks  = 40
	BodySlices    = 32
	BodyStacks    = 16
	RingSlices    = 360
	OrbitSegments = 128
)

// Recorder receives frame loop telemetry
type Recorder interface {
	FrameRendered(d time.Duration)
	FocusStarted(body string)
	InputIgnored(reason string)
}

// Cue is an audible notification
type Cue interface {
	Play()
}

type nopRecorder struct{}

func (nopRecorder) FrameRendered(time.Duration) {}
func (nopRecorder) FocusStarted(string)         {}
func (nopRecorder) InputIgnored(string)         {}

type nopCue struct{}

func (nopCue) Play() {}

// Options configures an Orchestrator; zero values fall back to defaults
type Options struct {
	TimeScale  float64
	Epoch      time.Time
	HoldWindow time.Duration
	ShowOrbits bool
	Textures   Textures
	Recorder   Recorder
	Cue        Cue
}

// Orchestrator owns per-frame state and produces one command list per tick
// Only the goroutine calling Tick may touch camera and body state
type Orchestrator struct {
	registry *body.Registry
	clock    *sim.Clock
	camera   *camera.Controller
	keys     *input.KeyState
	timer    *FrameTimer
	time     TimeProvider
	textures Textures
	recorder Recorder
	cue      Cue

	showOrbits bool
	focusName  string
	fps        float64
	quit       bool

	frame scene.Frame
}

// NewOrchestrator wires the simulation clock and camera for registry
func NewOrchestrator(registry *body.Registry, tp TimeProvider, opts Options) *Orchestrator {
	if opts.Epoch.IsZero() {
		opts.Epoch = tp.Now()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Cue == nil {
		opts.Cue = nopCue{}
	}

	return &Orchestrator{
		registry:   registry,
		clock:      sim.NewClock(registry, opts.TimeScale, opts.Epoch),
		camera:     camera.NewController(tp),
		keys:       input.NewKeyState(opts.HoldWindow),
		timer:      NewFrameTimer(MaxFrameDelta),
		time:       tp,
		textures:   opts.Textures,
		recorder:   opts.Recorder,
		cue:        opts.Cue,
		showOrbits: opts.ShowOrbits,
		frame: scene.Frame{
			Commands: make([]scene.Command, 0, 2*registry.Len()+1),
		},
	}
}

// Camera exposes the controller for inspection
func (o *Orchestrator) Camera() *camera.Controller {
	return o.camera
}

// Clock exposes the simulation clock for inspection
func (o *Orchestrator) Clock() *sim.Clock {
	return o.clock
}

// Tick runs one frame: dispatch, camera, clock, transforms, commands
// Returns false once a quit intent has been seen
func (o *Orchestrator) Tick(intents []input.Intent) (*scene.Frame, bool) {
	now := o.time.Now()
	dt := o.timer.Step(now)

	for _, in := range intents {
		o.dispatch(in, now)
	}
	if o.quit {
		return nil, false
	}

	motion := o.keys.Motion(now)
	if o.camera.Mode() == camera.ModeManual && motion != (camera.Motion{}) {
		// Moving off a finished focus leaves no target to report
		o.focusName = ""
	}
	o.camera.Update(dt, motion)
	o.clock.Advance(dt)
	o.updateFPS(dt)
	o.build()

	return &o.frame, true
}

func (o *Orchestrator) dispatch(in input.Intent, now time.Time) {
	switch in.Type {
	case input.IntentQuit:
		o.quit = true

	case input.IntentResetCamera:
		o.camera.Reset()
		o.keys.Clear()
		o.focusName = ""

	case input.IntentFocusBody:
		o.focus(in.Index)

	case input.IntentHold:
		o.keys.Press(in.Key, now)

	case input.IntentTogglePause:
		if o.clock.IsPaused() {
			o.clock.Resume()
		} else {
			o.clock.Pause()
		}

	case input.IntentFaster:
		o.clock.SetTimeScale(faster(o.clock.TimeScale()))

	case input.IntentSlower:
		o.clock.SetTimeScale(slower(o.clock.TimeScale()))

	case input.IntentToggleOrbits:
		o.showOrbits = !o.showOrbits

	case input.IntentResize:
		// Backend re-reads its size every frame

	default:
		o.recorder.InputIgnored("unbound")
		log.Printf("input ignored: %v", in.Type)
	}
}

// faster doubles scale up to MaxTimeScale; a stopped clock restarts at MinTimeScale
// Scales configured above the cap are left alone rather than pulled down
func faster(scale float64) float64 {
	if scale <= 0 {
		return MinTimeScale
	}
	return math.Min(scale*2, math.Max(scale, MaxTimeScale))
}

// slower halves scale down to MinTimeScale, never raising a scale already below it
func slower(scale float64) float64 {
	return math.Max(scale/2, math.Min(scale, MinTimeScale))
}

// focus starts a transition to body i at its current position; bad indices are dropped
func (o *Orchestrator) focus(i int) {
	b, err := o.registry.At(i)
	if err != nil {
		o.recorder.InputIgnored("focus_out_of_range")
		log.Printf("focus ignored: %v", err)
		return
	}

	pos := o.clock.WorldPosition(i)
	o.camera.StartFocus(pos, b.FocusDistance())
	o.focusName = b.Name
	o.recorder.FocusStarted(b.Name)
	o.cue.Play()
	log.Printf("focus %s at (%.2f, %.2f, %.2f)", b.Name, pos.X(), pos.Y(), pos.Z())
}

func (o *Orchestrator) updateFPS(dt float64) {
	if dt <= 0 {
		return
	}
	inst := 1 / dt
	if o.fps == 0 {
		o.fps = inst
		return
	}
	o.fps += (inst - o.fps) * 0.1
}

// build emits orbit guides, then spheres, then rings
func (o *Orchestrator) build() {
	f := &o.frame
	f.Reset()
	f.Number++
	f.Eye = o.camera.Eye()
	f.Target = o.camera.Target()
	f.View = o.camera.View()
	f.Light = o.clock.WorldPosition(0)

	if o.showOrbits {
		for i, b := range o.registry.All {
			if b.OrbitalDistance == 0 {
				continue
			}
			f.Add(scene.Command{
				Kind:     scene.MeshOrbitGuide,
				Body:     i,
				Model:    mgl64.Ident4(),
				Texture:  asset.NoTexture,
				Radius:   b.OrbitalDistance,
				Segments: OrbitSegments,
			})
		}
	}

	for i, b := range o.registry.All {
		pos := o.clock.WorldPosition(i)
		st := o.clock.State(i)
		slices, stacks := BodySlices, BodyStacks
		if b.IsAnchor() {
			slices, stacks = AnchorSlices, AnchorStacks
		}
		f.Add(scene.Command{
			Kind:     scene.MeshSphere,
			Body:     i,
			Model:    scene.SphereModel(pos, b.AxialTiltDegrees, st.RotationDegrees),
			Position: pos,
			Texture:  o.textures.surface(i),
			Radius:   b.Radius,
			Slices:   slices,
			Stacks:   stacks,
			Emissive: b.Emissive,
		})
	}

	for i, b := range o.registry.All {
		inner, outer, ok := b.RingRadii()
		if !ok {
			continue
		}
		pos := o.clock.WorldPosition(i)
		f.Add(scene.Command{
			Kind:     scene.MeshAnnulus,
			Body:     i,
			Model:    scene.RingModel(pos, b.Ring.TiltDegrees),
			Position: pos,
			Texture:  o.textures.ring(i),
			Inner:    inner,
			Outer:    outer,
			Slices:   RingSlices,
		})
	}

	f.HUD = scene.HUD{
		SimTime:   o.clock.Now(),
		JulianDay: o.clock.JulianDay(),
		TimeScale: o.clock.TimeScale(),
		Paused:    o.clock.IsPaused(),
		Mode:      o.camera.Mode(),
		Focus:     o.focusName,
		Orbits:    o.showOrbits,
		FPS:       o.fps,
	}
}
