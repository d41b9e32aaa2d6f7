package engine

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
)

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeRecorder struct {
	frames  int
	focused []string
	ignored []string
}

func (r *fakeRecorder) FrameRendered(time.Duration) { r.frames++ }
func (r *fakeRecorder) FocusStarted(b string)       { r.focused = append(r.focused, b) }
func (r *fakeRecorder) InputIgnored(reason string)  { r.ignored = append(r.ignored, reason) }

type countingCue struct{ plays int }

func (c *countingCue) Play() { c.plays++ }

type captureRenderer struct {
	frames []uint64
	err    error
}

func (c *captureRenderer) Render(f *scene.Frame) error {
	c.frames = append(c.frames, f.Number)
	return c.err
}

func twoBodyRegistry(t *testing.T) *body.Registry {
	t.Helper()
	r, err := body.NewRegistry([]body.Body{
		{Name: "Star", Radius: 2.0},
		{Name: "Home", Radius: 0.16, OrbitalDistance: 7.0, RotationPeriodHours: 24, OrbitalPeriodDays: 365},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func newTestOrchestrator(t *testing.T, reg *body.Registry, opts Options) (*Orchestrator, *MockTimeProvider) {
	t.Helper()
	tp := NewMockTimeProvider(testStart)
	if opts.TimeScale == 0 {
		opts.TimeScale = 3600
	}
	o := NewOrchestrator(reg, tp, opts)
	// Prime the frame timer so the next tick sees real deltas
	if _, ok := o.Tick(nil); !ok {
		t.Fatal("Priming tick must not quit")
	}
	return o, tp
}

func TestFocusSelectionClampsDistance(t *testing.T) {
	reg := twoBodyRegistry(t)
	o, tp := newTestOrchestrator(t, reg, Options{TimeScale: 86400 * 30})

	// Move the body off its start angle first
	tp.Advance(40 * time.Millisecond)
	o.Tick(nil)
	pos := o.Clock().WorldPosition(1)
	if pos.ApproxEqualThreshold(mgl64.Vec3{7, 0, 0}, 1e-6) {
		t.Fatalf("Expected body to have moved, still at %v", pos)
	}

	o.Tick([]input.Intent{{Type: input.IntentFocusBody, Index: 1}})

	f, ok := o.Camera().Focus()
	if !ok {
		t.Fatal("Expected focus transition after selection")
	}
	if f.To.Distance != camera.MinDistance {
		t.Errorf("Expected focusTo.distance %g, got %g", camera.MinDistance, f.To.Distance)
	}
	if f.To.Pan != pos {
		t.Errorf("Expected focusTo.pan %v, got %v", pos, f.To.Pan)
	}
}

func TestFocusOutOfRangeIgnored(t *testing.T) {
	reg := twoBodyRegistry(t)
	rec := &fakeRecorder{}
	cue := &countingCue{}
	o, _ := newTestOrchestrator(t, reg, Options{Recorder: rec, Cue: cue})

	before := o.Camera().Pose()
	frame, ok := o.Tick([]input.Intent{
		{Type: input.IntentFocusBody, Index: 2},
		{Type: input.IntentFocusBody, Index: 8},
		{Type: input.IntentFocusBody, Index: -1},
	})
	if !ok || frame == nil {
		t.Fatal("Out-of-range selection must not stop the loop")
	}
	if o.Camera().Mode() != camera.ModeManual || o.Camera().Pose() != before {
		t.Error("Out-of-range selection must not touch the camera")
	}
	if len(rec.ignored) != 3 || cue.plays != 0 || len(rec.focused) != 0 {
		t.Errorf("Expected 3 ignored and no focus, got ignored=%v focused=%v plays=%d", rec.ignored, rec.focused, cue.plays)
	}

	o.Tick([]input.Intent{{Type: input.IntentFocusBody, Index: 0}})
	if len(rec.focused) != 1 || rec.focused[0] != "Star" || cue.plays != 1 {
		t.Errorf("Expected focus on Star with one chime, got %v, plays=%d", rec.focused, cue.plays)
	}
	if f, _ := o.Camera().Focus(); f.To.Distance != 5 {
		t.Errorf("Expected anchor focus distance 5, got %g", f.To.Distance)
	}
}

func TestResetWhileFocusing(t *testing.T) {
	o, tp := newTestOrchestrator(t, body.Default(), Options{})

	o.Tick([]input.Intent{{Type: input.IntentFocusBody, Index: 5}})
	tp.Advance(camera.FocusDuration / 2)
	o.Tick(nil)
	if o.Camera().Mode() != camera.ModeFocusing {
		t.Fatal("Expected focusing mid-transition")
	}

	frame, _ := o.Tick([]input.Intent{{Type: input.IntentResetCamera}})
	p := o.Camera().Pose()
	if o.Camera().Mode() != camera.ModeManual || p.Distance != 40 || p.Pan != (mgl64.Vec3{}) {
		t.Errorf("Expected manual default pose after reset, got %v %+v", o.Camera().Mode(), p)
	}
	if frame.HUD.Focus != "" {
		t.Errorf("Expected focus label cleared, got %q", frame.HUD.Focus)
	}
}

func TestCommandOrdering(t *testing.T) {
	reg := body.Default()
	o, _ := newTestOrchestrator(t, reg, Options{})

	frame, _ := o.Tick(nil)
	if len(frame.Commands) != reg.Len()+1 {
		t.Fatalf("Expected %d commands, got %d", reg.Len()+1, len(frame.Commands))
	}
	for i := 0; i < reg.Len(); i++ {
		cmd := frame.Commands[i]
		if cmd.Kind != scene.MeshSphere || cmd.Body != i {
			t.Errorf("command %d: expected sphere for body %d, got %v for %d", i, i, cmd.Kind, cmd.Body)
		}
	}
	ring := frame.Commands[reg.Len()]
	if ring.Kind != scene.MeshAnnulus || ring.Body != 6 {
		t.Errorf("Expected ring for Saturn last, got %v for %d", ring.Kind, ring.Body)
	}
	if ring.Position != frame.Commands[6].Position {
		t.Error("Ring must be anchored at its body's position")
	}
	if frame.Commands[0].Slices != AnchorSlices || frame.Commands[1].Slices != BodySlices {
		t.Error("Unexpected tessellation hints")
	}
	if !frame.Commands[0].Emissive || frame.Commands[3].Emissive {
		t.Error("Only the anchor is emissive")
	}

	// Orbit guides precede everything else when enabled
	frame, _ = o.Tick([]input.Intent{{Type: input.IntentToggleOrbits}})
	if len(frame.Commands) != 2*reg.Len() {
		t.Fatalf("Expected %d commands with orbits, got %d", 2*reg.Len(), len(frame.Commands))
	}
	for i := 0; i < reg.Len()-1; i++ {
		if frame.Commands[i].Kind != scene.MeshOrbitGuide {
			t.Errorf("command %d: expected orbit guide, got %v", i, frame.Commands[i].Kind)
		}
	}
	if !frame.HUD.Orbits {
		t.Error("HUD must report orbit guides on")
	}
}

func TestSphereTransform(t *testing.T) {
	reg := twoBodyRegistry(t)
	o, tp := newTestOrchestrator(t, reg, Options{TimeScale: 86400 * 30})

	tp.Advance(40 * time.Millisecond)
	frame, _ := o.Tick(nil)

	cmd := frame.Commands[1]
	want := o.Clock().WorldPosition(1)
	origin := cmd.Model.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	if !origin.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Model must translate the origin to %v, got %v", want, origin)
	}
	if cmd.Position != want {
		t.Errorf("Expected position %v, got %v", want, cmd.Position)
	}
}

func TestHeldKeysMoveCamera(t *testing.T) {
	o, tp := newTestOrchestrator(t, body.Default(), Options{HoldWindow: 200 * time.Millisecond})

	o.Tick([]input.Intent{{Type: input.IntentHold, Key: input.HeldZoomIn}})
	tp.Advance(40 * time.Millisecond)
	o.Tick(nil)

	if got, want := o.Camera().Pose().Distance, 40-camera.ZoomSpeed*0.04; mgl64.Abs(got-want) > 1e-9 {
		t.Errorf("Expected distance %g, got %g", want, got)
	}

	// Beyond the hold window the key is released
	tp.Advance(300 * time.Millisecond)
	o.Tick(nil)
	d := o.Camera().Pose().Distance
	tp.Advance(40 * time.Millisecond)
	o.Tick(nil)
	if o.Camera().Pose().Distance != d {
		t.Error("Released key must not keep zooming")
	}
}

func TestPauseAndTimeScaleIntents(t *testing.T) {
	o, tp := newTestOrchestrator(t, body.Default(), Options{TimeScale: 1000})

	frame, _ := o.Tick([]input.Intent{{Type: input.IntentTogglePause}})
	if !frame.HUD.Paused {
		t.Fatal("Expected paused")
	}
	before := o.Clock().State(3)
	tp.Advance(40 * time.Millisecond)
	o.Tick(nil)
	if o.Clock().State(3) != before {
		t.Error("Paused clock advanced")
	}

	o.Tick([]input.Intent{{Type: input.IntentTogglePause}, {Type: input.IntentFaster}, {Type: input.IntentFaster}})
	if o.Clock().TimeScale() != 4000 {
		t.Errorf("Expected time scale 4000, got %g", o.Clock().TimeScale())
	}
	for range 20 {
		o.Tick([]input.Intent{{Type: input.IntentSlower}})
	}
	if o.Clock().TimeScale() != MinTimeScale {
		t.Errorf("Expected time scale floored at %g, got %g", MinTimeScale, o.Clock().TimeScale())
	}
	for range 40 {
		o.Tick([]input.Intent{{Type: input.IntentFaster}})
	}
	if o.Clock().TimeScale() != MaxTimeScale {
		t.Errorf("Expected time scale capped at %g, got %g", MaxTimeScale, o.Clock().TimeScale())
	}

	// Configured scales below the intent floor
	slow, _ := newTestOrchestrator(t, body.Default(), Options{TimeScale: 0.5})
	slow.Tick([]input.Intent{{Type: input.IntentSlower}})
	if got := slow.Clock().TimeScale(); got != 0.5 {
		t.Errorf("Slower must not raise 0.5, got %g", got)
	}
	slow.Tick([]input.Intent{{Type: input.IntentFaster}})
	if got := slow.Clock().TimeScale(); got != 1 {
		t.Errorf("Expected 0.5 doubled to 1, got %g", got)
	}

	stopped := NewOrchestrator(body.Default(), NewMockTimeProvider(testStart), Options{})
	stopped.Tick([]input.Intent{{Type: input.IntentSlower}})
	if got := stopped.Clock().TimeScale(); got != 0 {
		t.Errorf("Slower must leave a stopped clock at 0, got %g", got)
	}
	stopped.Tick([]input.Intent{{Type: input.IntentFaster}})
	if got := stopped.Clock().TimeScale(); got != MinTimeScale {
		t.Errorf("Expected faster to restart a stopped clock at %g, got %g", MinTimeScale, got)
	}
}

func TestTimeScaleSteps(t *testing.T) {
	tests := []struct {
		scale, faster, slower float64
	}{
		{0, MinTimeScale, 0},
		{0.25, 0.5, 0.25},
		{1, 2, 1},
		{3600, 7200, 1800},
		{MaxTimeScale, MaxTimeScale, MaxTimeScale / 2},
		{2 * MaxTimeScale, 2 * MaxTimeScale, MaxTimeScale},
	}
	for _, tt := range tests {
		if got := faster(tt.scale); got != tt.faster {
			t.Errorf("faster(%g) = %g, want %g", tt.scale, got, tt.faster)
		}
		if got := slower(tt.scale); got != tt.slower {
			t.Errorf("slower(%g) = %g, want %g", tt.scale, got, tt.slower)
		}
	}
}

func TestFocusLabelClearedByManualMotion(t *testing.T) {
	o, tp := newTestOrchestrator(t, body.Default(), Options{HoldWindow: 200 * time.Millisecond})

	frame, _ := o.Tick([]input.Intent{{Type: input.IntentFocusBody, Index: 3}})
	if frame.HUD.Focus != "Earth" {
		t.Fatalf("Expected focus label Earth, got %q", frame.HUD.Focus)
	}

	// Held keys during the transition are ignored and keep the label
	tp.Advance(40 * time.Millisecond)
	frame, _ = o.Tick([]input.Intent{{Type: input.IntentHold, Key: input.HeldYawLeft}})
	if frame.HUD.Mode != camera.ModeFocusing || frame.HUD.Focus != "Earth" {
		t.Errorf("Expected focusing on Earth, got %v %q", frame.HUD.Mode, frame.HUD.Focus)
	}

	tp.Advance(camera.FocusDuration + 300*time.Millisecond)
	frame, _ = o.Tick(nil)
	if frame.HUD.Mode != camera.ModeManual || frame.HUD.Focus != "Earth" {
		t.Errorf("Expected settled on Earth, got %v %q", frame.HUD.Mode, frame.HUD.Focus)
	}

	tp.Advance(40 * time.Millisecond)
	frame, _ = o.Tick([]input.Intent{{Type: input.IntentHold, Key: input.HeldYawLeft}})
	if frame.HUD.Focus != "" {
		t.Errorf("Expected focus label cleared after manual motion, got %q", frame.HUD.Focus)
	}
}

func TestStallIsCapped(t *testing.T) {
	reg := twoBodyRegistry(t)
	o, tp := newTestOrchestrator(t, reg, Options{TimeScale: 1})

	tp.Advance(10 * time.Second)
	o.Tick(nil)
	if got := o.Clock().Elapsed(); got != MaxFrameDelta {
		t.Errorf("Expected a stalled frame to simulate %v, got %v", MaxFrameDelta, got)
	}
}

func TestQuitStopsTick(t *testing.T) {
	o, _ := newTestOrchestrator(t, body.Default(), Options{})
	frame, ok := o.Tick([]input.Intent{{Type: input.IntentQuit}})
	if ok || frame != nil {
		t.Error("Expected quit to stop the loop")
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	o := NewOrchestrator(body.Default(), NewMonotonicTimeProvider(), Options{TimeScale: 3600})
	r := &captureRenderer{}
	rec := &fakeRecorder{}
	o.recorder = rec

	intents := make(chan input.Intent, 4)
	done := make(chan error, 1)
	go func() {
		done <- o.Run(context.Background(), intents, r, time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	intents <- input.Intent{Type: input.IntentQuit}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after quit")
	}
	if len(r.frames) == 0 || rec.frames != len(r.frames) {
		t.Errorf("Expected rendered frames to be recorded, got %d rendered, %d recorded", len(r.frames), rec.frames)
	}
}

func TestRunPropagatesRenderError(t *testing.T) {
	o := NewOrchestrator(body.Default(), NewMonotonicTimeProvider(), Options{TimeScale: 3600})
	boom := errors.New("screen gone")

	err := o.Run(context.Background(), make(chan input.Intent), &captureRenderer{err: boom}, time.Millisecond)
	if !errors.Is(err, boom) {
		t.Errorf("Expected render error, got %v", err)
	}
}

func TestRunContextCancel(t *testing.T) {
	o := NewOrchestrator(body.Default(), NewMonotonicTimeProvider(), Options{TimeScale: 3600})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := o.Run(ctx, make(chan input.Intent), &captureRenderer{}, time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestLoadTextures(t *testing.T) {
	reg := body.Default()

	tex, err := LoadTextures(reg, asset.NewLibrary(asset.Embedded()))
	if err != nil {
		t.Fatalf("LoadTextures failed: %v", err)
	}
	for i := range reg.Len() {
		if tex.Surface[i] == asset.NoTexture {
			t.Errorf("body %d has no surface texture", i)
		}
	}
	if tex.Ring[6] == asset.NoTexture || tex.Ring[3] != asset.NoTexture {
		t.Error("Only Saturn should carry a ring texture")
	}

	_, err = LoadTextures(reg, asset.NewLibrary(fstest.MapFS{}))
	if !errors.Is(err, asset.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound for empty asset set, got %v", err)
	}
}
