package motion

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type motionFixture struct {
	scene    *Scene
	node     *Node
	settings *Settings
	ctrl     *Controller
}

// newMotionFixture builds a 40x20 node named "logo" at the origin and a
// controller moving it to (100, 50) over 2 seconds.
func newMotionFixture(t *testing.T, behavior Behavior, triggers *Triggers) *motionFixture {
	t.Helper()
	node := NewNode("logo", 40, 20)
	scene := newTestScene("main", node)

	s := NewSettings()
	Defaults(KindRoundTrip, s)
	s.SetString(KeySource, "logo")
	s.SetInt(KeyBehavior, int64(behavior))
	s.SetInt(KeyDstX, 100)
	s.SetInt(KeyDstY, 50)
	s.SetFloat(KeyDuration, 2.0)

	return &motionFixture{
		scene:    scene,
		node:     node,
		settings: s,
		ctrl:     NewController("slide", scene, s, triggers),
	}
}

func tickN(c *Controller, n int, dt float64) {
	for range n {
		c.Tick(dt)
	}
}

func assertPos(t *testing.T, n *Node, x, y float64) {
	t.Helper()
	if n.X != x || n.Y != y {
		t.Errorf("position = (%v, %v), want (%v, %v)", n.X, n.Y, x, y)
	}
}

// --- Tick ---

func TestControllerReachesDestinationExactly(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	if !f.ctrl.Forward() {
		t.Fatal("Forward rejected")
	}

	tickN(f.ctrl, 19, 0.1)
	if !f.ctrl.Running() {
		t.Fatal("motion finished early")
	}
	f.ctrl.Tick(0.1)

	assertPos(t, f.node, 100, 50)
	if f.ctrl.Running() {
		t.Error("motion should be finished after 20 ticks")
	}
	if !f.ctrl.AtDestination() {
		t.Error("AtDestination should be true")
	}
	if f.node.Refs() != 0 {
		t.Errorf("Refs = %d, want 0 after completion", f.node.Refs())
	}
}

func TestControllerZeroDurationSnaps(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.settings.SetFloat(KeyDuration, 0)
	f.ctrl.Update(f.settings)

	f.ctrl.Forward()
	f.ctrl.Tick(0)
	assertPos(t, f.node, 100, 50)
	if f.ctrl.Running() {
		t.Error("zero-duration motion should finish on the first tick")
	}
}

func TestControllerMidpoint(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.ctrl.Forward()
	f.ctrl.Tick(1)
	assertPos(t, f.node, 50, 25)

	g := newMotionFixture(t, BehaviorRoundTrip, nil)
	g.settings.SetFloat(KeyAcceleration, 1)
	g.ctrl.Update(g.settings)
	g.ctrl.Forward()
	g.ctrl.Tick(1)
	// Acceleration 1 warps progress 0.5 to 0.25.
	assertPos(t, g.node, 25, 12.5)
}

func TestControllerRoundTripRestoresExactly(t *testing.T) {
	for _, pt := range []PathType{PathLinear, PathQuadratic, PathCubic} {
		t.Run(pt.String(), func(t *testing.T) {
			f := newMotionFixture(t, BehaviorRoundTrip, nil)
			f.node.X, f.node.Y = 7.3, -2.1
			f.node.ScaleX, f.node.ScaleY = 1.5, 0.75
			orig := f.node.Transform()

			f.settings.SetInt(KeyPathType, int64(pt))
			f.settings.SetInt(KeyVariationType, int64(VariationBoth))
			f.settings.SetInt(KeyCtrlX, 300)
			f.settings.SetInt(KeyCtrlY, -40)
			f.settings.SetInt(KeyCtrl2X, -80)
			f.settings.SetInt(KeyCtrl2Y, 90)
			f.settings.SetInt(KeyDstW, 80)
			f.settings.SetInt(KeyDstH, 60)
			f.settings.SetFloat(KeyAcceleration, 0.3)
			f.settings.SetFloat(KeyDuration, 0.7)
			f.ctrl.Update(f.settings)

			if !f.ctrl.Forward() {
				t.Fatal("Forward rejected")
			}
			tickN(f.ctrl, 7, 0.1)
			assertPos(t, f.node, 100, 50)
			if f.node.ScaleX != 2 || f.node.ScaleY != 3 {
				t.Errorf("scale = (%v, %v), want (2, 3)", f.node.ScaleX, f.node.ScaleY)
			}

			if !f.ctrl.Backward() {
				t.Fatal("Backward rejected")
			}
			tickN(f.ctrl, 7, 0.1)
			if got := f.node.Transform(); got != orig {
				t.Errorf("after round trip = %+v, want %+v", got, orig)
			}
			if f.ctrl.AtDestination() || f.ctrl.Running() {
				t.Error("controller should rest at the start")
			}
		})
	}
}

// --- Trigger rules ---

func TestControllerSameDirectionIsNoOp(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	if f.ctrl.Backward() {
		t.Error("Backward from the start side should be rejected")
	}
	f.ctrl.Forward()
	if f.ctrl.Forward() {
		t.Error("Forward while running should be rejected")
	}
	tickN(f.ctrl, 20, 0.1)

	writes := f.node.transformWrites
	before := f.node.Transform()
	if f.ctrl.Forward() {
		t.Error("Forward while resting at the destination should be rejected")
	}
	f.ctrl.Tick(0.1)
	if f.node.transformWrites != writes || f.node.Transform() != before {
		t.Error("rejected trigger changed the transform")
	}
	if !f.ctrl.AtDestination() || f.ctrl.Running() {
		t.Error("rejected trigger changed the state")
	}
}

func TestControllerOneWayReplaysFromStart(t *testing.T) {
	f := newMotionFixture(t, BehaviorOneWay, nil)
	f.node.X, f.node.Y = 10, 10

	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)
	assertPos(t, f.node, 100, 50)
	if f.ctrl.Backward() {
		t.Error("one-way motion has no backward trigger")
	}

	if !f.ctrl.Forward() {
		t.Fatal("one-way motion should replay forward")
	}
	if start, _ := f.ctrl.Path().Start(); start != (Vec2{10, 10}) {
		t.Errorf("replay start = %v, want {10 10}", start)
	}
	tickN(f.ctrl, 20, 0.1)
	assertPos(t, f.node, 100, 50)
}

func TestControllerExplicitStart(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.X, f.node.Y = 500, 500
	f.settings.SetBool(KeyStartSetting, true)
	f.settings.SetInt(KeyStartX, 20)
	f.settings.SetInt(KeyStartY, 30)
	f.ctrl.Update(f.settings)

	f.ctrl.Forward()
	f.ctrl.Tick(0)
	assertPos(t, f.node, 20, 30)
}

func TestControllerUnresolvableTarget(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.settings.SetString(KeySource, "missing")
	f.settings.SetInt(KeySourceItemID, 999999)
	f.ctrl.Update(f.settings)

	if f.ctrl.Forward() {
		t.Error("Forward with an unknown target should be rejected")
	}
	if f.ctrl.Running() || f.ctrl.AtDestination() {
		t.Error("rejected trigger changed the state")
	}
}

func TestControllerZeroSizeRejected(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.BaseWidth, f.node.BaseHeight = 0, 0
	if f.ctrl.Forward() {
		t.Error("Forward on content without size should be rejected")
	}
	if f.ctrl.Running() {
		t.Error("rejected trigger started a motion")
	}
}

func TestControllerResolvesRenamedTargetByID(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.Rename("logo-renamed")

	if !f.ctrl.Forward() {
		t.Fatal("renamed target should resolve by id")
	}
	if got := f.settings.String(KeySource); got != "logo-renamed" {
		t.Errorf("source setting = %q, want %q", got, "logo-renamed")
	}
}

func TestControllerRejectedRenameKeepsSource(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.Rename("logo-renamed")
	f.node.BaseWidth = 0

	if f.ctrl.Forward() {
		t.Fatal("Forward on content without size should be rejected")
	}
	if got := f.settings.String(KeySource); got != "logo" {
		t.Errorf("source setting = %q after rejection, want %q", got, "logo")
	}
	if got := f.ctrl.Config().Source; got != "logo" {
		t.Errorf("config source = %q after rejection, want %q", got, "logo")
	}
}

// --- Recovery ---

func TestControllerRemoveAtDestinationRestores(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.X, f.node.Y = 3, 4
	orig := f.node.Transform()

	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)
	f.ctrl.Remove()
	f.ctrl.Remove()

	if got := f.node.Transform(); got != orig {
		t.Errorf("after Remove = %+v, want %+v", got, orig)
	}
	if f.ctrl.Forward() {
		t.Error("removed controller should reject triggers")
	}
}

func TestControllerRemoveMidFlightReleases(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.ctrl.Forward()
	tickN(f.ctrl, 5, 0.1)
	if f.node.Refs() != 1 {
		t.Fatalf("Refs = %d while running, want 1", f.node.Refs())
	}
	f.ctrl.Remove()
	assertPos(t, f.node, 0, 0)
	if f.node.Refs() != 0 {
		t.Errorf("Refs = %d after Remove, want 0", f.node.Refs())
	}
	if f.ctrl.Running() {
		t.Error("Remove should stop the motion")
	}
}

func TestControllerReconfigureAtDestinationRecovers(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)

	f.settings.SetInt(KeyDstX, 300)
	f.ctrl.Update(f.settings)

	assertPos(t, f.node, 0, 0)
	if f.ctrl.AtDestination() {
		t.Error("reconfigure should reset to the start side")
	}
	if f.settings.Bool(KeyMotionEnd) {
		t.Error("motion_end should be cleared")
	}
	if !f.ctrl.Forward() {
		t.Error("Forward should be accepted after recovery")
	}
}

func TestControllerReconfigureAtStartKeepsTransform(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.X = 42
	f.settings.SetInt(KeyDstX, 300)
	f.ctrl.Update(f.settings)
	if f.node.X != 42 {
		t.Errorf("X = %v, want 42", f.node.X)
	}
}

func TestControllerRetargetMidFlightSnapsOldTarget(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	other := NewNode("other", 10, 10)
	f.scene.AddItem(other)

	f.ctrl.Forward()
	tickN(f.ctrl, 10, 0.1)

	f.settings.SetString(KeySource, "other")
	f.ctrl.Update(f.settings)

	assertPos(t, f.node, 0, 0)
	if f.node.Refs() != 0 {
		t.Errorf("old target Refs = %d, want 0", f.node.Refs())
	}
	if f.ctrl.Running() {
		t.Error("retarget should stop the motion")
	}
	if !f.ctrl.Forward() {
		t.Fatal("Forward on the new target rejected")
	}
	tickN(f.ctrl, 20, 0.1)
	assertPos(t, f.node, 0, 0)
	if other.X != 100 || other.Y != 50 {
		t.Errorf("new target at (%v, %v), want (100, 50)", other.X, other.Y)
	}
}

// --- Persistence ---

func TestControllerPersistsAcrossRestart(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.X, f.node.Y = 5, 6
	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)

	if !f.settings.Bool(KeyMotionEnd) {
		t.Fatal("motion_end not persisted")
	}
	if f.settings.Float(KeyOrgX) != 5 || f.settings.Float(KeyOrgY) != 6 {
		t.Errorf("org = (%v, %v), want (5, 6)",
			f.settings.Float(KeyOrgX), f.settings.Float(KeyOrgY))
	}

	// Restart: a fresh host whose element sits at the destination.
	moved := NewNode("logo", 40, 20)
	moved.X, moved.Y = 100, 50
	scene := newTestScene("main", moved)
	restored := SettingsFrom(f.settings.Values())
	Defaults(KindRoundTrip, restored)
	c := NewController("slide", scene, restored, nil)

	if !c.AtDestination() {
		t.Fatal("restored controller should rest at the destination")
	}
	if c.Forward() {
		t.Error("Forward should be rejected after restore")
	}
	if !c.Backward() {
		t.Fatal("Backward should be accepted after restore")
	}
	tickN(c, 20, 0.1)
	assertPos(t, moved, 5, 6)
}

func TestControllerOneWayDoesNotPersist(t *testing.T) {
	f := newMotionFixture(t, BehaviorOneWay, nil)
	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)
	if f.settings.Bool(KeyMotionEnd) {
		t.Error("one-way motion should not persist motion_end")
	}
}

func TestControllerSave(t *testing.T) {
	tr := newTestTriggers(fakeKeys{})
	f := newMotionFixture(t, BehaviorRoundTrip, tr)
	f.ctrl.Forward()
	tickN(f.ctrl, 20, 0.1)

	out := NewSettings()
	f.ctrl.Save(out)
	if out.String(KeySceneName) != "main" {
		t.Errorf("scene_name = %q, want main", out.String(KeySceneName))
	}
	if !out.Bool(KeyMotionEnd) {
		t.Error("motion_end not saved")
	}
	if !out.Has(KeyForward) || !out.Has(KeyBackward) {
		t.Error("hotkey bindings not saved")
	}
}

// --- Triggers ---

func TestControllerRegistersHotkeys(t *testing.T) {
	tr := newTestTriggers(fakeKeys{})
	f := newMotionFixture(t, BehaviorRoundTrip, tr)

	hk := tr.Hotkeys()
	if len(hk) != 2 {
		t.Fatalf("hotkeys = %d, want 2", len(hk))
	}
	if hk[0].Description != "Forward [ slide ]" || hk[1].Description != "Backward [ slide ]" {
		t.Errorf("descriptions = %q, %q", hk[0].Description, hk[1].Description)
	}

	f.settings.SetInt(KeyBehavior, int64(BehaviorOneWay))
	f.ctrl.Update(f.settings)
	if n := len(tr.Hotkeys()); n != 1 {
		t.Errorf("one-way hotkeys = %d, want 1", n)
	}

	f.settings.SetInt(KeyBehavior, int64(BehaviorSceneSwitch))
	f.ctrl.Update(f.settings)
	if n := len(tr.Hotkeys()); n != 0 {
		t.Errorf("scene-switch hotkeys = %d, want 0", n)
	}

	f.ctrl.Remove()
	if n := len(tr.sceneHandlers); n != 0 {
		t.Errorf("scene handlers after Remove = %d, want 0", n)
	}
}

func TestControllerHotkeyBindingsRoundTrip(t *testing.T) {
	keys := fakeKeys{}
	tr := newTestTriggers(keys)
	node := NewNode("logo", 40, 20)
	scene := newTestScene("main", node)

	s := NewSettings()
	Defaults(KindRoundTrip, s)
	s.SetString(KeySource, "logo")
	s.SetInt(KeyDstX, 100)
	s.SetStrings(KeyForward, []string{"ControlLeft+F"})
	c := NewController("slide", scene, s, tr)

	keys[ebiten.KeyControlLeft] = true
	keys[ebiten.KeyF] = true
	tr.Poll()
	if !c.Running() {
		t.Fatal("bound hotkey should trigger the motion")
	}

	c.Remove()
	if got := s.Strings(KeyForward); len(got) != 1 || got[0] != "ControlLeft+F" {
		t.Errorf("saved forward binding = %v", got)
	}
	if len(tr.Hotkeys()) != 0 {
		t.Error("Remove should unregister hotkeys")
	}
}

func TestControllerSceneSwitch(t *testing.T) {
	tr := newTestTriggers(fakeKeys{})
	f := newMotionFixture(t, BehaviorSceneSwitch, tr)
	f.node.X, f.node.Y = 500, 500
	f.settings.SetInt(KeyStartX, 10)
	f.settings.SetInt(KeyStartY, 20)
	f.ctrl.Update(f.settings)

	if f.ctrl.Forward() || f.ctrl.Backward() {
		t.Error("manual triggers should be disabled for scene switching")
	}

	tr.SetCurrentScene(f.scene)
	if !f.ctrl.Running() {
		t.Fatal("activating the scene should start the motion")
	}
	tickN(f.ctrl, 20, 0.1)
	assertPos(t, f.node, 100, 50)
	if !f.settings.Bool(KeyMotionEnd) {
		t.Error("scene switch should persist motion_end")
	}

	tr.SetCurrentScene(NewScene("other"))
	// Snaps, no animation, to the configured start.
	assertPos(t, f.node, 10, 20)
	if f.ctrl.AtDestination() {
		t.Error("deactivation should reset to the start side")
	}
}

func TestControllerSceneSwitchBySavedName(t *testing.T) {
	tr := newTestTriggers(fakeKeys{})
	node := NewNode("logo", 40, 20)
	program := newTestScene("", node)

	s := NewSettings()
	Defaults(KindMotion, s)
	s.SetString(KeySource, "logo")
	s.SetInt(KeyBehavior, int64(BehaviorSceneSwitch))
	s.SetString(KeySceneName, "main")
	s.SetInt(KeyDstX, 100)
	c := NewController("slide", program, s, tr)

	tr.SetCurrentScene(NewScene("elsewhere"))
	if c.Running() || node.transformWrites != 0 {
		t.Error("an unrelated scene should not move the element")
	}
	tr.SetCurrentScene(NewScene("main"))
	if !c.Running() {
		t.Error("activating the saved scene name should start the motion")
	}
}

// --- Destination grab ---

func TestControllerGrabDestination(t *testing.T) {
	f := newMotionFixture(t, BehaviorRoundTrip, nil)
	f.node.X, f.node.Y = 33, 44
	f.node.ScaleX, f.node.ScaleY = 2, 0.5

	if !f.ctrl.GrabDestination() {
		t.Fatal("GrabDestination failed")
	}
	s := f.settings
	if s.Int(KeyDstX) != 33 || s.Int(KeyDstY) != 44 || s.Int(KeyDstW) != 80 || s.Int(KeyDstH) != 10 {
		t.Errorf("dst = (%d, %d, %d, %d), want (33, 44, 80, 10)",
			s.Int(KeyDstX), s.Int(KeyDstY), s.Int(KeyDstW), s.Int(KeyDstH))
	}
	if cfg := f.ctrl.Config(); cfg.DstPos != (Vec2{33, 44}) {
		t.Errorf("config DstPos = %v, want {33 44}", cfg.DstPos)
	}
}
