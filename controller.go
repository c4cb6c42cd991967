package motion

import (
	"github.com/rs/zerolog"
)

// Settings keys read and written by a Controller.
const (
	KeyMotionEnd     = "motion_end"
	KeyOrgX          = "org_x"
	KeyOrgY          = "org_y"
	KeyOrgW          = "org_w" // start scale X
	KeyOrgH          = "org_h" // start scale Y
	KeyStartX        = "start_x"
	KeyStartY        = "start_y"
	KeyStartW        = "start_w"
	KeyStartH        = "start_h"
	KeyPathType      = "path_type"
	KeyStartSetting  = "start_setting"
	KeyCtrlX         = "ctrl_x"
	KeyCtrlY         = "ctrl_y"
	KeyCtrl2X        = "ctrl2_x"
	KeyCtrl2Y        = "ctrl2_y"
	KeyDstX          = "dst_x"
	KeyDstY          = "dst_y"
	KeyDstW          = "dst_w"
	KeyDstH          = "dst_h"
	KeyDuration      = "duration"
	KeyAcceleration  = "acceleration"
	KeyEasing        = "easing"
	KeySource        = "source_id"
	KeySourceItemID  = "source_item_id"
	KeyForward       = "forward"
	KeyBackward      = "backward"
	KeyBehavior      = "motion_behavior"
	KeyVariationType = "variation_type"
	KeySceneName     = "scene_name"
)

// timeEpsilon absorbs floating drift when elapsed time is accumulated from
// per-frame deltas.
const timeEpsilon = 1e-9

// ControllerConfig is the user configuration of a Controller, parsed from
// its settings.
type ControllerConfig struct {
	Source       string
	Behavior     Behavior
	PathType     PathType
	Variation    Variation
	UseStart     bool
	StartPos     Vec2
	StartW       int
	StartH       int
	Ctrl         Vec2
	Ctrl2        Vec2
	DstPos       Vec2
	DstW         int
	DstH         int
	Duration     float64
	Acceleration float64
	Easing       string
}

// ReadControllerConfig parses the configuration keys of s.
func ReadControllerConfig(s *Settings) ControllerConfig {
	return ControllerConfig{
		Source:       s.String(KeySource),
		Behavior:     Behavior(s.Int(KeyBehavior)),
		PathType:     PathType(s.Int(KeyPathType)),
		Variation:    Variation(s.Int(KeyVariationType)),
		UseStart:     s.Bool(KeyStartSetting),
		StartPos:     Vec2{float64(s.Int(KeyStartX)), float64(s.Int(KeyStartY))},
		StartW:       int(s.Int(KeyStartW)),
		StartH:       int(s.Int(KeyStartH)),
		Ctrl:         Vec2{float64(s.Int(KeyCtrlX)), float64(s.Int(KeyCtrlY))},
		Ctrl2:        Vec2{float64(s.Int(KeyCtrl2X)), float64(s.Int(KeyCtrl2Y))},
		DstPos:       Vec2{float64(s.Int(KeyDstX)), float64(s.Int(KeyDstY))},
		DstW:         int(s.Int(KeyDstW)),
		DstH:         int(s.Int(KeyDstH)),
		Duration:     max(s.Float(KeyDuration), 0),
		Acceleration: clamp(s.Float(KeyAcceleration), -1, 1),
		Easing:       s.String(KeyEasing),
	}
}

// useStartPosition reports whether the configured start position replaces
// the live one. Always on for scene switching.
func (c ControllerConfig) useStartPosition() bool {
	return (c.Behavior == BehaviorSceneSwitch || c.UseStart) && c.Variation.Position()
}

func (c ControllerConfig) useStartScale() bool {
	return (c.Behavior == BehaviorSceneSwitch || c.UseStart) && c.Variation.Size()
}

// Controller animates the transform of one element of a scene. It owns the
// element's motion state: trigger handling, direction, elapsed time, and the
// persisted resting side.
//
// All methods must be called from the host loop; a Controller is not safe
// for concurrent use.
type Controller struct {
	name     string
	scene    SceneGraph
	settings *Settings
	triggers *Triggers
	events   EventSink
	log      zerolog.Logger

	cfg    ControllerConfig
	itemID int64

	// Motion state
	item          Element // held with AddRef while running
	path          Path
	elapsed       float64
	running       bool
	backward      bool // direction of the current run
	atDestination bool
	hasStart      bool // path.Points[0] / path.Scale[0] hold a captured start

	// Trigger registrations
	forwardKey  HotkeyID
	backwardKey HotkeyID
	sceneHandle CallbackHandle
	registered  bool
	removed     bool
}

// NewController creates the controller named name for an element of scene.
// The persisted resting side and start transform are restored from settings
// before the configuration is applied, so a restarted host resumes on the
// correct side of the path. triggers may be nil when the host only uses the
// manual Forward and Backward calls.
func NewController(name string, scene SceneGraph, settings *Settings, triggers *Triggers) *Controller {
	if settings == nil {
		settings = NewSettings()
	}
	c := &Controller{
		name:     name,
		scene:    scene,
		settings: settings,
		triggers: triggers,
		log:      logger.With().Str("controller", name).Logger(),
		itemID:   -1,
	}
	c.restoreState()
	c.Update(settings)
	return c
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l zerolog.Logger) {
	c.log = l.With().Str("controller", c.name).Logger()
}

// SetEventSink sets the receiver of the controller's events; nil disables them.
func (c *Controller) SetEventSink(sink EventSink) {
	c.events = sink
}

// Name returns the controller name.
func (c *Controller) Name() string { return c.name }

// Config returns the active configuration.
func (c *Controller) Config() ControllerConfig { return c.cfg }

// Running reports whether a motion is in progress.
func (c *Controller) Running() bool { return c.running }

// AtDestination reports whether the target rests on the destination side.
func (c *Controller) AtDestination() bool { return c.atDestination }

// Path returns the path of the current or last motion.
func (c *Controller) Path() Path { return c.path }

// reversing reports whether the next motion walks the path backward.
func (c *Controller) reversing() bool {
	return c.atDestination && c.cfg.Behavior == BehaviorRoundTrip
}

func (c *Controller) emit(t EventType, reverse bool) {
	if c.events == nil {
		return
	}
	c.events.EmitEvent(Event{
		Type:          t,
		Source:        c.name,
		Element:       c.cfg.Source,
		AtDestination: c.atDestination,
		Reverse:       reverse,
	})
}

// --- Configuration ---

// Update applies new settings. When the target changes, or the
// configuration changes while the target is away from its start (resting at
// the destination or mid-motion), the previous target is first snapped back
// to its captured start so no element is stranded by an edit.
func (c *Controller) Update(settings *Settings) {
	if settings != nil {
		c.settings = settings
	}
	next := ReadControllerConfig(c.settings)

	if c.registered {
		moved := c.running || c.atDestination
		if next.Source != c.cfg.Source || (moved && next != c.cfg) {
			c.recover()
		}
	}

	behaviorChanged := c.registered && next.Behavior != c.cfg.Behavior
	if behaviorChanged {
		c.unregisterTriggers()
	}

	if next.Source != c.cfg.Source {
		c.itemID = -1
		if c.registered {
			// The stored id belongs to the previous target.
			c.settings.Delete(KeySourceItemID)
		}
	}
	c.cfg = next
	if id := c.settings.Int(KeySourceItemID); c.settings.Has(KeySourceItemID) && c.itemID < 0 {
		c.itemID = id
	}
	if c.scene != nil && next.Source != "" {
		if item := c.scene.FindByName(next.Source); item != nil {
			c.itemID = item.ID()
			c.settings.SetInt(KeySourceItemID, c.itemID)
		}
	}

	if !c.registered || behaviorChanged {
		c.registerTriggers()
	}
}

// restoreState reads the persisted resting side and start transform.
func (c *Controller) restoreState() {
	s := c.settings
	c.atDestination = s.Bool(KeyMotionEnd)
	if !c.atDestination {
		return
	}
	c.path.Points[0] = Vec2{s.Float(KeyOrgX), s.Float(KeyOrgY)}
	c.path.Scale[0] = Vec2{s.Float(KeyOrgW), s.Float(KeyOrgH)}
	c.hasStart = true
}

// persistState writes the resting side and start transform into s.
func (c *Controller) persistState(s *Settings) {
	s.SetBool(KeyMotionEnd, c.atDestination)
	if !c.hasStart {
		return
	}
	start, scale := c.path.Start()
	s.SetFloat(KeyOrgX, start.X)
	s.SetFloat(KeyOrgY, start.Y)
	s.SetFloat(KeyOrgW, scale.X)
	s.SetFloat(KeyOrgH, scale.Y)
}

// --- Triggers ---

func (c *Controller) registerTriggers() {
	c.registered = true
	if c.triggers == nil || c.scene == nil {
		return
	}
	switch c.cfg.Behavior {
	case BehaviorSceneSwitch:
		c.sceneHandle = c.triggers.OnSceneChanged(c.sceneChanged)
	case BehaviorOneWay, BehaviorRoundTrip:
		c.forwardKey = c.triggers.RegisterHotkey(KeyForward,
			"Forward [ "+c.name+" ]", c.Forward)
		c.triggers.LoadHotkey(c.forwardKey, c.settings, KeyForward)
		if c.cfg.Behavior == BehaviorRoundTrip {
			c.backwardKey = c.triggers.RegisterHotkey(KeyBackward,
				"Backward [ "+c.name+" ]", c.Backward)
			c.triggers.LoadHotkey(c.backwardKey, c.settings, KeyBackward)
		}
	}
}

func (c *Controller) unregisterTriggers() {
	c.registered = false
	if c.triggers == nil {
		return
	}
	c.sceneHandle.Remove()
	c.sceneHandle = CallbackHandle{}
	c.saveHotkeys(c.settings)
	c.triggers.UnregisterHotkey(c.forwardKey)
	c.triggers.UnregisterHotkey(c.backwardKey)
	c.forwardKey = InvalidHotkey
	c.backwardKey = InvalidHotkey
}

func (c *Controller) saveHotkeys(s *Settings) {
	if c.triggers == nil {
		return
	}
	if c.forwardKey != InvalidHotkey {
		c.triggers.SaveHotkey(c.forwardKey, s, KeyForward)
	}
	if c.backwardKey != InvalidHotkey {
		c.triggers.SaveHotkey(c.backwardKey, s, KeyBackward)
	}
}

// sceneChanged starts the forward motion when the controller's scene
// becomes current and snaps back immediately when another scene does.
func (c *Controller) sceneChanged(current SceneGraph) {
	if current == nil {
		return
	}
	own := c.scene.Name()
	if own == "" {
		own = c.settings.String(KeySceneName)
	}
	if current == c.scene || (own != "" && current.Name() == own) {
		c.Trigger(true)
		return
	}
	c.recover()
}

// Forward is the manual forward trigger. Disabled for scene switching.
func (c *Controller) Forward() bool {
	if c.cfg.Behavior == BehaviorSceneSwitch {
		return false
	}
	return c.Trigger(true)
}

// Backward is the manual backward trigger. Disabled for scene switching.
func (c *Controller) Backward() bool {
	if c.cfg.Behavior == BehaviorSceneSwitch {
		return false
	}
	return c.Trigger(false)
}

// --- Motion ---

// resolve finds the target element, by name first and then by stable id.
// A target found by id has been renamed; the source setting follows it.
func (c *Controller) resolve() Element {
	item, byID := findItem(c.scene, c.cfg.Source, c.itemID)
	if byID {
		c.followRename(item)
	}
	return item
}

func (c *Controller) followRename(item Element) {
	c.cfg.Source = item.Name()
	c.settings.SetString(KeySource, item.Name())
	c.log.Debug().Str("element", item.Name()).Int64("id", item.ID()).Msg("target renamed")
}

// Trigger starts a motion toward the destination (forward) or back toward
// the start. It returns false, changing nothing, when a motion is running,
// when the requested direction is not the one available from the current
// resting side, when the target cannot be resolved, or when its content has
// no size.
func (c *Controller) Trigger(forward bool) bool {
	if c.removed || c.cfg.Behavior == BehaviorNone {
		return false
	}
	if c.running || c.reversing() == forward {
		c.log.Debug().Bool("forward", forward).Bool("running", c.running).Msg("trigger ignored")
		return false
	}

	item, byID := findItem(c.scene, c.cfg.Source, c.itemID)
	if item == nil {
		c.log.Warn().Str("element", c.cfg.Source).Int64("id", c.itemID).Msg("trigger rejected: target not found")
		return false
	}
	path, ok := c.buildPath(item)
	if !ok {
		c.log.Warn().Str("element", item.Name()).Msg("trigger rejected: content has no size")
		return false
	}
	if byID {
		c.followRename(item)
	}

	item.AddRef()
	c.item = item
	c.path = path
	c.hasStart = true
	c.backward = c.reversing()
	c.elapsed = 0
	c.running = true

	c.log.Debug().Str("element", item.Name()).Bool("backward", c.backward).
		Float64("duration", c.cfg.Duration).Msg("motion started")
	c.emit(EventMotionStarted, c.backward)
	return true
}

// buildPath computes the control points of the next motion of item.
func (c *Controller) buildPath(item Element) (Path, bool) {
	if !hasContentSize(item) {
		return Path{}, false
	}
	cfg := c.cfg
	p := Path{Easing: NewEasing(cfg.Acceleration, cfg.Easing)}

	// Capture the live transform only from the start side; from the
	// destination the captured start is kept so the path can be retraced.
	if c.hasStart && c.atDestination {
		p.Points[0], p.Scale[0] = c.path.Start()
	} else {
		live := item.Transform()
		p.Points[0], p.Scale[0] = live.Position, live.Scale
	}

	if cfg.useStartPosition() {
		p.Points[0] = cfg.StartPos
	}
	if cfg.useStartScale() {
		scale, ok := scaleForSize(item, cfg.StartW, cfg.StartH)
		if !ok {
			return Path{}, false
		}
		p.Scale[0] = scale
	}

	order := cfg.PathType.Order()
	if order >= 2 {
		p.Points[1] = cfg.Ctrl
	}
	if order == 3 {
		p.Points[2] = cfg.Ctrl2
	}
	p.Points[order] = cfg.DstPos

	p.Scale[1] = p.Scale[0]
	if cfg.Variation.Size() {
		scale, ok := scaleForSize(item, cfg.DstW, cfg.DstH)
		if !ok {
			return Path{}, false
		}
		p.Scale[1] = scale
		p.ScaleOrder = 1
	}
	if cfg.Variation.Position() {
		p.PositionOrder = order
	}
	return p, true
}

// Tick advances a running motion by seconds and applies the resulting
// position and scale to the target. The frame that reaches the duration
// writes the exact endpoint, flips the resting side and releases the target.
func (c *Controller) Tick(seconds float64) {
	if !c.running {
		return
	}
	c.elapsed += seconds
	d := c.cfg.Duration
	done := d <= 0 || c.elapsed >= d-timeEpsilon

	var coeff float64
	switch {
	case done && c.backward:
		coeff = 0
	case done:
		coeff = 1
	default:
		coeff = c.path.Progress(c.elapsed, d, c.backward)
	}

	pos, scale := c.path.At(coeff)
	c.item.SetPosition(pos)
	c.item.SetScale(scale)

	if done {
		c.finish()
	}
}

func (c *Controller) finish() {
	c.running = false
	c.elapsed = 0
	c.item.Release()
	c.item = nil
	c.atDestination = !c.backward

	if c.cfg.Behavior == BehaviorRoundTrip || c.cfg.Behavior == BehaviorSceneSwitch {
		c.persistState(c.settings)
	}
	c.log.Debug().Bool("atDestination", c.atDestination).Msg("motion finished")
	c.emit(EventMotionFinished, c.backward)
}

// recover stops any running motion and snaps the target back to its
// captured start without animation.
func (c *Controller) recover() {
	if !c.running && !c.atDestination {
		return
	}
	item := c.item
	if item == nil {
		item = c.resolve()
	}
	if item != nil && c.hasStart {
		start, scale := c.path.Start()
		item.SetPosition(start)
		item.SetScale(scale)
	}
	if c.running {
		c.item.Release()
		c.item = nil
		c.running = false
		c.elapsed = 0
	}
	c.atDestination = false
	c.settings.SetBool(KeyMotionEnd, false)

	c.log.Debug().Str("element", c.cfg.Source).Msg("target recovered")
	c.emit(EventMotionRecovered, false)
}

// GrabDestination copies the target's live position and displayed size
// into the destination settings and applies them.
func (c *Controller) GrabDestination() bool {
	item := c.resolve()
	if item == nil {
		return false
	}
	t := item.Transform()
	w, h := item.BaseSize()
	s := c.settings
	s.SetInt(KeyDstX, int64(t.Position.X))
	s.SetInt(KeyDstY, int64(t.Position.Y))
	s.SetInt(KeyDstW, int64(float64(w)*t.Scale.X))
	s.SetInt(KeyDstH, int64(float64(h)*t.Scale.Y))
	c.Update(s)
	return true
}

// --- Host lifecycle ---

// Save writes the controller's persistent state into settings: the owning
// scene's name and hotkey bindings, plus the resting side and captured start
// for the behaviors that resume across restarts.
func (c *Controller) Save(settings *Settings) {
	if settings == nil {
		settings = c.settings
	}
	if c.scene != nil && c.scene.Name() != "" {
		settings.SetString(KeySceneName, c.scene.Name())
	}
	c.saveHotkeys(settings)
	if c.cfg.Behavior != BehaviorRoundTrip && c.cfg.Behavior != BehaviorSceneSwitch {
		return
	}
	c.persistState(settings)
}

// Remove tears the controller down: triggers are unregistered (bindings
// saved) and a target that is moving or resting at the destination is
// snapped back to its start. Safe to call more than once.
func (c *Controller) Remove() {
	if c.removed {
		return
	}
	if c.registered {
		c.unregisterTriggers()
	}
	c.recover()
	c.removed = true
}
