package sheet

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config holds the options of a sheet. Start from DefaultConfig: the zero
// value describes a sheet that cannot be dismissed.
type Config struct {
	// Open, when non-nil, puts the open state under host control for the
	// lifetime of the sheet. The sheet then only requests changes through
	// OnOpenChange and the host answers with SetOpen.
	Open         *bool
	DefaultOpen  bool
	OnOpenChange func(open bool)

	// Modal sheets claim presses outside the panel and close on them when
	// Dismissible.
	Modal       bool
	Dismissible bool
	// Disabled turns all drag handling off.
	Disabled bool

	// SnapPoints are resting positions ordered from least to most open.
	SnapPoints []SnapPoint
	// DefaultSnapPoint is selected one tick after the sheet opens.
	DefaultSnapPoint int
	// ActiveSnapPoint, when non-nil, puts the snap index under host control
	// the same way Open does for the open state.
	ActiveSnapPoint   *int
	OnSnapPointChange func(index int)
	// FadeRange limits overlay fading to the snap points between its two
	// indices. Anything but two valid ascending indices means all of them.
	FadeRange []int

	CloseThreshold    float64 // fraction of the visible panel
	VelocityThreshold float64 // px/ms
	ScrollLockTimeout time.Duration

	// ShouldScaleBackground scales the page wrapper set with SetWrapper
	// while the sheet is open. Only root sheets do this.
	ShouldScaleBackground bool

	OnDrag       func(evt PointerEvent, progress float64)
	OnRelease    func(evt PointerEvent, open bool)
	OnScrollLock func(locked bool)
	// HasSelection reports whether the host has selected text inside the
	// panel. Drags never start while it returns true.
	HasSelection func() bool
}

// DefaultConfig returns a closed, dismissible, non-modal configuration
// without snap points.
func DefaultConfig() Config {
	return Config{
		Dismissible:       true,
		DefaultSnapPoint:  1,
		CloseThreshold:    DefaultCloseThreshold,
		VelocityThreshold: DefaultVelocityThreshold,
		ScrollLockTimeout: DefaultScrollLockTimeout,
	}
}

// normalize replaces out-of-range values with defaults and drops unusable
// snap points. The caller's slices are never modified.
func (c *Config) normalize() {
	if !(c.CloseThreshold > 0 && c.CloseThreshold <= 1) {
		c.CloseThreshold = DefaultCloseThreshold
	}
	if !(c.VelocityThreshold > 0) || math.IsInf(c.VelocityThreshold, 0) {
		c.VelocityThreshold = DefaultVelocityThreshold
	}
	if c.ScrollLockTimeout < 0 {
		c.ScrollLockTimeout = DefaultScrollLockTimeout
	}
	if c.DefaultSnapPoint < 1 {
		c.DefaultSnapPoint = 1
	}
	if len(c.SnapPoints) > 0 {
		points := make([]SnapPoint, 0, len(c.SnapPoints))
		for _, p := range c.SnapPoints {
			if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || p.Value < 0 {
				continue
			}
			if !p.Pixels && p.Value > 1 {
				p.Value = 1
			}
			points = append(points, p)
		}
		c.SnapPoints = points
	}
}

// PanelStyle is the target transform of the panel, before animation.
type PanelStyle struct {
	// TranslateY is the offset from the fully open position, positive down.
	TranslateY float64
	Scale      float64
	// BorderRadius rounds the panel's top corners while a nested child sits
	// above it.
	BorderRadius float64
	Transition   TransitionSpec
}

// DialogProps is what a sheet hands to the dialog primitive hosting it.
type DialogProps struct {
	Open bool
	// ForceMount keeps the panel mounted until the exit animation finished.
	ForceMount   bool
	Modal        bool
	OnOpenChange func(open bool)
}

// Sheet is a bottom sheet: it turns vertical pointer gestures into snap
// point selection, open/close decisions and the visual state derived from
// them. All time flows through Update; a Sheet is not safe for concurrent
// use.
type Sheet struct {
	cfg            Config
	controlledOpen bool
	controlledSnap bool

	sched *Scheduler
	state *Transition

	open   bool
	active int

	// Gesture. pressed is set while a pointer is down on the panel; allowed
	// once the gate let that gesture move the panel.
	pressed   bool
	allowed   bool
	pointerID int
	pressY    float64
	pressAt   time.Duration
	dragged   float64

	panelSize float64
	viewportW float64
	viewportH float64
	res       Resolution
	resDirty  bool
	measured  bool

	gate dragGate
	root *Region

	nested *NestedCoordinator // children report here
	parent *NestedCoordinator // nil for a root sheet

	background *BackgroundEffect
	wrapper    Surface
	anim       *panelAnimator

	openTimer    *Timer
	handles      []CallbackHandle
	store        EventSink
	scrollLocked bool
	disposed     bool

	debug bool
	// DebugOutput receives debug lines. Nil means os.Stderr.
	DebugOutput io.Writer
}

// New creates a root sheet.
func New(cfg Config) *Sheet {
	return newSheet(cfg, nil)
}

// NewNested creates a sheet stacked on top of parent. The child reports its
// drags and open state to parent, which scales itself back accordingly.
func NewNested(parent *Sheet, cfg Config) (*Sheet, error) {
	if parent == nil {
		return nil, ErrNoParent
	}
	return newSheet(cfg, parent), nil
}

func newSheet(cfg Config, parent *Sheet) *Sheet {
	cfg.normalize()
	s := &Sheet{
		cfg:            cfg,
		controlledOpen: cfg.Open != nil,
		controlledSnap: cfg.ActiveSnapPoint != nil,
		sched:          NewScheduler(),
		resDirty:       true,
		gate:           dragGate{scrollLockTimeout: cfg.ScrollLockTimeout, hasSelection: cfg.HasSelection},
	}
	s.root = NewRegion("panel", Rect{})
	s.root.panel = true

	depth := 0
	if parent != nil {
		s.parent = parent.nested
		depth = parent.nested.Depth() + 1
		s.debug = parent.debug
		s.DebugOutput = parent.DebugOutput
	}
	s.nested = newNestedCoordinator(s.sched, depth)
	s.nested.notify = s.nestedChanged
	s.nested.state.OnChange = func(TransitionState) { s.commit() }

	s.open = cfg.DefaultOpen
	if s.controlledOpen {
		s.open = *cfg.Open
	}
	if s.controlledSnap {
		s.active = s.resolution().Clamp(*cfg.ActiveSnapPoint)
	} else if s.open {
		s.active = s.resolution().Clamp(cfg.DefaultSnapPoint)
	}
	s.state = NewTransition(s.sched, s.open, EntryDuration, ExitDuration)
	s.state.OnChange = s.stateChanged
	s.anim = newPanelAnimator(0)

	if s.open {
		s.gate.markOpened(0)
		if s.parent != nil {
			s.parent.OpenChange(true)
		}
	}
	s.commit()
	return s
}

// --- Configuration and geometry ---

// SetConfig replaces the configuration. Whether open state and snap index
// are host controlled was fixed at construction and does not change; when
// they are, the new Open and ActiveSnapPoint values are applied like
// SetOpen and SetActiveSnapPoint.
func (s *Sheet) SetConfig(cfg Config) {
	if !s.usable("SetConfig") {
		return
	}
	cfg.normalize()
	s.cfg = cfg
	s.gate.scrollLockTimeout = cfg.ScrollLockTimeout
	s.gate.hasSelection = cfg.HasSelection
	s.resDirty = true
	s.active = s.resolution().Clamp(s.active)
	if cfg.Disabled && s.pressed {
		s.pressed, s.allowed = false, false
	}
	if s.controlledSnap && cfg.ActiveSnapPoint != nil {
		s.setSnap(s.resolution().Clamp(*cfg.ActiveSnapPoint), false)
	}
	if s.controlledOpen && cfg.Open != nil {
		s.applyOpen(*cfg.Open)
	}
	s.commit()
}

// Config returns the normalized configuration in use.
func (s *Sheet) Config() Config {
	return s.cfg
}

// SetPanelSize sets the measured panel height in pixels. Until it is set,
// snap points resolve against the viewport height and releases are ignored.
func (s *Sheet) SetPanelSize(h float64) {
	if math.IsNaN(h) || h < 0 {
		h = 0
	}
	if h == s.panelSize {
		return
	}
	s.panelSize = h
	s.resDirty = true
	s.syncRoot()
	s.commit()
}

// SetViewport sets the size of the area the sheet is drawn in.
func (s *Sheet) SetViewport(w, h float64) {
	if w == s.viewportW && h == s.viewportH {
		return
	}
	s.viewportW, s.viewportH = w, h
	s.resDirty = true
	s.syncRoot()
	s.commit()
}

// SetRoot replaces the panel's region tree. Regions below r are hit tested
// to find the target of each pointer event.
func (s *Sheet) SetRoot(r *Region) {
	if r == nil {
		return
	}
	s.root.panel = false
	r.panel = true
	s.root = r
	s.syncRoot()
}

// Root returns the panel's root region.
func (s *Sheet) Root() *Region {
	return s.root
}

func (s *Sheet) syncRoot() {
	grow := s.root.ContentHeight <= s.root.Bounds.Height
	s.root.Bounds = Rect{Width: s.viewportW, Height: s.panelSize}
	if grow || s.root.ContentHeight < s.panelSize {
		s.root.ContentHeight = s.panelSize
	}
}

// SetWrapper sets the page surfaces scaled back while the sheet is open.
// Styles written earlier are restored first.
func (s *Sheet) SetWrapper(wrapper, page Surface) {
	if s.background != nil {
		s.background.Restore()
	}
	s.wrapper = wrapper
	s.background = NewBackgroundEffect(wrapper, page)
	s.commit()
}

// SetEventSink sets the optional event bridge.
func (s *Sheet) SetEventSink(store EventSink) {
	s.store = store
}

// height is the measured panel height, or the viewport height before the
// first measurement.
func (s *Sheet) height() float64 {
	if s.panelSize > 0 {
		return s.panelSize
	}
	return s.viewportH
}

func (s *Sheet) hasSnaps() bool {
	return len(s.cfg.SnapPoints) > 0
}

func (s *Sheet) resolution() Resolution {
	if s.resDirty {
		s.res = ResolveSnapPoints(s.cfg.SnapPoints, s.height(), s.cfg.FadeRange)
		s.resDirty = false
	}
	return s.res
}

// --- Open state ---

// Open requests the sheet to open.
func (s *Sheet) Open() {
	if s.usable("Open") {
		s.requestOpen(true)
	}
}

// Close requests the sheet to close. Closing a closed sheet does nothing.
func (s *Sheet) Close() {
	if s.usable("Close") {
		s.requestOpen(false)
	}
}

// SetOpen pushes the host's open state. For a host-controlled sheet this is
// the only way the open state changes and OnOpenChange is not called back.
// Otherwise it behaves like Open or Close.
func (s *Sheet) SetOpen(open bool) {
	if !s.usable("SetOpen") {
		return
	}
	if s.controlledOpen {
		s.applyOpen(open)
		s.commit()
		return
	}
	s.requestOpen(open)
}

func (s *Sheet) requestOpen(open bool) {
	if s.controlledOpen {
		if open != s.open && s.cfg.OnOpenChange != nil {
			s.cfg.OnOpenChange(open)
		}
		return
	}
	if open == s.open {
		return
	}
	s.applyOpen(open)
	if s.cfg.OnOpenChange != nil {
		s.cfg.OnOpenChange(open)
	}
}

func (s *Sheet) applyOpen(open bool) {
	if open == s.open {
		return
	}
	s.open = open
	s.debugf("open %t", open)

	s.openTimer.Stop()
	s.openTimer = nil
	if open {
		s.gate.markOpened(s.sched.Now())
		s.openTimer = s.sched.After(0, func() {
			s.openTimer = nil
			s.chooseSnap(s.cfg.DefaultSnapPoint)
			s.commit()
		})
	} else {
		s.gate.reset()
		s.chooseSnap(0)
	}

	if s.parent != nil {
		s.parent.OpenChange(open)
	}
	s.emit(Event{Type: EventOpenChange, Open: open})
	s.state.SetActive(open)
}

func (s *Sheet) stateChanged(st TransitionState) {
	s.debugf("state %s", st)
	s.emit(Event{Type: EventStateChange, State: st})
	s.commit()
}

func (s *Sheet) nestedChanged() {
	s.emit(Event{Type: EventNestedChange, Open: s.nested.Open(), Progress: s.nested.Progress()})
	s.commit()
}

// --- Snap points ---

// SetActiveSnapPoint selects a snap index, clamped to the valid range. For a
// host-controlled snap index this is the host's push and OnSnapPointChange
// is not called back.
func (s *Sheet) SetActiveSnapPoint(i int) {
	if !s.usable("SetActiveSnapPoint") {
		return
	}
	s.setSnap(s.resolution().Clamp(i), !s.controlledSnap)
	s.commit()
}

// chooseSnap is the sheet's own decision to move to index i.
func (s *Sheet) chooseSnap(i int) {
	i = s.resolution().Clamp(i)
	if s.controlledSnap {
		if i != s.active && s.cfg.OnSnapPointChange != nil {
			s.cfg.OnSnapPointChange(i)
		}
		return
	}
	s.setSnap(i, true)
}

func (s *Sheet) setSnap(i int, notify bool) {
	if i == s.active {
		return
	}
	s.active = i
	if s.hasSnaps() && i == s.resolution().Last() {
		s.gate.markOpened(s.sched.Now())
	}
	s.debugf("snap %d", i)
	s.emit(Event{Type: EventSnapChange, Index: i})
	if notify && s.cfg.OnSnapPointChange != nil {
		s.cfg.OnSnapPointChange(i)
	}
}

// --- Gestures ---

// Press starts a gesture. A nil Target means the pointer went down outside
// the panel: modal, dismissible sheets close, all others ignore it.
func (s *Sheet) Press(evt PointerEvent) {
	if !s.usable("Press") || s.cfg.Disabled || !s.open {
		return
	}
	if evt.Target == nil {
		if s.cfg.Modal && s.cfg.Dismissible {
			s.debugf("outside press")
			s.requestOpen(false)
		}
		return
	}
	if s.pressed {
		return
	}
	s.pressed = true
	s.allowed = false
	s.pointerID = evt.PointerID
	s.pressY = evt.Y
	s.pressAt = s.sched.Now()
}

// Drag moves the panel with the pressed pointer once the gesture is allowed
// to drag. The permission is decided on the first move and kept until
// release.
func (s *Sheet) Drag(evt PointerEvent) {
	if s.disposed || !s.pressed || evt.PointerID != s.pointerID {
		return
	}
	distance := s.pressY - evt.Y
	if !s.allowed {
		ok, reason := s.gate.allow(evt.Target, distance > 0, s.sched.Now(), s.anim.offset.value == 0)
		if !ok {
			s.debugf("drag refused: %s", reason)
			return
		}
		s.allowed = true
		s.debugf("drag start at %.1f", evt.Y)
	}

	s.dragged = dragOffset(dragInput{
		distance:    distance,
		res:         s.resolution(),
		active:      s.active,
		hasSnaps:    s.hasSnaps(),
		dismissible: s.cfg.Dismissible,
	})

	progress := 0.0
	if h := s.height(); h > 0 {
		progress = math.Abs(distance) / h
	}
	if s.hasSnaps() || (distance < 0 && s.cfg.Dismissible) {
		if s.cfg.OnDrag != nil {
			s.cfg.OnDrag(evt, progress)
		}
		if s.parent != nil {
			s.parent.Drag(progress)
		}
	}
	s.emit(Event{Type: EventDrag, Progress: progress})
	s.commit()
}

// Release ends the gesture and settles the panel on a snap point, closes the
// sheet or springs it back.
func (s *Sheet) Release(evt PointerEvent) {
	if s.disposed || !s.pressed || evt.PointerID != s.pointerID {
		return
	}
	wasAllowed := s.allowed
	offset := s.dragged
	s.pressed, s.allowed = false, false

	if !wasAllowed {
		s.commit()
		return
	}
	if !s.open || s.panelSize <= 0 {
		if s.open {
			s.debugf("release ignored: panel not measured")
		}
		if s.parent != nil {
			s.parent.Release(s.open)
		}
		s.commit()
		return
	}

	distance := s.pressY - evt.Y
	elapsed := s.sched.Now() - s.pressAt
	d := decideRelease(releaseInput{
		distance:          distance,
		elapsed:           elapsed,
		res:               s.resolution(),
		active:            s.active,
		hasSnaps:          s.hasSnaps(),
		offset:            offset,
		panelHeight:       s.panelSize,
		viewportHeight:    s.viewportH,
		velocityThreshold: s.cfg.VelocityThreshold,
		closeThreshold:    s.cfg.CloseThreshold,
	})
	s.debugf("release: distance %.1f in %v -> %s %d", distance, elapsed, d.Kind, d.Index)

	stayOpen := true
	switch d.Kind {
	case DecisionSnap:
		s.chooseSnap(d.Index)
	case DecisionClose:
		if s.cfg.Dismissible {
			stayOpen = false
			s.requestOpen(false)
		} else if s.hasSnaps() {
			s.chooseSnap(1)
		}
	}

	if s.cfg.OnRelease != nil {
		s.cfg.OnRelease(evt, stayOpen)
	}
	if s.parent != nil {
		s.parent.Release(stayOpen)
	}
	s.emit(Event{Type: EventRelease, Open: stayOpen, Index: s.active})
	s.commit()
}

// Locate returns the deepest region of the panel under the screen point
// (x, y), or nil when the point is outside the panel.
func (s *Sheet) Locate(x, y float64) *Region {
	b := s.PanelBounds()
	if b.Height <= 0 || !b.Contains(x, y) {
		return nil
	}
	return s.root.HitTest(x-b.X, y-b.Y)
}

// PanelBounds returns the panel's on-screen rectangle for the current frame.
// The panel spans the viewport width and rests against its bottom edge.
func (s *Sheet) PanelBounds() Rect {
	return Rect{
		Y:      s.viewportH - s.panelSize + s.anim.offset.value,
		Width:  s.viewportW,
		Height: s.panelSize,
	}
}

// Attach registers the sheet with in. Sheets attached later sit on top and
// see presses first.
func (s *Sheet) Attach(in *Input) CallbackHandle {
	h := in.Listen(sheetListener{s})
	s.handles = append(s.handles, h)
	return h
}

type sheetListener struct {
	s *Sheet
}

func (l sheetListener) PointerDown(evt PointerEvent) bool {
	s := l.s
	if s.disposed || !s.open {
		return false
	}
	evt.Target = s.Locate(evt.X, evt.Y)
	if evt.Target == nil && !s.cfg.Modal {
		return false
	}
	s.Press(evt)
	return true
}

func (l sheetListener) PointerMove(evt PointerEvent) {
	evt.Target = l.s.Locate(evt.X, evt.Y)
	l.s.Drag(evt)
}

func (l sheetListener) PointerUp(evt PointerEvent) {
	evt.Target = l.s.Locate(evt.X, evt.Y)
	l.s.Release(evt)
}

// --- Frame loop ---

// Update advances the sheet's clock by dt: deferred steps fire and
// animations progress. Call it once per tick for every sheet.
func (s *Sheet) Update(dt time.Duration) {
	if s.disposed || dt < 0 {
		return
	}
	s.sched.Advance(dt)
	s.anim.update(dt)
	if a, ok := s.wrapper.(*AnimatedSurface); ok {
		a.Update(dt)
	}
}

// Tick advances the sheet by one ebiten tick. When ticks follow the frame
// rate, the measured TPS is used instead.
func (s *Sheet) Tick() {
	tps := float64(ebiten.TPS())
	if tps <= 0 {
		tps = ebiten.ActualTPS()
	}
	s.Update(tickDuration(tps))
}

// tickDuration is the length of one tick at tps ticks per second, falling
// back to the default rate when tps is not positive.
func tickDuration(tps float64) time.Duration {
	if tps <= 0 || math.IsNaN(tps) || math.IsInf(tps, 0) {
		tps = ebiten.DefaultTPS
	}
	return time.Duration(float64(time.Second) / tps)
}

// Dispose stops all pending steps, detaches input, abandons a running drag
// without settling it and restores the page surfaces. The sheet is unusable
// afterwards.
func (s *Sheet) Dispose() {
	if s.disposed {
		return
	}
	s.sched.StopAll()
	s.openTimer = nil
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	s.pressed, s.allowed = false, false
	if s.background != nil {
		s.background.Restore()
	}
	if s.scrollLocked {
		s.scrollLocked = false
		if s.cfg.OnScrollLock != nil {
			s.cfg.OnScrollLock(false)
		}
	}
	if s.parent != nil {
		if s.parent.Dragging() {
			s.parent.Release(false)
		}
		if s.open {
			s.parent.OpenChange(false)
		}
	}
	s.disposed = true
	s.debugf("disposed")
}

// commit re-derives everything that follows from the current state: panel
// animation targets, the background effect and the scroll lock.
func (s *Sheet) commit() {
	if s.disposed {
		return
	}
	p := s.Panel()
	overlay := s.OverlayOpacity()
	if !s.measured {
		s.anim.offset.jump(p.TranslateY)
		s.anim.scale.jump(p.Scale)
		s.anim.radius.jump(p.BorderRadius)
		s.anim.overlay.jump(overlay)
		s.measured = s.panelSize > 0
	} else {
		s.anim.offset.animateTo(p.TranslateY, p.Transition)
		s.anim.scale.animateTo(p.Scale, p.Transition)
		s.anim.radius.animateTo(p.BorderRadius, p.Transition)
		s.anim.overlay.animateTo(overlay, s.TransitionSpec("opacity"))
	}

	if s.background != nil && s.cfg.ShouldScaleBackground && s.parent == nil {
		prev := s.background.Phase()
		phase := s.background.Apply(BackgroundInput{
			Dragging:        s.allowed,
			DraggedDistance: s.dragged,
			ActiveSnap:      s.active,
			State:           s.state.State(),
			Snaps:           s.resolution(),
			ViewportWidth:   s.viewportW,
		})
		if phase != prev {
			s.debugf("background %s", phase)
		}
	}

	if locked := s.ScrollLocked(); locked != s.scrollLocked {
		s.scrollLocked = locked
		if s.cfg.OnScrollLock != nil {
			s.cfg.OnScrollLock(locked)
		}
	}
}

// --- Outputs ---

// State returns the visibility transition state.
func (s *Sheet) State() TransitionState { return s.state.State() }

// ActiveSnapPoint returns the active snap index. Index 0 is closed.
func (s *Sheet) ActiveSnapPoint() int { return s.active }

// IsOpen reports the logical open state.
func (s *Sheet) IsOpen() bool { return s.open }

// IsDragging reports whether a pointer is pressed on the panel.
func (s *Sheet) IsDragging() bool { return s.pressed }

// IsAllowedToDrag reports whether the current gesture moves the panel.
func (s *Sheet) IsAllowedToDrag() bool { return s.allowed }

// PanelSize returns the measured panel height.
func (s *Sheet) PanelSize() float64 { return s.panelSize }

// Nested reports whether the sheet is stacked on a parent.
func (s *Sheet) Nested() bool { return s.parent != nil }

// Depth returns the nesting level, 0 for a root sheet.
func (s *Sheet) Depth() int { return s.nested.Depth() }

// NestedState returns the transition state of a child stacked on this sheet.
func (s *Sheet) NestedState() TransitionState { return s.nested.State() }

// NestedOpen reports whether a child stacked on this sheet is open.
func (s *Sheet) NestedOpen() bool { return s.nested.Open() }

// NestedProgress returns the drag progress reported by a child.
func (s *Sheet) NestedProgress() float64 { return s.nested.Progress() }

// DraggedDistance is the panel's translate-Y from the fully open position.
// Outside a drag it mirrors the active snap point's offset.
func (s *Sheet) DraggedDistance() float64 {
	if s.allowed {
		return s.dragged
	}
	return s.resolution().Offset(s.active)
}

// SnapPointOffsets returns the resolved offset of every snap point,
// index 0 being closed.
func (s *Sheet) SnapPointOffsets() []float64 {
	return append([]float64(nil), s.resolution().Offsets...)
}

// FadeRange returns the resolved fade range.
func (s *Sheet) FadeRange() [2]int {
	return s.resolution().FadeRange
}

// TransitionSpec returns how property animates in the current phase. Drags
// disable animation.
func (s *Sheet) TransitionSpec(property string) TransitionSpec {
	return transitionFor(property, s.state.State(), s.allowed)
}

// Transition renders TransitionSpec as a CSS transition value.
func (s *Sheet) Transition(property string) string {
	return s.TransitionSpec(property).String()
}

// DialogProps returns the props for the hosting dialog.
func (s *Sheet) DialogProps() DialogProps {
	return DialogProps{
		Open:       s.open,
		ForceMount: s.state.State() != StateExited,
		Modal:      s.cfg.Modal,
		OnOpenChange: func(open bool) {
			if s.usable("OnOpenChange") {
				s.requestOpen(open)
			}
		},
	}
}

// ScrollLocked reports whether page scrolling should be locked: a root
// sheet locks it whenever it is not fully exited.
func (s *Sheet) ScrollLocked() bool {
	return s.parent == nil && s.state.State() != StateExited
}

// Panel returns the panel's target transform. A dragging child scales this
// panel with its progress, a resting child keeps it scaled back and lifted,
// and off-screen phases place it below the viewport.
func (s *Sheet) Panel() PanelStyle {
	rest := s.resolution().Offset(s.active)
	st := PanelStyle{TranslateY: rest, Scale: 1}

	switch state := s.state.State(); {
	case s.nested.Dragging():
		p := s.nested.Progress()
		base := s.nested.displacementScale(s.viewportW)
		st.Scale = math.Min(base+p*(1-base), 1)
		st.TranslateY = rest - nestedLift + math.Min(p, 1)*nestedLift
		st.BorderRadius = math.Max(0, BorderRadius-p*BorderRadius)
	case s.allowed:
		st.TranslateY = s.dragged
	case s.nested.Open():
		st.Scale = s.nested.displacementScale(s.viewportW)
		st.TranslateY = rest - nestedLift
		st.BorderRadius = BorderRadius
	case state != StateEntering && state != StateEntered:
		st.TranslateY = s.height()
	}

	phase := s.state.State()
	if ns := s.nested.State(); ns != StateExited {
		phase = ns
	}
	st.Transition = transitionFor("transform", phase, s.allowed || s.nested.Dragging())
	return st
}

// OverlayOpacity returns the backdrop opacity in [0, 1]. With more than one
// open snap point it follows the fade range; otherwise it follows how much
// of the panel is visible.
func (s *Sheet) OverlayOpacity() float64 {
	res := s.resolution()
	fading := res.Len() > 2
	from, till := res.FadeRange[0], res.FadeRange[1]

	if s.allowed {
		if fading {
			return res.Progress(s.dragged, from, till)
		}
		h := s.height()
		if h <= 0 {
			return 0
		}
		return clamp01(1 - s.dragged/h)
	}
	if s.state.State() == StateExiting {
		return 0
	}
	if fading {
		return res.Progress(res.Offset(s.active), from, till)
	}
	if s.open && s.state.State() != StateEnterStart {
		return 1
	}
	return 0
}

// VisibleHeight returns how many pixels of the panel are above the bottom
// edge, ignoring animation.
func (s *Sheet) VisibleHeight() float64 {
	return math.Max(s.height()-s.DraggedDistance(), 0)
}

// Frame returns the animated state for drawing.
func (s *Sheet) Frame() Frame {
	return s.anim.frame()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
