package sheet

import (
	"math"
	"time"

	"github.com/tanema/gween"
)

// Style is the visual state of a page-level surface behind a sheet.
type Style struct {
	Scale        float64
	TranslateY   float64
	BorderRadius float64
	// Clip hides content outside the rounded corners.
	Clip bool
	// Background is nil when the surface keeps its own background.
	Background *Color
	// OriginTop scales around the top edge instead of the center.
	OriginTop  bool
	Transition TransitionSpec
}

// FlatStyle is the untouched look of a page surface.
var FlatStyle = Style{Scale: 1}

// Surface is a page element whose look the background effect controls.
// Implementations are used as map keys and must be comparable; pointer
// receivers are the usual choice.
type Surface interface {
	Style() Style
	SetStyle(Style)
}

// BackgroundPhase names the visual phase last written by a BackgroundEffect.
type BackgroundPhase string

const (
	PhaseNone      BackgroundPhase = ""
	PhaseDragging  BackgroundPhase = "dragging"
	PhaseStart     BackgroundPhase = "start"
	PhaseSetting   BackgroundPhase = "setting"
	PhaseUnsetting BackgroundPhase = "unsetting"
	PhaseResetting BackgroundPhase = "resetting"
)

// BackgroundInput is the state the effect is computed from.
type BackgroundInput struct {
	Dragging        bool
	DraggedDistance float64
	ActiveSnap      int
	State           TransitionState
	Snaps           Resolution
	ViewportWidth   float64
}

// styleField selects parts of a Style for restoring.
type styleField uint8

const (
	fieldTransform styleField = 1 << iota
	fieldRadius
	fieldClip
	fieldBackground
	fieldAll = fieldTransform | fieldRadius | fieldClip | fieldBackground
)

// BackgroundEffect scales and rounds the page wrapper while its sheet is
// open, and paints the page backdrop black so the rounded corners read.
// Original styles are kept in a side table owned by the effect and written
// back on reset and on Restore.
type BackgroundEffect struct {
	wrapper Surface
	page    Surface
	phase   BackgroundPhase
	saved   map[Surface]Style
}

// NewBackgroundEffect creates an effect for the given surfaces. Either may
// be nil.
func NewBackgroundEffect(wrapper, page Surface) *BackgroundEffect {
	return &BackgroundEffect{wrapper: wrapper, page: page, saved: make(map[Surface]Style)}
}

// Phase returns the phase last applied.
func (b *BackgroundEffect) Phase() BackgroundPhase {
	return b.phase
}

// BaseScale is the wrapper's scale with the sheet fully open.
func BaseScale(viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return 1
	}
	return (viewportWidth - WindowTopOffset) / viewportWidth
}

// DragStyle maps drag progress p (0 = fully settled, 1 = dragged back to the
// flat look) to the wrapper's scale, corner radius and lift.
func DragStyle(p, viewportWidth float64) Style {
	base := BaseScale(viewportWidth)
	return Style{
		Scale:        math.Min(base+p*(1-base), 1),
		BorderRadius: math.Max(0, BorderRadius-p*BorderRadius),
		TranslateY:   math.Max(0, NestedDisplacement-p*NestedDisplacement),
		Transition:   TransitionSpec{Property: "transform"},
	}
}

// Apply computes the phase for in and writes styles when it changed. While
// dragging, styles are written on every call. It returns the phase applied.
func (b *BackgroundEffect) Apply(in BackgroundInput) BackgroundPhase {
	if b.wrapper == nil {
		return b.phase
	}
	from := in.Snaps.Len() - 2
	till := in.Snaps.Len() - 1
	prev := b.phase

	switch {
	case in.Dragging:
		p := 1 - in.Snaps.Progress(in.DraggedDistance, from, till)
		b.push(b.wrapper)
		st := b.wrapper.Style()
		drag := DragStyle(p, in.ViewportWidth)
		st.Scale, st.BorderRadius, st.TranslateY = drag.Scale, drag.BorderRadius, drag.TranslateY
		st.Transition = drag.Transition
		b.wrapper.SetStyle(st)
		b.phase = PhaseDragging

	case in.State == StateEnterStart && prev != PhaseStart:
		if b.page != nil {
			b.push(b.page)
			st := b.page.Style()
			black := ColorBlack
			st.Background = &black
			b.page.SetStyle(st)
		}
		b.push(b.wrapper)
		st := b.wrapper.Style()
		st.BorderRadius = 0
		st.Scale = 1
		st.TranslateY = 0
		b.wrapper.SetStyle(st)
		b.phase = PhaseStart

	case in.ActiveSnap >= till && prev != PhaseSetting:
		b.push(b.wrapper)
		st := b.wrapper.Style()
		st.BorderRadius = BorderRadius
		st.Clip = true
		st.Scale = BaseScale(in.ViewportWidth)
		st.TranslateY = wrapperLift
		st.OriginTop = true
		st.Transition = TransitionSpec{Property: "transform, border-radius", Duration: SnapDuration, Easing: Easing}
		b.wrapper.SetStyle(st)
		b.phase = PhaseSetting

	case in.ActiveSnap <= from && (prev == PhaseSetting || prev == PhaseDragging):
		b.restore(b.wrapper, fieldTransform|fieldRadius|fieldClip)
		st := b.wrapper.Style()
		st.Transition = TransitionSpec{Property: "transform, border-radius", Duration: ExitDuration, Easing: Easing}
		b.wrapper.SetStyle(st)
		b.phase = PhaseUnsetting

	case in.State == StateExited && prev != PhaseResetting && prev != PhaseNone:
		if b.page != nil {
			b.restore(b.page, fieldAll)
		}
		b.restore(b.wrapper, fieldAll)
		b.phase = PhaseResetting
	}
	return b.phase
}

// Restore writes every saved style back and forgets them.
func (b *BackgroundEffect) Restore() {
	if b.page != nil {
		b.restore(b.page, fieldAll)
	}
	if b.wrapper != nil {
		b.restore(b.wrapper, fieldTransform|fieldRadius|fieldClip)
	}
	clear(b.saved)
	b.phase = PhaseNone
}

// push records s's current style unless one is already saved. Every phase
// that writes a surface pushes it first.
func (b *BackgroundEffect) push(s Surface) {
	if _, ok := b.saved[s]; ok {
		return
	}
	b.saved[s] = s.Style()
}

// restore writes the saved values of the selected fields back to s. Without
// a saved style the fields return to FlatStyle.
func (b *BackgroundEffect) restore(s Surface, fields styleField) {
	orig, ok := b.saved[s]
	if !ok {
		orig = FlatStyle
	}
	st := s.Style()
	if fields&fieldTransform != 0 {
		st.Scale, st.TranslateY, st.OriginTop = orig.Scale, orig.TranslateY, orig.OriginTop
	}
	if fields&fieldRadius != 0 {
		st.BorderRadius = orig.BorderRadius
	}
	if fields&fieldClip != 0 {
		st.Clip = orig.Clip
	}
	if fields&fieldBackground != 0 {
		st.Background = orig.Background
	}
	s.SetStyle(st)
	if fields == fieldAll {
		delete(b.saved, s)
	}
}

// --- AnimatedSurface ---

// AnimatedSurface is a Surface that eases its rendered values towards the
// last written style using the style's transition. Hosts read Current each
// frame to draw the page wrapper.
type AnimatedSurface struct {
	target  Style
	current Style

	scale  *gween.Tween
	lift   *gween.Tween
	radius *gween.Tween
}

// NewAnimatedSurface creates a surface resting at st.
func NewAnimatedSurface(st Style) *AnimatedSurface {
	return &AnimatedSurface{target: st, current: st}
}

// Style returns the last written style.
func (a *AnimatedSurface) Style() Style {
	return a.target
}

// SetStyle sets the target style. Transform and radius animate when the
// style carries a transition; everything else applies immediately.
func (a *AnimatedSurface) SetStyle(st Style) {
	a.target = st
	a.current.Clip = st.Clip
	a.current.Background = st.Background
	a.current.OriginTop = st.OriginTop
	a.current.Transition = st.Transition

	if st.Transition.None() {
		a.current.Scale, a.current.TranslateY, a.current.BorderRadius = st.Scale, st.TranslateY, st.BorderRadius
		a.scale, a.lift, a.radius = nil, nil, nil
		return
	}
	d := float32(st.Transition.Duration.Seconds())
	fn := EaseFunc(st.Transition.Easing)
	a.scale = gween.New(float32(a.current.Scale), float32(st.Scale), d, fn)
	a.lift = gween.New(float32(a.current.TranslateY), float32(st.TranslateY), d, fn)
	a.radius = gween.New(float32(a.current.BorderRadius), float32(st.BorderRadius), d, fn)
}

// Current returns the style as rendered this frame.
func (a *AnimatedSurface) Current() Style {
	return a.current
}

// Animating reports whether any value is still easing.
func (a *AnimatedSurface) Animating() bool {
	return a.scale != nil || a.lift != nil || a.radius != nil
}

// Update advances the animation by dt.
func (a *AnimatedSurface) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	a.current.Scale = advanceTween(&a.scale, step, a.current.Scale)
	a.current.TranslateY = advanceTween(&a.lift, step, a.current.TranslateY)
	a.current.BorderRadius = advanceTween(&a.radius, step, a.current.BorderRadius)
}

// advanceTween steps *tw and returns its value, clearing it once finished.
// A nil tween leaves cur unchanged.
func advanceTween(tw **gween.Tween, dt float32, cur float64) float64 {
	if *tw == nil {
		return cur
	}
	val, done := (*tw).Update(dt)
	if done {
		*tw = nil
	}
	return float64(val)
}
