package sheet

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EaseFunc returns a gween easing function following the cubic-bezier
// timing curve c, the way CSS evaluates it: x is time, y is progress.
func EaseFunc(c CubicBezier) ease.TweenFunc {
	return func(t, b, d, dur float32) float32 {
		if dur <= 0 {
			return b + d
		}
		x := float64(t / dur)
		return b + d*float32(c.At(x))
	}
}

// At returns the curve's progress at time fraction x in [0, 1].
func (c CubicBezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	u := c.solveX(x)
	return bezier(u, c.Y1, c.Y2)
}

// bezier evaluates one axis of a cubic bezier anchored at 0 and 1.
func bezier(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierSlope(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}

// solveX finds the curve parameter whose x equals x. Newton iterations
// converge for well-behaved curves; bisection covers flat slopes.
func (c CubicBezier) solveX(x float64) float64 {
	const epsilon = 1e-7
	u := x
	for range 8 {
		dx := bezier(u, c.X1, c.X2) - x
		if math.Abs(dx) < epsilon {
			return u
		}
		slope := bezierSlope(u, c.X1, c.X2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		u -= dx / slope
	}

	lo, hi := 0.0, 1.0
	u = x
	for range 64 {
		v := bezier(u, c.X1, c.X2)
		if math.Abs(v-x) < epsilon {
			break
		}
		if v < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// --- Tweened values ---

// tweenedValue eases a single float towards a target. It jumps when the
// transition is disabled and retargets from wherever it currently is.
type tweenedValue struct {
	value  float64
	target float64
	tween  *gween.Tween
}

func (v *tweenedValue) jump(to float64) {
	v.value, v.target, v.tween = to, to, nil
}

// animateTo starts easing towards to. Calls with an unchanged target keep
// the running tween.
func (v *tweenedValue) animateTo(to float64, spec TransitionSpec) {
	if spec.None() {
		v.jump(to)
		return
	}
	if to == v.target && (v.tween != nil || v.value == to) {
		return
	}
	v.target = to
	v.tween = gween.New(float32(v.value), float32(to), float32(spec.Duration.Seconds()), EaseFunc(spec.Easing))
}

func (v *tweenedValue) update(dt time.Duration) {
	if v.tween == nil {
		return
	}
	val, done := v.tween.Update(float32(dt.Seconds()))
	v.value = float64(val)
	if done {
		v.value = v.target
		v.tween = nil
	}
}

func (v *tweenedValue) animating() bool {
	return v.tween != nil
}

// Frame is the animated, render-ready state of a sheet for the current tick.
type Frame struct {
	// Offset is the panel's translate-Y from its fully open position.
	Offset float64
	// Scale is the panel's scale, below 1 while a nested child is above it.
	Scale float64
	// Radius is the panel's top corner radius.
	Radius float64
	// Overlay is the backdrop opacity in [0, 1].
	Overlay float64
	// Animating reports whether any value is still easing.
	Animating bool
}

// panelAnimator owns the tweens that turn the sheet's discrete targets into
// motion.
type panelAnimator struct {
	offset  tweenedValue
	scale   tweenedValue
	radius  tweenedValue
	overlay tweenedValue
}

func newPanelAnimator(offset float64) *panelAnimator {
	a := &panelAnimator{}
	a.offset.jump(offset)
	a.scale.jump(1)
	return a
}

func (a *panelAnimator) update(dt time.Duration) {
	a.offset.update(dt)
	a.scale.update(dt)
	a.radius.update(dt)
	a.overlay.update(dt)
}

func (a *panelAnimator) frame() Frame {
	return Frame{
		Offset:    a.offset.value,
		Scale:     a.scale.value,
		Radius:    a.radius.value,
		Overlay:   a.overlay.value,
		Animating: a.offset.animating() || a.scale.animating() || a.radius.animating() || a.overlay.animating(),
	}
}
