package sheet

import (
	"math"
	"testing"
	"time"
)

func TestCubicBezierAt(t *testing.T) {
	linear := CubicBezier{0, 0, 1, 1}
	for _, x := range []float64{0.1, 0.3, 0.5, 0.9} {
		if got := linear.At(x); !approxEqual(got, x, 1e-6) {
			t.Errorf("linear At(%v) = %v", x, got)
		}
	}

	if Easing.At(0) != 0 || Easing.At(1) != 1 {
		t.Error("curve must start at 0 and end at 1")
	}
	if Easing.At(-1) != 0 || Easing.At(2) != 1 {
		t.Error("out-of-range input should clamp")
	}
	if got := Easing.At(0.5); got <= 0.5 {
		t.Errorf("ease-out curve At(0.5) = %v, want > 0.5", got)
	}
	prev := 0.0
	for i := 1; i <= 20; i++ {
		v := Easing.At(float64(i) / 20)
		if v < prev-1e-9 {
			t.Fatalf("curve not monotonic at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierString(t *testing.T) {
	if got := Easing.String(); got != "cubic-bezier(0.32,0.72,0.1,1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestEaseFunc(t *testing.T) {
	fn := EaseFunc(CubicBezier{0, 0, 1, 1})
	tests := []struct {
		name             string
		t, b, c, d, want float32
	}{
		{"start", 0, 10, 100, 1, 10},
		{"middle", 0.5, 10, 100, 1, 60},
		{"end", 1, 10, 100, 1, 110},
		{"zero duration", 0, 10, 100, 0, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fn(tt.t, tt.b, tt.c, tt.d); math.Abs(float64(got-tt.want)) > 1e-3 {
				t.Errorf("ease = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransitionSpecString(t *testing.T) {
	tests := []struct {
		spec TransitionSpec
		want string
	}{
		{TransitionSpec{Property: "transform"}, "none"},
		{transitionFor("transform", StateEntered, false), "transform 0.45s cubic-bezier(0.32,0.72,0.1,1)"},
		{transitionFor("opacity", StateEntering, false), "opacity 0.5s cubic-bezier(0.32,0.72,0.1,1)"},
		{transitionFor("transform", StateExiting, false), "transform 0.4s cubic-bezier(0.32,0.72,0.1,1)"},
		{transitionFor("transform", StateExiting, true), "none"},
	}
	for _, tt := range tests {
		if got := tt.spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// --- Tweened values ---

func TestTweenedValue(t *testing.T) {
	var v tweenedValue
	v.jump(100)
	if v.value != 100 || v.animating() {
		t.Fatalf("jump: value %v animating %v", v.value, v.animating())
	}

	spec := TransitionSpec{Property: "transform", Duration: SnapDuration, Easing: Easing}
	v.animateTo(0, spec)
	if !v.animating() {
		t.Fatal("expected tween")
	}
	tw := v.tween
	v.animateTo(0, spec)
	if v.tween != tw {
		t.Error("retargeting to the same value should keep the running tween")
	}

	v.update(SnapDuration / 2)
	if v.value <= 0 || v.value >= 100 {
		t.Errorf("mid value = %v, want between 0 and 100", v.value)
	}
	v.update(SnapDuration)
	if v.value != 0 || v.animating() {
		t.Errorf("end value = %v animating %v, want 0 settled", v.value, v.animating())
	}

	v.animateTo(50, TransitionSpec{})
	if v.value != 50 || v.animating() {
		t.Errorf("disabled transition should jump, got %v", v.value)
	}
}

func TestPanelAnimatorFrame(t *testing.T) {
	a := newPanelAnimator(400)
	f := a.frame()
	if f.Offset != 400 || f.Scale != 1 || f.Overlay != 0 || f.Animating {
		t.Fatalf("initial frame = %+v", f)
	}

	spec := TransitionSpec{Property: "transform", Duration: EntryDuration, Easing: Easing}
	a.offset.animateTo(0, spec)
	a.overlay.animateTo(1, spec)
	if !a.frame().Animating {
		t.Fatal("expected animating frame")
	}
	for range 40 {
		a.update(16 * time.Millisecond)
	}
	f = a.frame()
	if f.Animating || f.Offset != 0 || f.Overlay != 1 {
		t.Errorf("settled frame = %+v", f)
	}
}
