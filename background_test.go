package sheet

import (
	"testing"
	"time"
)

func TestBaseScale(t *testing.T) {
	if got := BaseScale(400); !approxEqual(got, 374.0/400, epsilon) {
		t.Errorf("BaseScale(400) = %v, want %v", got, 374.0/400)
	}
	if got := BaseScale(0); got != 1 {
		t.Errorf("BaseScale(0) = %v, want 1", got)
	}
}

func TestDragStyle(t *testing.T) {
	base := BaseScale(400)
	tests := []struct {
		name   string
		p      float64
		scale  float64
		radius float64
		lift   float64
	}{
		{"settled", 0, base, BorderRadius, NestedDisplacement},
		{"seventy percent", 0.7, base + 0.7*(1-base), 2.4, 4.8},
		{"flat", 1, 1, 0, 0},
		{"overshoot", 1.5, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := DragStyle(tt.p, 400)
			if !approxEqual(st.Scale, tt.scale, 1e-9) {
				t.Errorf("Scale = %v, want %v", st.Scale, tt.scale)
			}
			if !approxEqual(st.BorderRadius, tt.radius, 1e-9) {
				t.Errorf("BorderRadius = %v, want %v", st.BorderRadius, tt.radius)
			}
			if !approxEqual(st.TranslateY, tt.lift, 1e-9) {
				t.Errorf("TranslateY = %v, want %v", st.TranslateY, tt.lift)
			}
			if !st.Transition.None() {
				t.Error("drag styles should not animate")
			}
		})
	}
}

func TestBackgroundEffectLifecycle(t *testing.T) {
	wrapper := NewAnimatedSurface(FlatStyle)
	page := NewAnimatedSurface(FlatStyle)
	b := NewBackgroundEffect(wrapper, page)
	snaps := ResolveSnapPoints(nil, 400, nil)
	in := BackgroundInput{Snaps: snaps, ViewportWidth: 400}

	in.State = StateEnterStart
	if got := b.Apply(in); got != PhaseStart {
		t.Fatalf("phase = %q, want start", got)
	}
	if bg := page.Style().Background; bg == nil || *bg != ColorBlack {
		t.Errorf("page background = %v, want black", bg)
	}

	in.State, in.ActiveSnap = StateEntering, 1
	if got := b.Apply(in); got != PhaseSetting {
		t.Fatalf("phase = %q, want setting", got)
	}
	st := wrapper.Style()
	if !approxEqual(st.Scale, BaseScale(400), epsilon) || st.BorderRadius != BorderRadius || st.TranslateY != wrapperLift {
		t.Errorf("wrapper style = %+v", st)
	}
	if !st.Clip || !st.OriginTop {
		t.Error("wrapper should clip and scale from the top")
	}
	if st.Transition.Duration != SnapDuration {
		t.Errorf("transition = %v, want snap duration", st.Transition.Duration)
	}

	in.State, in.Dragging, in.DraggedDistance = StateEntered, true, 200
	if got := b.Apply(in); got != PhaseDragging {
		t.Fatalf("phase = %q, want dragging", got)
	}
	want := BaseScale(400) + 0.5*(1-BaseScale(400))
	if got := wrapper.Style().Scale; !approxEqual(got, want, epsilon) {
		t.Errorf("dragging scale = %v, want %v", got, want)
	}

	in.Dragging, in.ActiveSnap, in.State = false, 0, StateExitStart
	if got := b.Apply(in); got != PhaseUnsetting {
		t.Fatalf("phase = %q, want unsetting", got)
	}
	st = wrapper.Style()
	if st.Scale != 1 || st.BorderRadius != 0 || st.Clip {
		t.Errorf("wrapper not restored: %+v", st)
	}

	in.State = StateExited
	if got := b.Apply(in); got != PhaseResetting {
		t.Fatalf("phase = %q, want resetting", got)
	}
	if page.Style().Background != nil {
		t.Error("page background should be restored")
	}
	if got := b.Apply(in); got != PhaseResetting {
		t.Errorf("repeated apply changed phase to %q", got)
	}
}

func TestBackgroundEffectClosedSheetIsIdle(t *testing.T) {
	wrapper := NewAnimatedSurface(FlatStyle)
	b := NewBackgroundEffect(wrapper, nil)
	in := BackgroundInput{Snaps: ResolveSnapPoints(nil, 400, nil), ViewportWidth: 400, State: StateExited}
	if got := b.Apply(in); got != PhaseNone {
		t.Errorf("phase = %q, want none for a sheet that never opened", got)
	}
}

func TestBackgroundEffectRestore(t *testing.T) {
	orig := Style{Scale: 1, BorderRadius: 3}
	wrapper := NewAnimatedSurface(orig)
	page := NewAnimatedSurface(FlatStyle)
	b := NewBackgroundEffect(wrapper, page)
	snaps := ResolveSnapPoints(nil, 400, nil)

	b.Apply(BackgroundInput{Snaps: snaps, ViewportWidth: 400, State: StateEnterStart})
	b.Apply(BackgroundInput{Snaps: snaps, ViewportWidth: 400, State: StateEntering, ActiveSnap: 1})
	b.Restore()

	if got := wrapper.Style(); got.Scale != 1 || got.BorderRadius != 3 || got.Clip {
		t.Errorf("wrapper after Restore = %+v, want original", got)
	}
	if page.Style().Background != nil {
		t.Error("page background should be restored")
	}
	if b.Phase() != PhaseNone {
		t.Errorf("phase = %q, want none", b.Phase())
	}
}

func TestBackgroundEffectAttachedWhileOpen(t *testing.T) {
	orig := Style{Scale: 0.9, TranslateY: 2, BorderRadius: 3}
	snaps := ResolveSnapPoints(nil, 400, nil)
	tests := []struct {
		name  string
		first BackgroundInput
	}{
		{"first write while dragging", BackgroundInput{Dragging: true, DraggedDistance: 100, ActiveSnap: 1, State: StateEntered}},
		{"first write at the last snap point", BackgroundInput{ActiveSnap: 1, State: StateEntered}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapper := NewAnimatedSurface(orig)
			b := NewBackgroundEffect(wrapper, nil)
			tt.first.Snaps, tt.first.ViewportWidth = snaps, 400
			b.Apply(tt.first)
			if wrapper.Style().BorderRadius == orig.BorderRadius && wrapper.Style().Scale == orig.Scale {
				t.Fatal("first apply should restyle the wrapper")
			}

			got := b.Apply(BackgroundInput{Snaps: snaps, ViewportWidth: 400, State: StateExitStart})
			if got != PhaseUnsetting {
				t.Fatalf("phase = %q, want unsetting", got)
			}
			st := wrapper.Style()
			if st.Scale != orig.Scale || st.TranslateY != orig.TranslateY || st.BorderRadius != orig.BorderRadius || st.Clip {
				t.Errorf("wrapper after unsetting = %+v, want the style it had when attached", st)
			}
		})
	}
}

func TestBackgroundEffectNilWrapper(t *testing.T) {
	b := NewBackgroundEffect(nil, nil)
	if got := b.Apply(BackgroundInput{State: StateEnterStart}); got != PhaseNone {
		t.Errorf("phase = %q, want none", got)
	}
	b.Restore()
}

// --- AnimatedSurface ---

func TestAnimatedSurfaceEases(t *testing.T) {
	a := NewAnimatedSurface(FlatStyle)
	a.SetStyle(Style{
		Scale:        0.9,
		BorderRadius: 8,
		Transition:   TransitionSpec{Property: "transform", Duration: SnapDuration, Easing: Easing},
	})
	if !a.Animating() {
		t.Fatal("expected animation")
	}
	a.Update(SnapDuration / 2)
	mid := a.Current()
	if mid.Scale >= 1 || mid.Scale <= 0.9 {
		t.Errorf("mid scale = %v, want between 0.9 and 1", mid.Scale)
	}
	a.Update(SnapDuration)
	end := a.Current()
	if !approxEqual(end.Scale, 0.9, 1e-5) || !approxEqual(end.BorderRadius, 8, 1e-5) {
		t.Errorf("end style = %+v, want scale 0.9 radius 8", end)
	}
	if a.Animating() {
		t.Error("animation should be finished")
	}
}

func TestAnimatedSurfaceWithoutTransition(t *testing.T) {
	a := NewAnimatedSurface(FlatStyle)
	black := ColorBlack
	a.SetStyle(Style{Scale: 0.5, Background: &black})
	if a.Animating() {
		t.Error("style without transition should apply immediately")
	}
	if c := a.Current(); c.Scale != 0.5 || c.Background == nil {
		t.Errorf("current = %+v", c)
	}
	a.Update(time.Second)
	if a.Current().Scale != 0.5 {
		t.Error("Update should not move a settled surface")
	}
}
