package sheet

import (
	"math"
	"testing"
	"time"
)

func TestDampen(t *testing.T) {
	if got := Dampen(math.E*math.E - 1); !approxEqual(got, 0, 1e-9) {
		t.Errorf("Dampen(e²-1) = %v, want 0", got)
	}
	if got := dampenedOvershoot(1); got != 0 {
		t.Errorf("small overshoot = %v, want 0", got)
	}
	want := 8 * (math.Log(101) - 2)
	if got := Dampen(100); !approxEqual(got, want, epsilon) {
		t.Errorf("Dampen(100) = %v, want %v", got, want)
	}
	if Dampen(200) <= Dampen(100) {
		t.Error("Dampen should grow with distance")
	}
}

func TestDragOffsetWithoutSnapPoints(t *testing.T) {
	res := ResolveSnapPoints(nil, 400, nil)
	tests := []struct {
		name        string
		distance    float64
		dismissible bool
		want        float64
	}{
		{"down dismissible", -50, true, 50},
		{"up is dampened", 50, true, -dampenedOvershoot(50)},
		{"down not dismissible is dampened", -50, false, dampenedOvershoot(50)},
		{"up not dismissible is dampened", 50, false, -dampenedOvershoot(50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dragOffset(dragInput{distance: tt.distance, res: res, active: 1, dismissible: tt.dismissible})
			if !approxEqual(got, tt.want, epsilon) {
				t.Errorf("dragOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragOffsetWithSnapPoints(t *testing.T) {
	res := ResolveSnapPoints([]SnapPoint{Fraction(0.6), Fraction(1)}, 600, nil) // [600 240 0]
	tests := []struct {
		name        string
		distance    float64
		active      int
		dismissible bool
		want        float64
	}{
		{"linear down", -100, 1, true, 340},
		{"linear up", 100, 1, true, 140},
		{"past most open", 300, 1, true, -dampenedOvershoot(60)},
		{"closing dismissible", -300, 1, true, 540},
		{"closing not dismissible", -200, 1, false, 240 + dampenedOvershoot(200)},
		{"within open range not dismissible", -100, 2, false, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dragOffset(dragInput{distance: tt.distance, res: res, active: tt.active, hasSnaps: true, dismissible: tt.dismissible})
			if !approxEqual(got, tt.want, 1e-6) {
				t.Errorf("dragOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		elapsed   time.Duration
		want      float64
		wantFlick bool
	}{
		{"slow", 50, 500 * time.Millisecond, 0.1, false},
		{"at flick speed", 100, 50 * time.Millisecond, 2, false},
		{"flick", 100, 40 * time.Millisecond, 2.5, true},
		{"sign ignored", -100, 40 * time.Millisecond, 2.5, true},
		{"no time elapsed", 10, 0, flickVelocity, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flick := Velocity(tt.distance, tt.elapsed)
			if !approxEqual(got, tt.want, epsilon) || flick != tt.wantFlick {
				t.Errorf("Velocity = (%v, %v), want (%v, %v)", got, flick, tt.want, tt.wantFlick)
			}
		})
	}
}

// --- Release decisions ---

func snapRelease(distance float64, elapsed time.Duration, active int) releaseInput {
	res := ResolveSnapPoints([]SnapPoint{Fraction(0.6), Fraction(1)}, 600, nil)
	return releaseInput{
		distance:          distance,
		elapsed:           elapsed,
		res:               res,
		active:            active,
		hasSnaps:          true,
		offset:            dragOffset(dragInput{distance: distance, res: res, active: active, hasSnaps: true, dismissible: true}),
		panelHeight:       600,
		viewportHeight:    800,
		velocityThreshold: DefaultVelocityThreshold,
		closeThreshold:    DefaultCloseThreshold,
	}
}

func TestDecideReleaseWithSnapPoints(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name string
		in   releaseInput
		want Decision
	}{
		{"flick towards closed", snapRelease(-100, 10*ms, 2), Decision{Kind: DecisionClose}},
		{"flick towards open", snapRelease(100, 10*ms, 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"flick at 3 px/ms", snapRelease(80, time.Duration(80.0/3*float64(ms)), 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"no elapsed time counts as flick", snapRelease(30, 0, 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"fast short step up", snapRelease(100, 100*ms, 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"step up at last stays", snapRelease(50, 50*ms, 2), Decision{Kind: DecisionSnap, Index: 2}},
		{"fast short step down", snapRelease(-100, 100*ms, 2), Decision{Kind: DecisionSnap, Index: 1}},
		{"step down from first closes", snapRelease(-100, 100*ms, 1), Decision{Kind: DecisionClose}},
		{"slow towards closed snaps to nearest", snapRelease(-100, time.Second, 1), Decision{Kind: DecisionSnap, Index: 1}},
		{"slow near closed closes", snapRelease(-300, time.Second, 1), Decision{Kind: DecisionClose}},
		{"long fast drag uses nearest", snapRelease(350, 500*ms, 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"velocity equal to threshold uses nearest", snapRelease(40, 100*ms, 1), Decision{Kind: DecisionSnap, Index: 1}},
		{"velocity above threshold steps", snapRelease(40, 99*ms, 1), Decision{Kind: DecisionSnap, Index: 2}},
		{"zero distance", snapRelease(0, 100*ms, 1), Decision{Kind: DecisionNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decideRelease(tt.in); got != tt.want {
				t.Errorf("decideRelease = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecideReleaseNaN(t *testing.T) {
	in := snapRelease(-100, 100*time.Millisecond, 1)
	in.offset = math.NaN()
	if got := decideRelease(in); got.Kind != DecisionNone {
		t.Errorf("NaN offset decision = %s, want none", got.Kind)
	}
}

func TestDecideReleaseWithoutSnapPoints(t *testing.T) {
	ms := time.Millisecond
	release := func(distance float64, elapsed time.Duration, panel, viewport float64) releaseInput {
		res := ResolveSnapPoints(nil, panel, nil)
		return releaseInput{
			distance:          distance,
			elapsed:           elapsed,
			res:               res,
			active:            1,
			offset:            dragOffset(dragInput{distance: distance, res: res, active: 1, dismissible: true}),
			panelHeight:       panel,
			viewportHeight:    viewport,
			velocityThreshold: DefaultVelocityThreshold,
			closeThreshold:    DefaultCloseThreshold,
		}
	}
	tests := []struct {
		name string
		in   releaseInput
		want DecisionKind
	}{
		{"upwards stays", release(50, 100*ms, 400, 800), DecisionStay},
		{"short slow drag stays", release(-50, 500*ms, 400, 800), DecisionStay},
		{"past threshold closes", release(-150, 1500*ms, 400, 800), DecisionClose},
		{"exactly at threshold closes", release(-100, 1000*ms, 400, 800), DecisionClose},
		{"fast closes", release(-50, 100*ms, 400, 800), DecisionClose},
		{"flick closes", release(-30, 5*ms, 400, 800), DecisionClose},
		{"threshold uses visible height", release(-120, 1000*ms, 1000, 400), DecisionClose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decideRelease(tt.in); got.Kind != tt.want {
				t.Errorf("decideRelease = %s, want %s", got.Kind, tt.want)
			}
		})
	}
}

func TestDecisionKindString(t *testing.T) {
	if DecisionClose.String() != "close" || DecisionKind(9).String() != "unknown" {
		t.Errorf("unexpected names: %s, %s", DecisionClose, DecisionKind(9))
	}
}
