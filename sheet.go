package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the backdrop painted behind a scaled page wrapper.
var ColorBlack = Color{0, 0, 0, 1}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Timing and geometry ---

const (
	EntryDuration = 500 * time.Millisecond // open animation
	ExitDuration  = 400 * time.Millisecond // close animation
	SnapDuration  = 450 * time.Millisecond // moving between snap points

	DefaultVelocityThreshold = 0.4 // px/ms
	DefaultCloseThreshold    = 0.25
	DefaultScrollLockTimeout = 100 * time.Millisecond

	BorderRadius       = 8.0  // wrapper corner radius when the page is scaled back
	NestedDisplacement = 16.0 // base horizontal inset for nested panels
	WindowTopOffset    = 26.0 // horizontal inset of the scaled page wrapper
)

const (
	flickVelocity        = 2.0 // px/ms; above this a release skips the snap search
	stepDistanceFraction = 0.4 // of the viewport height; single-step releases must stay under it
	openSettleDelay      = 500 * time.Millisecond
	nestedLift           = 24.0
	wrapperLift          = 14.0
)

// CubicBezier holds the two control points of a CSS-style timing curve.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Easing is the curve shared by entry, exit and snap transitions.
var Easing = CubicBezier{0.32, 0.72, 0.1, 1}

// String formats the curve the way CSS writes it.
func (c CubicBezier) String() string {
	parts := []string{
		strconv.FormatFloat(c.X1, 'g', -1, 64),
		strconv.FormatFloat(c.Y1, 'g', -1, 64),
		strconv.FormatFloat(c.X2, 'g', -1, 64),
		strconv.FormatFloat(c.Y2, 'g', -1, 64),
	}
	return "cubic-bezier(" + strings.Join(parts, ",") + ")"
}

// --- Transition states ---

// TransitionState is a phase of the enter/exit animation.
type TransitionState uint8

const (
	StateEnterStart TransitionState = iota // open requested, panel still off-screen
	StateEntering                          // entry animation running
	StateEntered                           // fully shown
	StateExitStart                         // close requested, exit not yet animating
	StateExiting                           // exit animation running
	StateExited                            // fully hidden
)

var stateNames = [...]string{"enter-start", "entering", "entered", "exit-start", "exiting", "exited"}

// String returns the state's label, e.g. "enter-start".
func (s TransitionState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("TransitionState(%d)", uint8(s))
}

// exiting reports whether the state is one of the exit phases.
func (s TransitionState) exiting() bool {
	return s == StateExitStart || s == StateExiting
}

func (s TransitionState) entering() bool {
	return s == StateEnterStart || s == StateEntering
}

// TransitionSpec describes how a property animates towards its next value.
// A zero Duration means the change applies immediately.
type TransitionSpec struct {
	Property string
	Duration time.Duration
	Easing   CubicBezier
}

// None reports whether the transition is disabled.
func (t TransitionSpec) None() bool {
	return t.Duration == 0
}

// String renders t as a CSS transition value, or "none".
func (t TransitionSpec) String() string {
	if t.None() {
		return "none"
	}
	return fmt.Sprintf("%s %ss %s", t.Property,
		strconv.FormatFloat(t.Duration.Seconds(), 'g', -1, 64), t.Easing)
}

// transitionFor picks the duration matching the current phase: entry and exit
// phases use their own timings, everything else animates like a snap.
func transitionFor(property string, state TransitionState, disabled bool) TransitionSpec {
	if disabled {
		return TransitionSpec{Property: property}
	}
	switch {
	case state.exiting():
		return TransitionSpec{Property: property, Duration: ExitDuration, Easing: Easing}
	case state.entering():
		return TransitionSpec{Property: property, Duration: EntryDuration, Easing: Easing}
	}
	return TransitionSpec{Property: property, Duration: SnapDuration, Easing: Easing}
}

// --- Pointer input ---

// PointerEvent carries one pointer sample delivered to a sheet.
type PointerEvent struct {
	PointerID int
	X, Y      float64
	// Target is the deepest region of the panel under the pointer, or nil
	// when the pointer is outside the panel.
	Target *Region
	Touch  bool
}

// EventType identifies a kind of sheet event forwarded to an EventSink.
type EventType uint8

const (
	EventOpenChange   EventType = iota // logical open state flipped
	EventSnapChange                    // active snap index changed
	EventStateChange                   // transition state advanced
	EventDrag                          // a confirmed drag moved the panel
	EventRelease                       // a drag gesture ended
	EventNestedChange                  // a nested child opened, closed, dragged or released
)
