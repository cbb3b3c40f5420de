package sheet

import (
	"math"
	"time"
)

// Dampen is the resistance curve applied to drag distance beyond a travel
// limit. It grows logarithmically and is negative for overshoots below
// e²-1 px, which callers clamp to zero so small overshoots do not move the
// panel at all.
func Dampen(v float64) float64 {
	return 8 * (math.Log(v+1) - 2)
}

func dampenedOvershoot(v float64) float64 {
	return max(Dampen(v), 0)
}

// dragInput is everything the drag mapping needs for one pointer sample.
type dragInput struct {
	// distance is startY - currentY: positive when the pointer moved up,
	// towards open.
	distance    float64
	res         Resolution
	active      int
	hasSnaps    bool
	dismissible bool
}

// dragOffset maps a signed drag distance to the panel's translate-Y from its
// fully open position. Travel between the extremes is linear; overshoot past
// the most open point, and for non-dismissible sheets past the first real
// snap point, is dampened.
func dragOffset(in dragInput) float64 {
	if !in.hasSnaps {
		switch {
		case in.distance > 0:
			return -dampenedOvershoot(in.distance)
		case !in.dismissible:
			return dampenedOvershoot(-in.distance)
		default:
			return -in.distance
		}
	}

	target := in.res.Offset(in.active) - in.distance
	mostOpen := in.res.Offset(in.res.Last())
	if target < mostOpen {
		return mostOpen - dampenedOvershoot(mostOpen-target)
	}
	if !in.dismissible && in.res.Len() > 1 {
		firstOpen := in.res.Offset(1)
		if target > firstOpen {
			return firstOpen + dampenedOvershoot(target-firstOpen)
		}
	}
	return target
}

// Velocity returns |distance| / elapsed in px/ms. The second result reports
// a fast flick: either the speed exceeds the flick threshold or no time
// elapsed at all, in which case the returned speed is the threshold itself
// rather than +Inf.
func Velocity(distance float64, elapsed time.Duration) (float64, bool) {
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		return flickVelocity, true
	}
	v := math.Abs(distance) / ms
	return v, v > flickVelocity
}

// DecisionKind is the outcome class of a release.
type DecisionKind uint8

const (
	DecisionNone  DecisionKind = iota // nothing to commit
	DecisionSnap                      // settle on Decision.Index
	DecisionClose                     // close the sheet
	DecisionStay                      // spring back to the current open position
)

var decisionNames = [...]string{"none", "snap", "close", "stay"}

func (k DecisionKind) String() string {
	if int(k) < len(decisionNames) {
		return decisionNames[k]
	}
	return "unknown"
}

// Decision is the result of evaluating a release.
type Decision struct {
	Kind  DecisionKind
	Index int
}

// releaseInput carries one completed gesture.
type releaseInput struct {
	distance          float64 // startY - endY, positive towards open
	elapsed           time.Duration
	res               Resolution
	active            int
	hasSnaps          bool
	offset            float64 // panel translate-Y at release
	panelHeight       float64
	viewportHeight    float64
	velocityThreshold float64
	closeThreshold    float64
}

// decideRelease selects where the panel settles after a gesture. The first
// matching rule wins:
//
//  1. flick towards closed: close;
//  2. flick towards open with snap points: jump to the most open point;
//  3. faster than the velocity threshold and shorter than 40% of the
//     viewport: move exactly one snap point in the gesture's direction;
//  4. otherwise settle on the snap point nearest to where the panel is.
//
// Without snap points the choice is binary: close when the gesture moved
// towards closed faster than the velocity threshold or further than
// closeThreshold of the visible panel, otherwise stay open.
func decideRelease(in releaseInput) Decision {
	if math.IsNaN(in.offset) || math.IsNaN(in.distance) || in.distance == 0 {
		return Decision{Kind: DecisionNone}
	}
	velocity, flick := Velocity(in.distance, in.elapsed)

	if !in.hasSnaps {
		if in.distance > 0 {
			return Decision{Kind: DecisionStay, Index: 1}
		}
		if flick || velocity > in.velocityThreshold {
			return Decision{Kind: DecisionClose}
		}
		visible := math.Min(in.panelHeight, in.viewportHeight)
		if in.offset >= visible*in.closeThreshold {
			return Decision{Kind: DecisionClose}
		}
		return Decision{Kind: DecisionStay, Index: 1}
	}

	if flick && in.distance < 0 {
		return Decision{Kind: DecisionClose}
	}
	if flick && in.distance > 0 {
		return Decision{Kind: DecisionSnap, Index: in.res.Last()}
	}

	position := in.res.Offset(in.active) - in.distance
	if velocity > in.velocityThreshold && math.Abs(in.distance) < in.viewportHeight*stepDistanceFraction {
		if in.distance > 0 {
			if in.active >= in.res.Last() {
				return Decision{Kind: DecisionSnap, Index: in.active}
			}
			return Decision{Kind: DecisionSnap, Index: in.active + 1}
		}
		if in.active <= 1 {
			return Decision{Kind: DecisionClose}
		}
		return Decision{Kind: DecisionSnap, Index: in.active - 1}
	}

	nearest := in.res.Nearest(position)
	if nearest == 0 {
		return Decision{Kind: DecisionClose}
	}
	return Decision{Kind: DecisionSnap, Index: nearest}
}
