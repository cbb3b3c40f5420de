package sheet

import "math"

// SnapPoint is a resting position of the panel, measured from the bottom of
// the panel upwards: either a fraction of the panel height or an absolute
// number of visible pixels.
type SnapPoint struct {
	Value  float64
	Pixels bool
}

// Fraction returns a snap point showing f of the panel height.
func Fraction(f float64) SnapPoint {
	return SnapPoint{Value: f}
}

// Px returns a snap point showing v pixels of the panel.
func Px(v float64) SnapPoint {
	return SnapPoint{Value: v, Pixels: true}
}

// Resolution is the concrete geometry derived from a snap point list.
type Resolution struct {
	// Points is the input list with the implicit closed (and, for an empty
	// input, fully open) entries added.
	Points []SnapPoint
	// Offsets[i] is how far the panel is translated down from fully open to
	// rest at Points[i]. Offsets[0] is the closed position.
	Offsets   []float64
	FadeRange [2]int
}

// ResolveSnapPoints converts points into pixel offsets for a panel of the
// given height. points must be ordered from least to most open. fade selects
// the pair of indices across which the backdrop fades in; anything but two
// in-range indices falls back to the full range.
func ResolveSnapPoints(points []SnapPoint, panelHeight float64, fade []int) Resolution {
	resolved := make([]SnapPoint, 0, len(points)+2)
	if len(points) == 0 || points[0].Value != 0 {
		resolved = append(resolved, Fraction(0))
	}
	if len(points) > 0 {
		resolved = append(resolved, points...)
	} else {
		resolved = append(resolved, Fraction(1))
	}

	offsets := make([]float64, len(resolved))
	for i, p := range resolved {
		visible := p.Value * panelHeight
		if p.Pixels {
			visible = p.Value
		}
		offsets[i] = panelHeight - visible
	}

	return Resolution{
		Points:    resolved,
		Offsets:   offsets,
		FadeRange: resolveFadeRange(fade, len(offsets)),
	}
}

func resolveFadeRange(fade []int, n int) [2]int {
	full := [2]int{0, n - 1}
	if len(fade) != 2 {
		return full
	}
	from, till := fade[0], fade[1]
	if from < 0 || till < 0 || from >= n || till >= n || from > till {
		return full
	}
	return [2]int{from, till}
}

// Len returns the number of resolved snap points, including the closed one.
func (r Resolution) Len() int {
	return len(r.Offsets)
}

// Last returns the index of the most open snap point.
func (r Resolution) Last() int {
	return len(r.Offsets) - 1
}

// Offset returns the offset for index i, clamped into range. An empty
// resolution yields 0.
func (r Resolution) Offset(i int) float64 {
	if len(r.Offsets) == 0 {
		return 0
	}
	return r.Offsets[r.Clamp(i)]
}

// Clamp forces i into [0, Last()].
func (r Resolution) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > r.Last() {
		return max(r.Last(), 0)
	}
	return i
}

// Nearest returns the index whose offset is numerically closest to pos.
// Ties resolve to the lower index.
func (r Resolution) Nearest(pos float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, off := range r.Offsets {
		if d := math.Abs(off - pos); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Progress reports how far current has travelled from Offsets[from] to
// Offsets[till], in [0, 1]. Positions at or beyond till report 1, at or
// before from report 0. Out-of-range indices report 0.
func (r Resolution) Progress(current float64, from, till int) float64 {
	if from < 0 || till < 0 || from >= len(r.Offsets) || till >= len(r.Offsets) {
		return 0
	}
	fromOffset := r.Offsets[from]
	tillOffset := r.Offsets[till]
	if current <= tillOffset {
		return 1
	}
	if current >= fromOffset {
		return 0
	}
	return (fromOffset - current) / (fromOffset - tillOffset)
}
