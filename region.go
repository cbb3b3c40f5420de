package sheet

// Region is a rectangular area of panel content. Regions form a tree rooted
// at the panel; the drag gate walks it upwards from the pointer target to
// decide whether a gesture scrolls content or moves the panel.
//
// Bounds are expressed in the parent's content coordinates, so a parent's
// ScrollTop shifts all of its children.
type Region struct {
	Name   string
	Bounds Rect
	// ContentHeight is the height of the scrollable content. A region whose
	// content is taller than its bounds is scrollable.
	ContentHeight float64
	// ScrollTop is how far the content is scrolled, 0 at the top edge.
	ScrollTop float64
	UserData  any

	Parent   *Region
	children []*Region
	panel    bool
}

// NewRegion creates a detached region with the given bounds.
func NewRegion(name string, bounds Rect) *Region {
	return &Region{Name: name, Bounds: bounds, ContentHeight: bounds.Height}
}

// AddChild appends child, detaching it from any previous parent. Later
// children are on top for hit testing.
func (r *Region) AddChild(child *Region) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = r
	r.children = append(r.children, child)
}

// RemoveChild detaches child. It is a no-op if child is not a direct child.
func (r *Region) RemoveChild(child *Region) {
	for i, c := range r.children {
		if c == child {
			copy(r.children[i:], r.children[i+1:])
			r.children[len(r.children)-1] = nil
			r.children = r.children[:len(r.children)-1]
			child.Parent = nil
			return
		}
	}
}

// Children returns the region's children. The returned slice MUST NOT be mutated.
func (r *Region) Children() []*Region {
	return r.children
}

// IsPanel reports whether r is the root region of a sheet's panel.
func (r *Region) IsPanel() bool {
	return r.panel
}

// Scrollable reports whether the content overflows the bounds.
func (r *Region) Scrollable() bool {
	return r.ContentHeight > r.Bounds.Height
}

// AtTop reports whether the content is scrolled to its top edge.
func (r *Region) AtTop() bool {
	return r.ScrollTop <= 0
}

// ScrollBy scrolls the content by dy, clamped to the scrollable range, and
// returns the amount actually scrolled.
func (r *Region) ScrollBy(dy float64) float64 {
	maxTop := max(r.ContentHeight-r.Bounds.Height, 0)
	prev := r.ScrollTop
	r.ScrollTop = min(max(r.ScrollTop+dy, 0), maxTop)
	return r.ScrollTop - prev
}

// HitTest returns the deepest region containing the point (x, y), given in
// r's parent content coordinates, or nil if r does not contain it.
func (r *Region) HitTest(x, y float64) *Region {
	if !r.Bounds.Contains(x, y) {
		return nil
	}
	lx := x - r.Bounds.X
	ly := y - r.Bounds.Y + r.ScrollTop
	// Iterate backward: topmost child first.
	for i := len(r.children) - 1; i >= 0; i-- {
		if hit := r.children[i].HitTest(lx, ly); hit != nil {
			return hit
		}
	}
	return r
}
