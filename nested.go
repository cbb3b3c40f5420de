package sheet

import "errors"

// ErrNoParent is returned by NewNested when no parent sheet is supplied.
var ErrNoParent = errors.New("sheet: nested sheet requires a parent sheet")

// NestedCoordinator is the part of a sheet that nested children report to.
// Each sheet owns one; children hold a reference to their parent's and never
// own it.
type NestedCoordinator struct {
	depth    int
	open     bool
	dragging bool
	progress float64
	state    *Transition

	// notify is called after every change so the owning sheet can re-run
	// its effects.
	notify func()
}

func newNestedCoordinator(sched *Scheduler, depth int) *NestedCoordinator {
	return &NestedCoordinator{
		depth: depth,
		state: NewTransition(sched, false, EntryDuration, ExitDuration),
	}
}

// Depth returns the nesting level of the owning sheet, 0 for a root sheet.
func (c *NestedCoordinator) Depth() int {
	return c.depth
}

// Open reports whether a nested child is open.
func (c *NestedCoordinator) Open() bool {
	return c.open
}

// Dragging reports whether a nested child is being dragged.
func (c *NestedCoordinator) Dragging() bool {
	return c.dragging
}

// Progress returns how far (0..1) the child has been dragged.
func (c *NestedCoordinator) Progress() float64 {
	return c.progress
}

// State returns the child's visibility transition state as seen by the parent.
func (c *NestedCoordinator) State() TransitionState {
	return c.state.State()
}

// Drag records a child's drag progress. Negative progress is ignored.
func (c *NestedCoordinator) Drag(progress float64) {
	if progress < 0 {
		return
	}
	c.dragging = true
	c.progress = progress
	c.changed()
}

// Release records the end of a child's gesture.
func (c *NestedCoordinator) Release(open bool) {
	c.dragging = false
	c.changed()
}

// OpenChange records a child opening or closing.
func (c *NestedCoordinator) OpenChange(open bool) {
	c.open = open
	c.state.SetActive(open)
	c.changed()
}

// displacementScale is the resting scale of the owning panel while a child
// sits above it. Deeper sheets shrink by a larger share of the base
// displacement.
func (c *NestedCoordinator) displacementScale(viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return 1
	}
	offset := NestedDisplacement - NestedDisplacement/float64(c.depth+2)
	return (viewportWidth - offset) / viewportWidth
}

func (c *NestedCoordinator) changed() {
	if c.notify != nil {
		c.notify()
	}
}
