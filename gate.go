package sheet

import "time"

// dragGate decides whether a pressed pointer may start moving the panel or
// must be left to scroll content instead.
type dragGate struct {
	scrollLockTimeout time.Duration
	hasSelection      func() bool

	openedAt    time.Duration
	opened      bool
	preventedAt time.Duration
	prevented   bool
}

// markOpened starts the settle window during which drags are refused so the
// initial scroll-into-view can finish.
func (g *dragGate) markOpened(now time.Duration) {
	g.openedAt = now
	g.opened = true
}

func (g *dragGate) markPrevented(now time.Duration) {
	g.preventedAt = now
	g.prevented = true
}

// reset forgets all timestamps.
func (g *dragGate) reset() {
	*g = dragGate{scrollLockTimeout: g.scrollLockTimeout, hasSelection: g.hasSelection}
}

// allow walks up from target and reports whether the gesture may drag the
// panel, along with the reason when it may not. towardOpen is true when the
// pointer moves up, which is the direction that scrolls content down.
// atRest reports whether the panel currently sits at offset 0.
func (g *dragGate) allow(target *Region, towardOpen bool, now time.Duration, atRest bool) (bool, string) {
	if g.opened && now-g.openedAt < openSettleDelay {
		return false, "opening"
	}
	if g.hasSelection != nil && g.hasSelection() {
		return false, "text selected"
	}
	if g.prevented && now-g.preventedAt < g.scrollLockTimeout && atRest {
		g.markPrevented(now)
		return false, "scroll lock"
	}

	for r := target; r != nil; r = r.Parent {
		if !r.Scrollable() {
			continue
		}
		if !r.AtTop() {
			g.markPrevented(now)
			return false, "scrolled content"
		}
		if r.IsPanel() {
			return true, ""
		}
		if towardOpen {
			g.markPrevented(now)
			return false, "content scrolls first"
		}
	}
	return true, ""
}
