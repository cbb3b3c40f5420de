package sheet

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch
	noPointer   = -1
)

// --- Per-pointer state ---

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// --- Listener registry ---

// Listener receives the pointer gesture of a single pointer. PointerDown
// reports whether the listener claims the gesture; the claiming listener
// receives every following move and the release.
type Listener interface {
	PointerDown(PointerEvent) bool
	PointerMove(PointerEvent)
	PointerUp(PointerEvent)
}

type listenerEntry struct {
	id uint32
	l  Listener
}

type listenerRegistry struct {
	entries []listenerEntry
	nextID  uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	input *Input
}

// Remove unregisters the listener so it no longer receives events. A
// gesture it had claimed is dropped without a release.
func (h CallbackHandle) Remove() {
	if h.input == nil {
		return
	}
	in := h.input
	for i := range in.listeners.entries {
		if in.listeners.entries[i].id == h.id {
			copy(in.listeners.entries[i:], in.listeners.entries[i+1:])
			in.listeners.entries[len(in.listeners.entries)-1] = listenerEntry{}
			in.listeners.entries = in.listeners.entries[:len(in.listeners.entries)-1]
			break
		}
	}
	if in.captured == h.id {
		in.captured = 0
	}
}

// Input turns ebiten mouse and touch state into single-pointer gestures.
// Only the first pointer to go down is tracked; others are ignored until it
// lifts. Call Update once per tick before updating the sheets.
type Input struct {
	listeners listenerRegistry
	captured  uint32
	active    int

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// NewInput creates an input tracker with no listeners.
func NewInput() *Input {
	return &Input{active: noPointer}
}

// Listen registers l. Listeners registered later are asked first, so the
// most recently attached sheet sits on top.
func (in *Input) Listen(l Listener) CallbackHandle {
	in.listeners.nextID++
	id := in.listeners.nextID
	in.listeners.entries = append(in.listeners.entries, listenerEntry{id: id, l: l})
	return CallbackHandle{id: id, input: in}
}

// Active returns the ID of the pointer driving the current gesture, or -1.
func (in *Input) Active() int {
	return in.active
}

// Update reads pointer state for this tick. A queued synthetic event, if
// any, replaces real input for the tick.
func (in *Input) Update() {
	if in.processInjectedInput() {
		return
	}
	in.processMousePointer()
	in.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (in *Input) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.processPointer(0, float64(mx), float64(my), pressed, false)
}

// processTouchPointers handles touch input (pointers 1-9).
func (in *Input) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		in.processPointer(slot, float64(tx), float64(ty), true, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false, true)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer.
func (in *Input) processPointer(pointerID int, x, y float64, pressed, touch bool) {
	ps := &in.pointers[pointerID]
	evt := PointerEvent{PointerID: pointerID, X: x, Y: y, Touch: touch}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		if in.active != noPointer {
			return
		}
		in.active = pointerID
		in.firePointerDown(evt)

	case !pressed && ps.down:
		ps.down = false
		if in.active != pointerID {
			return
		}
		in.firePointerUp(evt)
		in.active = noPointer
		in.captured = 0

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = x, y
		if in.active == pointerID {
			in.firePointerMove(evt)
		}

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// --- Event dispatch ---

func (in *Input) firePointerDown(evt PointerEvent) {
	// Topmost (most recently registered) listener first.
	for i := len(in.listeners.entries) - 1; i >= 0; i-- {
		e := in.listeners.entries[i]
		if e.l.PointerDown(evt) {
			in.captured = e.id
			return
		}
	}
}

func (in *Input) firePointerMove(evt PointerEvent) {
	if l := in.capturedListener(); l != nil {
		l.PointerMove(evt)
	}
}

func (in *Input) firePointerUp(evt PointerEvent) {
	if l := in.capturedListener(); l != nil {
		l.PointerUp(evt)
	}
}

func (in *Input) capturedListener() Listener {
	if in.captured == 0 {
		return nil
	}
	for _, e := range in.listeners.entries {
		if e.id == in.captured {
			return e.l
		}
	}
	return nil
}
