package sheet

// EventSink is the interface for an optional event bridge. When set on a
// Sheet, every open, snap, transition, drag and release change is forwarded
// to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries one sheet change for the bridge. Fields that do not apply to
// the event's Type are left zero.
type Event struct {
	Type  EventType
	Depth int
	// State is set for EventStateChange.
	State TransitionState
	// Index is the active snap index for EventSnapChange and EventRelease.
	Index int
	// Open is the new open state for EventOpenChange, whether the sheet
	// stays open for EventRelease, and the child's open state for
	// EventNestedChange.
	Open bool
	// Progress is the drag progress for EventDrag and EventNestedChange.
	Progress float64
}

// EventRecorder is an EventSink that keeps every event. It is handy for
// tests and replays.
type EventRecorder struct {
	Events []Event
}

// EmitEvent appends event.
func (r *EventRecorder) EmitEvent(event Event) {
	r.Events = append(r.Events, event)
}

// Count returns how many recorded events have type t.
func (r *EventRecorder) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.Events = r.Events[:0]
}

func (s *Sheet) emit(e Event) {
	if s.store == nil {
		return
	}
	e.Depth = s.nested.Depth()
	s.store.EmitEvent(e)
}
