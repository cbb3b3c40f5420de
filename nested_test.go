package sheet

import (
	"testing"
	"time"
)

func TestNestedCoordinatorDrag(t *testing.T) {
	c := newNestedCoordinator(NewScheduler(), 0)
	calls := 0
	c.notify = func() { calls++ }

	c.Drag(-0.2)
	if c.Dragging() || calls != 0 {
		t.Fatal("negative progress should be ignored")
	}
	c.Drag(0.7)
	if !c.Dragging() || c.Progress() != 0.7 {
		t.Errorf("Dragging = %v, Progress = %v, want true, 0.7", c.Dragging(), c.Progress())
	}
	c.Release(true)
	if c.Dragging() {
		t.Error("Release should end the drag")
	}
	if calls != 2 {
		t.Errorf("notify called %d times, want 2", calls)
	}
}

func TestNestedCoordinatorOpenChange(t *testing.T) {
	sched := NewScheduler()
	c := newNestedCoordinator(sched, 0)

	c.OpenChange(true)
	if !c.Open() || c.State() != StateEnterStart {
		t.Fatalf("Open = %v, State = %s, want true, enter-start", c.Open(), c.State())
	}
	sched.Advance(0)
	sched.Advance(EntryDuration)
	if c.State() != StateEntered {
		t.Fatalf("State = %s, want entered", c.State())
	}

	c.OpenChange(false)
	sched.Advance(0)
	if c.State() != StateExiting {
		t.Fatalf("State = %s, want exiting", c.State())
	}
	sched.Advance(ExitDuration + time.Millisecond)
	if c.Open() || c.State() != StateExited {
		t.Errorf("Open = %v, State = %s, want false, exited", c.Open(), c.State())
	}
}

func TestNestedDisplacementScale(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		width float64
		want  float64
	}{
		{"root", 0, 400, (400 - 8.0) / 400},
		{"depth one", 1, 400, (400 - (16 - 16.0/3)) / 400},
		{"no viewport", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newNestedCoordinator(NewScheduler(), tt.depth)
			if got := c.displacementScale(tt.width); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("displacementScale = %v, want %v", got, tt.want)
			}
		})
	}
}
