package sheet

import "time"

// Transition is the six-state enter/exit machine. Each sheet owns two: one
// for its own visibility and one tracking a nested child, so parent and
// child animate on separate timelines.
//
// Deferred steps are driven by the Scheduler. Every state change cancels the
// step scheduled by the previous state, so the most recent SetActive value
// always wins.
type Transition struct {
	state  TransitionState
	active bool
	entry  time.Duration
	exit   time.Duration
	sched  *Scheduler
	step   *Timer

	// OnChange, when set, is called after every state change.
	OnChange func(TransitionState)
	// OnExited, when set, is called once the exit animation has completed.
	OnExited func()
}

// NewTransition creates a machine resting in StateEntered when active is
// true and StateExited otherwise.
func NewTransition(sched *Scheduler, active bool, entry, exit time.Duration) *Transition {
	st := StateExited
	if active {
		st = StateEntered
	}
	return &Transition{state: st, active: active, entry: entry, exit: exit, sched: sched}
}

// State returns the current phase.
func (m *Transition) State() TransitionState {
	return m.state
}

// Active returns the last value passed to SetActive.
func (m *Transition) Active() bool {
	return m.active
}

// SetActive drives the machine towards entered (true) or exited (false).
// Calls that do not change the target are no-ops and schedule nothing.
func (m *Transition) SetActive(active bool) {
	m.active = active
	if active {
		switch m.state {
		case StateExited, StateExiting, StateExitStart:
			m.set(StateEnterStart)
		}
		return
	}
	switch m.state {
	case StateEntered, StateEntering, StateEnterStart:
		m.set(StateExitStart)
	}
}

// Stop cancels any pending step without changing the state.
func (m *Transition) Stop() {
	m.step.Stop()
	m.step = nil
}

func (m *Transition) set(st TransitionState) {
	m.step.Stop()
	m.step = nil
	m.state = st

	switch st {
	case StateEnterStart:
		m.step = m.sched.After(0, func() { m.set(StateEntering) })
	case StateEntering:
		m.step = m.sched.After(m.entry, func() { m.set(StateEntered) })
	case StateExitStart:
		m.step = m.sched.After(0, func() { m.set(StateExiting) })
	case StateExiting:
		m.step = m.sched.After(m.exit, func() {
			m.set(StateExited)
			if m.OnExited != nil {
				m.OnExited()
			}
		})
	}

	if m.OnChange != nil {
		m.OnChange(st)
	}
}
