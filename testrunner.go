package sheet

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Index  int     `json:"index,omitempty"`

	// Expectations checked by the "expect" action. Unset fields are not
	// checked.
	Open  *bool  `json:"open,omitempty"`
	Snap  *int   `json:"snap,omitempty"`
	State string `json:"state,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a gesture script frame by frame: pointer actions are
// queued on an Input as synthetic events, sheet actions are applied to a
// Sheet, and "expect" steps compare the sheet's state.
//
//	{"steps": [
//	  {"action": "open"},
//	  {"action": "wait", "frames": 40},
//	  {"action": "drag", "fromX": 200, "fromY": 500, "toX": 200, "toY": 700, "frames": 6},
//	  {"action": "wait", "frames": 30},
//	  {"action": "expect", "label": "closed", "open": false, "state": "exited"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadGestureScript parses a JSON gesture script and returns a runner.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "drag", "wait", "open", "close", "snap", "expect":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Failures returns the messages of every failed expectation so far.
func (r *ScriptRunner) Failures() []string {
	return r.failures
}

// Step advances the runner by one frame. Call it once per tick before
// in.Update.
func (r *ScriptRunner) Step(in *Input, s *Sheet) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Queued() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.InjectPress(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "open":
		s.Open()
	case "close":
		s.Close()
	case "snap":
		s.SetActiveSnapPoint(st.Index)
	case "expect":
		r.expect(st, s)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Queued() == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) expect(st scriptStep, s *Sheet) {
	label := st.Label
	if label == "" {
		label = fmt.Sprintf("step %d", r.cursor-1)
	}
	if st.Open != nil && s.IsOpen() != *st.Open {
		r.failures = append(r.failures, fmt.Sprintf("%s: open = %t, want %t", label, s.IsOpen(), *st.Open))
	}
	if st.Snap != nil && s.ActiveSnapPoint() != *st.Snap {
		r.failures = append(r.failures, fmt.Sprintf("%s: snap = %d, want %d", label, s.ActiveSnapPoint(), *st.Snap))
	}
	if st.State != "" && s.State().String() != st.State {
		r.failures = append(r.failures, fmt.Sprintf("%s: state = %s, want %s", label, s.State(), st.State))
	}
}
