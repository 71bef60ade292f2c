package motor

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a host script.
type scriptStep struct {
	Action string  `json:"action"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a host script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences host resizes and mount changes across frames so
// layout behavior can be exercised without a real window. Attach to a Game
// via SetScript.
//
// Supported actions are "resize" (width, height), "wait" (frames),
// "mount", and "unmount".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON host script and returns a ScriptRunner ready to
// be attached to a Game via SetScript.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse host script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse host script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "resize":
			if st.Width < 0 || st.Height < 0 {
				return nil, fmt.Errorf("parse host script: step %d: negative size %vx%v", i, st.Width, st.Height)
			}
		case "wait", "mount", "unmount":
		default:
			return nil, fmt.Errorf("parse host script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a ScriptRunner to the game. The runner advances one
// step per Update, before the scene update.
func (g *Game) SetScript(runner *ScriptRunner) {
	g.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, if any. The runner stops at
// that step.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step advances the runner by one frame. Called from Game.Update.
func (r *ScriptRunner) step(g *Game) {
	if r.done {
		return
	}
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
	case "resize":
		g.host.Resize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mount":
		if err := g.Mount(); err != nil {
			r.err = fmt.Errorf("host script step %d: %w", r.cursor-1, err)
			r.done = true
			return
		}
	case "unmount":
		g.scene.Unmount()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
