package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownAction is returned for an action name ParseAction does not know.
var ErrUnknownAction = errors.New("unknown action")

// Action is one logical control.
type Action uint8

const (
	ActionLeft Action = 1 << iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionGrab
	ActionToggle
)

// InputSnapshot is the set of actions held during one frame. The simulation
// never reads a keyboard; the client samples one of these per tick.
type InputSnapshot struct {
	Held Action
}

// NewInput builds a snapshot from held actions.
func NewInput(actions ...Action) InputSnapshot {
	var s InputSnapshot
	for _, a := range actions {
		s.Held |= a
	}
	return s
}

// Has reports whether every action in a is held.
func (s InputSnapshot) Has(a Action) bool { return s.Held&a == a }

func (s InputSnapshot) any(a Action) bool { return s.Held&a != 0 }

// frameInput pairs this frame's snapshot with the previous one for edge
// detection.
type frameInput struct {
	cur, prev InputSnapshot
}

func (f frameInput) held(a Action) bool { return f.cur.any(a) }

// justPressed reports whether any action in a went down this frame. Each
// action has its own edge, so pressing up while jump is held still counts.
func (f frameInput) justPressed(a Action) bool { return f.cur.Held&^f.prev.Held&a != 0 }

// justReleased reports whether any action in a came up this frame.
func (f frameInput) justReleased(a Action) bool { return f.prev.Held&^f.cur.Held&a != 0 }

// axis returns -1, 0 or 1 for a pair of opposing actions.
func (f frameInput) axis(neg, pos Action) float64 {
	var v float64
	if f.held(pos) {
		v++
	}
	if f.held(neg) {
		v--
	}
	return v
}

// jumpActions is the set that triggers a jump in the given mode. In platform
// mode up doubles as jump; in free-roam mode up moves the player.
func jumpActions(m Mode) Action {
	if m == Mode2D {
		return ActionJump | ActionUp
	}
	return ActionJump
}

type actionName struct {
	name string
	a    Action
}

var actionNames = [...]actionName{
	{"left", ActionLeft},
	{"right", ActionRight},
	{"up", ActionUp},
	{"down", ActionDown},
	{"jump", ActionJump},
	{"grab", ActionGrab},
	{"toggle", ActionToggle},
}

func (a Action) String() string {
	var parts []string
	for _, n := range actionNames {
		if a&n.a != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// ParseAction parses action names joined by "+", e.g. "right+jump".
func ParseAction(s string) (Action, error) {
	var a Action
	for _, part := range strings.Split(s, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || part == "none" {
			continue
		}
		i := slices.IndexFunc(actionNames[:], func(n actionName) bool { return n.name == part })
		if i < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownAction, part)
		}
		a |= actionNames[i].a
	}
	return a, nil
}
