package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadScript is returned for a press that is not "action@frame" or
// "action@frame+length".
var ErrBadScript = errors.New("bad input script")

// Press holds Actions for Length frames starting at Frame.
type Press struct {
	Actions Action
	Frame   uint64
	Length  uint64
}

// Script drives a session without a keyboard: Hold is down on every frame
// and each Press is added on top for its window.
type Script struct {
	Hold    Action
	Presses []Press
}

// ParseScript reads a hold set like "right" and presses like
// "jump@30,toggle@90+2".
func ParseScript(hold string, presses []string) (Script, error) {
	var s Script
	a, err := ParseAction(hold)
	if err != nil {
		return s, err
	}
	s.Hold = a

	for _, raw := range presses {
		p, err := parsePress(strings.TrimSpace(raw))
		if err != nil {
			return Script{}, err
		}
		s.Presses = append(s.Presses, p)
	}
	return s, nil
}

func parsePress(raw string) (Press, error) {
	name, at, ok := strings.Cut(raw, "@")
	if !ok {
		return Press{}, fmt.Errorf("%w: %q", ErrBadScript, raw)
	}
	a, err := ParseAction(name)
	if err != nil {
		return Press{}, err
	}
	p := Press{Actions: a, Length: 1}

	frame, length, hasLength := strings.Cut(at, "+")
	if p.Frame, err = strconv.ParseUint(frame, 10, 64); err != nil {
		return Press{}, fmt.Errorf("%w: frame in %q", ErrBadScript, raw)
	}
	if hasLength {
		if p.Length, err = strconv.ParseUint(length, 10, 64); err != nil || p.Length == 0 {
			return Press{}, fmt.Errorf("%w: length in %q", ErrBadScript, raw)
		}
	}
	return p, nil
}

// At returns the input for the given frame.
func (s Script) At(frame uint64) InputSnapshot {
	held := s.Hold
	for _, p := range s.Presses {
		if frame >= p.Frame && frame < p.Frame+p.Length {
			held |= p.Actions
		}
	}
	return InputSnapshot{Held: held}
}
