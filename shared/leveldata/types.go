// Package leveldata describes levels as the authored records the simulation
// consumes. It reads and writes the line-based text format and imports Tiled
// maps. It has no dependencies on ebitengine, donburi, or resolv.
package leveldata

import (
	"errors"
	"fmt"

	"github.com/automoto/flipside/shared/gamemath"
)

// RecordType names the kind of a level record.
type RecordType string

const (
	TypeStart      RecordType = "start"
	TypeGoal       RecordType = "goal"
	TypePlatform   RecordType = "platform"
	TypePushable   RecordType = "pushable"
	TypeTrampoline RecordType = "trampoline"
	TypeWall3D     RecordType = "wall_3d"
	TypeVWall      RecordType = "v_wall"
	TypeSpike      RecordType = "spike"
	TypeCheckpoint RecordType = "checkpoint"
	TypeSlope      RecordType = "slope"

	// typeGround is what the level generator historically emitted for the
	// floor strip. It loads as a platform.
	typeGround RecordType = "ground"
)

// Start marker size. The record's own width and height are ignored.
const (
	StartWidth  = 40.0
	StartHeight = 50.0
)

var (
	// ErrMalformedLevelData wraps every record-level parse failure.
	ErrMalformedLevelData = errors.New("malformed level data")
	// ErrMissingStartPoint is returned when a level has no start record.
	ErrMissingStartPoint = errors.New("level has no start point")
)

// MalformedRecordError names the offending line of a rejected load.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: line %d %q: %s", ErrMalformedLevelData, e.Line, e.Text, e.Reason)
}

func (e *MalformedRecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedLevelData, e.Err}
	}
	return []error{ErrMalformedLevelData}
}

// Record is one placed object. LeftOffset and RightOffset are only used by
// slopes.
type Record struct {
	Type        RecordType
	Rect        gamemath.Rect
	LeftOffset  float64
	RightOffset float64
}

// Slope returns the record's ramp. Only meaningful for TypeSlope.
func (r Record) Slope() gamemath.Slope {
	return gamemath.Slope{Rect: r.Rect, LeftOffset: r.LeftOffset, RightOffset: r.RightOffset}
}

// Point is a world-space anchor.
type Point struct {
	X, Y float64
}

// Description is a complete authored level. Records holds every placed
// object except the start marker and the goal, in authoring order.
type Description struct {
	Name     string
	Records  []Record
	Start    Point
	HasStart bool
	Goal     *gamemath.Rect
}

// Validate checks the level-wide requirements that single records cannot.
func (d *Description) Validate() error {
	if !d.HasStart {
		return ErrMissingStartPoint
	}
	return nil
}

// Clone returns a deep copy so the simulation can keep a pristine authored
// copy next to the one it mutates.
func (d *Description) Clone() *Description {
	c := *d
	c.Records = append([]Record(nil), d.Records...)
	if d.Goal != nil {
		g := *d.Goal
		c.Goal = &g
	}
	return &c
}

// Bounds returns the box containing every record, the start marker and the
// goal.
func (d *Description) Bounds() gamemath.Rect {
	b := gamemath.Rect{X: d.Start.X, Y: d.Start.Y, W: StartWidth, H: StartHeight}
	for _, r := range d.Records {
		b = b.Union(r.Rect)
	}
	if d.Goal != nil {
		b = b.Union(*d.Goal)
	}
	return b
}
