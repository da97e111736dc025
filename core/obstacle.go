package core

import (
	"fmt"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/automoto/flipside/tags"
	"github.com/solarlune/resolv"
)

// Kind is the semantic type of a static obstacle.
type Kind uint8

const (
	KindPlatform Kind = iota
	KindWall3D
	KindVWall
	KindSlope
	KindTrampoline
	KindSpike
	KindCheckpoint
	KindGoal
	kindCount
)

// Capability gates which movement states an obstacle takes part in.
type Capability uint8

const (
	Collides2D Capability = 1 << iota
	Collides3DGround
	Collides3DElevated

	collidesAll = Collides2D | Collides3DGround | Collides3DElevated
)

// Has reports whether any bit of mask is set.
func (c Capability) Has(mask Capability) bool { return c&mask != 0 }

// Role is what an obstacle does to an overlapping player.
type Role uint8

const (
	RoleSolid      Role = iota // clamps the player's moving edge
	RoleSurface                // ramp snapping in 2D, solid box in 3D
	RoleBounce                 // trampoline launch
	RoleHazard                 // respawn
	RoleCheckpoint             // moves the respawn anchor
	RoleGoal                   // completes the level
)

type behavior struct {
	Name string
	Caps Capability
	Role Role
	Tag  string
}

// behaviors is keyed by Kind. A slope only has its 3D bit because the 2D
// surface pass handles it separately from the box collision. Spikes sit on
// the ground, so an elevated player clears them.
var behaviors = [kindCount]behavior{
	KindPlatform:   {Name: "platform", Caps: collidesAll, Role: RoleSolid, Tag: tags.ResolvPlatform},
	KindWall3D:     {Name: "wall_3d", Caps: Collides3DGround, Role: RoleSolid, Tag: tags.ResolvWall3D},
	KindVWall:      {Name: "v_wall", Caps: Collides2D | Collides3DGround, Role: RoleSolid, Tag: tags.ResolvVWall},
	KindSlope:      {Name: "slope", Caps: Collides3DGround, Role: RoleSurface, Tag: tags.ResolvSlope},
	KindTrampoline: {Name: "trampoline", Caps: Collides2D, Role: RoleBounce, Tag: tags.ResolvTrampoline},
	KindSpike:      {Name: "spike", Caps: Collides2D | Collides3DGround, Role: RoleHazard, Tag: tags.ResolvSpike},
	KindCheckpoint: {Name: "checkpoint", Caps: collidesAll, Role: RoleCheckpoint, Tag: tags.ResolvCheckpoint},
	KindGoal:       {Name: "goal", Caps: collidesAll, Role: RoleGoal, Tag: tags.ResolvGoal},
}

func (k Kind) String() string {
	if k < kindCount {
		return behaviors[k].Name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Caps returns the kind's capability bits.
func (k Kind) Caps() Capability { return behaviors[k].Caps }

// Role returns the kind's trigger role.
func (k Kind) Role() Role { return behaviors[k].Role }

// blocksGrab reports whether a carried object may not be moved into k.
func (k Kind) blocksGrab() bool {
	r := k.Role()
	return r == RoleSolid || r == RoleSurface
}

// kindOf maps a level record to an obstacle kind. Pushables and the start
// marker are not obstacles.
func kindOf(t leveldata.RecordType) (Kind, bool) {
	switch t {
	case leveldata.TypePlatform:
		return KindPlatform, true
	case leveldata.TypeWall3D:
		return KindWall3D, true
	case leveldata.TypeVWall:
		return KindVWall, true
	case leveldata.TypeSlope:
		return KindSlope, true
	case leveldata.TypeTrampoline:
		return KindTrampoline, true
	case leveldata.TypeSpike:
		return KindSpike, true
	case leveldata.TypeCheckpoint:
		return KindCheckpoint, true
	case leveldata.TypeGoal:
		return KindGoal, true
	}
	return 0, false
}

// Obstacle is a static piece of level geometry. Its box never changes after
// load; only a checkpoint's Active flag does.
type Obstacle struct {
	ID     int
	Kind   Kind
	Rect   gamemath.Rect
	Slope  gamemath.Slope // KindSlope only
	Active bool           // KindCheckpoint only

	obj *resolv.Object
}

// Anchor is the respawn position a checkpoint records.
func (o *Obstacle) Anchor() leveldata.Point {
	return leveldata.Point{X: o.Rect.X, Y: o.Rect.Y}
}

// Pushable is a box that is solid in platform mode and can be pushed or
// carried in free-roam mode.
type Pushable struct {
	ID     int
	Rect   gamemath.Rect
	Static bool

	obj *resolv.Object
}

func newObject(r gamemath.Rect, data any, objTags ...string) *resolv.Object {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	obj.Data = data
	return obj
}
