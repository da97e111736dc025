package tags

import "github.com/yohamta/donburi"

var (
	Session    = donburi.NewTag().SetName("Session")
	Camera     = donburi.NewTag().SetName("Camera")
	Input      = donburi.NewTag().SetName("Input")
	Effect     = donburi.NewTag().SetName("Effect")
	Checkpoint = donburi.NewTag().SetName("Checkpoint")
	Pause      = donburi.NewTag().SetName("Pause")
)

// Resolv tags for the collision broadphase
const (
	ResolvObstacle = "obstacle"
	ResolvPushable = "pushable"
	ResolvQuery    = "query"

	// One tag per obstacle kind
	ResolvPlatform   = "platform"
	ResolvWall3D     = "wall_3d"
	ResolvVWall      = "v_wall"
	ResolvSlope      = "slope"
	ResolvTrampoline = "trampoline"
	ResolvSpike      = "spike"
	ResolvCheckpoint = "checkpoint"
	ResolvGoal       = "goal"
)
