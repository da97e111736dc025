package archetypes

import (
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Default is the single render layer of every scene.
const Default ecs.LayerID = 0

var (
	Session = newArchetype(
		tags.Session,
		components.Session,
	)
	Camera = newArchetype(
		tags.Camera,
		components.Camera,
	)
	Input = newArchetype(
		tags.Input,
		components.Input,
	)
	Effect = newArchetype(
		tags.Effect,
		components.Effect,
	)
	Pause = newArchetype(
		tags.Pause,
		components.Pause,
	)
	CheckpointFlash = newArchetype(
		tags.Effect,
		tags.Checkpoint,
		components.Effect,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		Default,
		append(a.components, cs...)...,
	))
	return e
}
