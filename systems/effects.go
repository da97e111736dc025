package systems

import (
	"github.com/automoto/flipside/archetypes"
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects advances every effect tween by one tick and removes the
// finished ones.
func UpdateEffects(e *ecs.ECS) {
	dt := float32(1) / float32(config.C.TickRate)
	var done []*donburi.Entry

	components.Effect.Each(e.World, func(entry *donburi.Entry) {
		fx := components.Effect.Get(entry)
		alpha, finished := fx.Tween.Update(dt)
		fx.Alpha = alpha
		if finished {
			done = append(done, entry)
		}
	})

	for _, entry := range done {
		entry.Remove()
	}
}

// SpawnCheckpointFlash starts a fading flash over the active checkpoint.
func SpawnCheckpointFlash(e *ecs.ECS, snap core.Snapshot) {
	for _, o := range snap.Obstacles {
		if o.Kind != core.KindCheckpoint || !o.Active {
			continue
		}
		entry := archetypes.CheckpointFlash.Spawn(e)
		components.Effect.SetValue(entry, components.EffectData{
			Kind:  components.EffectCheckpointFlash,
			Area:  o.Rect,
			Tween: gween.New(1, 0, float32(config.Effects.CheckpointFlash), ease.OutQuad),
			Alpha: 1,
		})
		return
	}
}

// SpawnToggleFade starts the full-screen tint shown after a mode switch.
// A running fade is restarted rather than stacked.
func SpawnToggleFade(e *ecs.ECS) {
	var existing *donburi.Entry
	components.Effect.Each(e.World, func(entry *donburi.Entry) {
		if components.Effect.Get(entry).Kind == components.EffectToggleFade {
			existing = entry
		}
	})
	fx := components.EffectData{
		Kind:  components.EffectToggleFade,
		Tween: gween.New(0.6, 0, float32(config.Effects.ToggleFade), ease.Linear),
		Alpha: 0.6,
	}
	if existing != nil {
		components.Effect.SetValue(existing, fx)
		return
	}
	components.Effect.SetValue(archetypes.Effect.Spawn(e), fx)
}
