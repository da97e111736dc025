package systems

import (
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/storage"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateSession steps the simulation once per tick with the polled
// input and turns the frame's events into effects and saved state.
func NewUpdateSession(persist *Persistence) ecs.System {
	return func(e *ecs.ECS) {
		entry, ok := components.Session.First(e.World)
		if !ok {
			return
		}
		sd := components.Session.Get(entry)
		input := getOrCreateInput(e)

		before := sd.Session.Player().Mode
		res := sd.Session.Step(input.Current)
		sd.Last = res
		sd.Snapshot = sd.Session.Snapshot()

		p := sd.Snapshot.Player
		sd.FurthestX = max(sd.FurthestX, p.Rect.Right())

		if p.Mode != before {
			SpawnToggleFade(e)
		}
		if res.CheckpointActivated {
			SpawnCheckpointFlash(e, sd.Snapshot)
			persist.SaveCheckpoint(sd)
		}
		if res.Respawned {
			TriggerScreenShake(e, config.Camera.ShakeIntensity, config.Camera.ShakeDuration)
		}
		if res.GoalReached {
			persist.RecordRun(sd, storage.OutcomeComplete)
			persist.ClearProgress()
		}
	}
}

// RestartSession reloads the level from its start.
func RestartSession(e *ecs.ECS, persist *Persistence) {
	entry, ok := components.Session.First(e.World)
	if !ok {
		return
	}
	sd := components.Session.Get(entry)
	if sd.Session.State() != core.StateComplete {
		persist.RecordRun(sd, storage.OutcomeQuit)
	}
	if err := sd.Session.Restart(); err != nil {
		persist.log().Error("restart failed", "err", err)
		return
	}
	sd.Recorded = false
	sd.FurthestX = 0
	sd.Last = core.FrameResult{}
	sd.Snapshot = sd.Session.Snapshot()
}

// CurrentSession returns the scene's session state, if any.
func CurrentSession(e *ecs.ECS) (*components.SessionData, bool) {
	entry, ok := components.Session.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Session.Get(entry), true
}
