package systems

import (
	"math"

	"github.com/automoto/flipside/archetypes"
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/mathutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		cameraEntry = archetypes.Camera.Spawn(e)
	}
	camera := components.Camera.Get(cameraEntry)

	sd, ok := CurrentSession(e)
	if !ok {
		return
	}
	p := sd.Snapshot.Player

	// Look ahead only while a direction is held, freeze the offset when idle
	input := getOrCreateInput(e)
	dir := mathutil.BoolToFloat(input.Current.Has(core.ActionRight)) - mathutil.BoolToFloat(input.Current.Has(core.ActionLeft))
	if dir != 0 {
		camera.LookAheadX += (dir*config.Camera.LookAheadX - camera.LookAheadX) * config.Camera.FollowSmoothing
	}

	targetX := p.Rect.CenterX() + camera.LookAheadX
	targetY := p.Rect.CenterY()

	screenWidth := float64(config.C.Width)
	screenHeight := float64(config.C.Height)
	b := sd.Bounds

	targetX = math.Max(b.Left()+screenWidth/2, targetX)
	if !sd.Endless && b.W > screenWidth {
		targetX = math.Min(b.Right()-screenWidth/2, targetX)
	}
	if b.H > screenHeight {
		targetY = mathutil.ClampFloat(targetY, b.Top()+screenHeight/2, b.Bottom()-screenHeight/2)
	} else {
		targetY = b.CenterY()
	}

	// Snap on the first frame and after a respawn, smooth otherwise.
	if sd.Last.Frame <= 1 || sd.Last.Respawned {
		camera.Position.X, camera.Position.Y = targetX, targetY
	} else {
		camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
		camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
	}

	updateScreenShake(cameraEntry, camera)
}

// updateScreenShake applies screen shake offset to camera and decrements duration
func updateScreenShake(cameraEntry *donburi.Entry, camera *components.CameraData) {
	if !cameraEntry.HasComponent(components.ScreenShake) {
		return
	}

	shake := components.ScreenShake.Get(cameraEntry)
	shake.Elapsed++

	progress := math.Max(0, float64(shake.Duration-shake.Elapsed)/float64(shake.Duration))
	currentIntensity := shake.Intensity * progress

	camera.Position.X += math.Sin(float64(shake.Elapsed)*1.1) * currentIntensity
	camera.Position.Y += math.Cos(float64(shake.Elapsed)*1.3) * currentIntensity

	if shake.Elapsed >= shake.Duration {
		cameraEntry.RemoveComponent(components.ScreenShake)
	}
}

// TriggerScreenShake starts a screen shake effect
func TriggerScreenShake(e *ecs.ECS, intensity float64, duration int) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok || duration <= 0 {
		return
	}

	if cameraEntry.HasComponent(components.ScreenShake) {
		shake := components.ScreenShake.Get(cameraEntry)
		// Only override if new shake is stronger
		if intensity > shake.Intensity {
			shake.Intensity = intensity
			shake.Duration = duration
			shake.Elapsed = 0
		}
		return
	}
	cameraEntry.AddComponent(components.ScreenShake)
	components.ScreenShake.Set(cameraEntry, &components.ScreenShakeData{
		Intensity: intensity,
		Duration:  duration,
	})
}

// WorldToScreen converts a world point to screen coordinates.
func WorldToScreen(camera *components.CameraData, x, y float64) (float64, float64) {
	return x - camera.Position.X + float64(config.C.Width)/2,
		y - camera.Position.Y + float64(config.C.Height)/2
}
