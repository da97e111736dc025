package components

import (
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ScreenShakeData tracks active screen shake effect on the camera
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // frames remaining
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()

// EffectKind selects how an effect entity is drawn.
type EffectKind int

const (
	EffectCheckpointFlash EffectKind = iota // expanding ring over a checkpoint
	EffectToggleFade                        // full-screen tint after a mode switch
)

// EffectData is a tweened visual effect. Alpha is the tween's current
// value, written by the effects system each tick.
type EffectData struct {
	Kind  EffectKind
	Area  gamemath.Rect // world area, unused for full-screen effects
	Tween *gween.Tween
	Alpha float32
}

var Effect = donburi.NewComponentType[EffectData]()
