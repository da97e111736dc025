package components

import (
	"github.com/automoto/flipside/core"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputGamepad
)

// SceneKey is a key the client handles itself rather than passing to the
// simulation.
type SceneKey int

const (
	KeyPause SceneKey = iota
	KeyRestart
	KeyMenuUp
	KeyMenuDown
	KeyMenuSelect
	KeyMenuBack
	SceneKeyCount // Must be last - used for array sizing
)

// KeyState tracks one scene key across ticks.
type KeyState struct {
	Pressed     bool
	JustPressed bool
}

// InputData is the polled input of the current and previous tick. Game
// actions go to the session as a snapshot.
type InputData struct {
	Current  core.InputSnapshot
	Previous core.InputSnapshot

	Scene [SceneKeyCount]KeyState

	LastInputMethod InputMethod
}

// JustPressed reports a fresh press of a scene key.
func (d *InputData) JustPressed(k SceneKey) bool { return d.Scene[k].JustPressed }

var Input = donburi.NewComponentType[InputData]()
