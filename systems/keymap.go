package systems

import (
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/core"
	"github.com/hajimehoshi/ebiten/v2"
)

// Binding is the keys and standard gamepad buttons that trigger one action.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// KeyMap maps every simulation action and scene key to bindings.
type KeyMap struct {
	Actions map[core.Action]Binding
	Scene   map[components.SceneKey]Binding

	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Keys is the active key map.
var Keys = DefaultKeyMap()

// DefaultKeyMap returns the built-in bindings: arrows or WASD to move,
// X or C to jump, Z or Shift to grab, Space or Tab to switch mode, Esc to
// pause and R to restart.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		AnalogDeadzone: 0.25,
		Actions: map[core.Action]Binding{
			core.ActionLeft: {
				Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
			},
			core.ActionRight: {
				Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
			},
			core.ActionUp: {
				Keys:                   []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
			},
			core.ActionDown: {
				Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
			},
			core.ActionJump: {
				Keys: []ebiten.Key{ebiten.KeyX, ebiten.KeyC},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
			},
			core.ActionGrab: {
				Keys: []ebiten.Key{ebiten.KeyZ, ebiten.KeyShiftLeft},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
			},
			core.ActionToggle: {
				Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyTab},
				// Y / Triangle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop},
			},
		},
		Scene: map[components.SceneKey]Binding{
			components.KeyPause: {
				Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
			},
			components.KeyRestart: {
				Keys:                   []ebiten.Key{ebiten.KeyR},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft},
			},
			components.KeyMenuUp: {
				Keys:                   []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
			},
			components.KeyMenuDown: {
				Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
			},
			components.KeyMenuSelect: {
				Keys: []ebiten.Key{ebiten.KeyEnter},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
			},
			components.KeyMenuBack: {
				Keys: []ebiten.Key{ebiten.KeyBackspace},
				// B / Circle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
			},
		},
	}
}
