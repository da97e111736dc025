package systems

import (
	"github.com/automoto/flipside/archetypes"
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls keyboard and gamepads into the Input component.
// Must run BEFORE UpdateSession in the system order.
func UpdateInput(e *ecs.ECS) {
	input := getOrCreateInput(e)

	input.Previous = input.Current

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var held core.Action
	var keyboardUsed, gamepadUsed bool
	for action, binding := range Keys.Actions {
		kb, gp := bindingPressed(binding)
		if kb || gp {
			held |= action
		}
		keyboardUsed = keyboardUsed || kb
		gamepadUsed = gamepadUsed || gp
	}

	left, right, up, down := analogStick(gamepadIDs)
	for _, a := range []struct {
		on     bool
		action core.Action
	}{{left, core.ActionLeft}, {right, core.ActionRight}, {up, core.ActionUp}, {down, core.ActionDown}} {
		if a.on {
			held |= a.action
			gamepadUsed = true
		}
	}
	input.Current = core.InputSnapshot{Held: held}

	for key, binding := range Keys.Scene {
		kb, gp := bindingPressed(binding)
		pressed := kb || gp
		state := &input.Scene[key]
		state.JustPressed = pressed && !state.Pressed
		state.Pressed = pressed
	}

	// gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = components.InputGamepad
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

func bindingPressed(b Binding) (keyboard, gamepad bool) {
	for _, key := range b.Keys {
		if ebiten.IsKeyPressed(key) {
			keyboard = true
		}
	}
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for _, btn := range b.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				gamepad = true
			}
		}
	}
	return keyboard, gamepad
}

// analogStick reads the left stick of every standard gamepad against the
// deadzone.
func analogStick(gamepads []ebiten.GamepadID) (left, right, up, down bool) {
	deadzone := Keys.AnalogDeadzone
	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		left = left || h < -deadzone
		right = right || h > deadzone
		up = up || v < -deadzone
		down = down || v > deadzone
	}
	return left, right, up, down
}

// getOrCreateInput returns the scene's input state, creating the entity on
// first use.
func getOrCreateInput(e *ecs.ECS) *components.InputData {
	if entry, ok := components.Input.First(e.World); ok {
		return components.Input.Get(entry)
	}
	entry := archetypes.Input.Spawn(e)
	return components.Input.Get(entry)
}

// CurrentInput returns the scene's input state, or nil before the first poll.
func CurrentInput(e *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return nil
	}
	return components.Input.Get(entry)
}
