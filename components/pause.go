package components

import "github.com/yohamta/donburi"

// PauseMenuOption represents menu items in the pause menu
type PauseMenuOption int

const (
	MenuResume PauseMenuOption = iota
	MenuRestart
	MenuLevelSelect
	pauseMenuCount
)

// PauseMenuOptions is the number of entries in the pause menu.
const PauseMenuOptions = int(pauseMenuCount)

// PauseData stores the pause state and menu selection. Chosen is set for one
// tick when Restart or Level Select is picked; the play scene acts on it.
type PauseData struct {
	IsPaused       bool
	SelectedOption PauseMenuOption
	Chosen         *PauseMenuOption
}

var Pause = donburi.NewComponentType[PauseData]()
