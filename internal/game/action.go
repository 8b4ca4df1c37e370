package game

// Action is a logical player command. Input devices are mapped to this closed
// set outside the package.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionRotate    // clockwise
	ActionRotateCCW // counterclockwise
	ActionHardDrop
	ActionHold
	ActionToggleGhost
	ActionPause // toggles between playing and paused
	ActionRestart
)

var actionNames = [...]string{
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionSoftDrop:    "soft_drop",
	ActionRotate:      "rotate",
	ActionRotateCCW:   "rotate_ccw",
	ActionHardDrop:    "hard_drop",
	ActionHold:        "hold",
	ActionToggleGhost: "toggle_ghost",
	ActionPause:       "pause",
	ActionRestart:     "restart",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}
