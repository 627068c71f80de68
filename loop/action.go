package loop

// Action is a logical input event produced by the host's key handling.
type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionSoftDropBegin
	ActionSoftDropEnd
	ActionMoveLeft
	ActionMoveRight
	ActionHardDrop
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:          "none",
	ActionRotate:        "rotate",
	ActionSoftDropBegin: "soft-drop-begin",
	ActionSoftDropEnd:   "soft-drop-end",
	ActionMoveLeft:      "move-left",
	ActionMoveRight:     "move-right",
	ActionHardDrop:      "hard-drop",
	ActionQuit:          "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}
