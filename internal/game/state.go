package game

// State is the phase of a session.
type State int

const (
	StatePlaying      State = iota // Active gameplay
	StatePaused                    // Timers frozen, waiting for unpause
	StateLineClearing              // Full rows fading out
	StateGameOver                  // Spawn blocked, waiting for restart
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLineClearing:
		return "line_clearing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// trigger is an event that may move the session to another state.
type trigger int

const (
	triggerPause        trigger = iota // pause toggle pressed
	triggerLinesFull                   // lock completed one or more rows
	triggerCleared                     // clear animation finished
	triggerSpawnBlocked                // new piece does not fit
	triggerRestart                     // session reset
)

func (t trigger) String() string {
	switch t {
	case triggerPause:
		return "pause"
	case triggerLinesFull:
		return "lines_full"
	case triggerCleared:
		return "cleared"
	case triggerSpawnBlocked:
		return "spawn_blocked"
	case triggerRestart:
		return "restart"
	default:
		return "unknown"
	}
}

var transitions = map[State]map[trigger]State{
	StatePlaying: {
		triggerPause:        StatePaused,
		triggerLinesFull:    StateLineClearing,
		triggerSpawnBlocked: StateGameOver,
		triggerRestart:      StatePlaying,
	},
	StatePaused: {
		triggerPause:   StatePlaying,
		triggerRestart: StatePlaying,
	},
	StateLineClearing: {
		triggerCleared: StatePlaying,
		triggerRestart: StatePlaying,
	},
	StateGameOver: {
		triggerRestart: StatePlaying,
	},
}

// transition returns the state reached from s on t. ok is false when the
// pair is not in the table; next is then s unchanged.
func transition(s State, t trigger) (next State, ok bool) {
	next, ok = transitions[s][t]
	if !ok {
		return s, false
	}
	return next, true
}

// accepts reports whether action is honored in state s.
func (s State) accepts(a Action) bool {
	switch s {
	case StatePlaying:
		return a != ActionRestart
	case StatePaused:
		return a == ActionPause
	case StateGameOver:
		return a == ActionRestart
	default:
		return false
	}
}
