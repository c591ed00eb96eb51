package director

// State is a top-level presentation state
type State int

const (
	StateLogin State = iota
	StateTerminal
	StateCollapse
	StateBlackscreen
	StateRebuild
	StateLocate
	StateResetCollapse
	StateResetBlackscreen
	StateResetRebuild

	stateCount
)

var stateNames = [stateCount]string{
	"Login",
	"Terminal",
	"Collapse",
	"Blackscreen",
	"Rebuild",
	"Locate",
	"ResetCollapse",
	"ResetBlackscreen",
	"ResetRebuild",
}

func (s State) String() string {
	if !s.valid() {
		return "State(?)"
	}
	return stateNames[s]
}

func (s State) valid() bool {
	return s >= 0 && s < stateCount
}

// ParseState resolves a state by its timeline name
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// sceneStates are the states that drive a scene instead of a timer
var sceneStates = map[State]bool{
	StateLogin:    true,
	StateTerminal: true,
	StateLocate:   true,
}
