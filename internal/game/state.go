package game

// State is the top-level mode of the application.
type State int

const (
	StateMainMenu State = iota
	StateCredits
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateCredits:
		return "credits"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}
