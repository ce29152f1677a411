package engine

// Scene is the top-level mode governing input handling and per-tick behavior
type Scene uint8

const (
	SceneStart Scene = iota
	// SceneLoading waits for the first digit buffer of a session
	SceneLoading
	SceneGame
	SceneGameOver
)

func (s Scene) String() string {
	switch s {
	case SceneStart:
		return "start"
	case SceneLoading:
		return "loading"
	case SceneGame:
		return "game"
	case SceneGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}
