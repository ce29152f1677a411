package constants

// Scene prompts
const (
	PromptStart    = "Catch the digits of π in order. Press Enter to start"
	PromptLoading  = "Fetching digits of π..."
	PromptGameOver = "Game over! Enter: play again  Esc: quit"
	PromptRetry    = "Enter: retry  Esc: quit"
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "pi-catcher.log"

	// LogMaxSizeMB is the size at which the log file is rotated
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
)

// Terminal glyphs
const (
	PlateRune = '▀'
	PieRune   = '░'
)
