package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters (play field, HUD excluded)
	TickRate int   // Frame ticks per second (default 60)
	Seed     int64 // RNG seed for arena wave placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  22,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DT returns the simulated seconds per frame tick.
func (c RuntimeConfig) DT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Enemies defeated this run
	GameOver bool // Player died or the run was cleared
	Cleared  bool // Run ended by finishing the last level
	Paused   bool
	Level    string // Current level ID
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
