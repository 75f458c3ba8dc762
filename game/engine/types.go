package engine

// Direction is the movement direction resolved once per die roll
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Phase tracks where the current player is in the turn cycle
type Phase string

const (
	PhaseAwaitingRoll    Phase = "awaiting_roll"
	PhaseAwaitingMove    Phase = "awaiting_move"
	PhaseAwaitingEndTurn Phase = "awaiting_end_turn"
	PhaseFinished        Phase = "finished"
)

const (
	// Board and player limits
	StartTile          = 1
	DefaultTileCount   = 100
	MinTileCount       = 10
	MaxTileCount       = 1000
	MaxPlayers         = 5
	BonusTileInterval  = 5
	BonusTurnsAwarded  = 2
	DefaultTopWinners  = 3
	ForwardProbability = 0.8

	// Die faces
	MinDieValue = 1
	MaxDieValue = 6

	// Ladder regeneration parameters
	GeneratedLadderCount = 5
	LadderSourceMargin   = 20
	MinLadderOffset      = 5
	MaxLadderOffset      = 19
	MaxLadderAttempts    = 10000
)

// PlayerView is the read-only status of a player handed to UI collaborators
type PlayerView struct {
	Name                string `json:"name"`
	Position            int    `json:"position"`
	BonusTurnsRemaining int    `json:"bonus_turns_remaining"`
	Direction           string `json:"direction,omitempty"`
}

// LastRoll remembers the most recent die roll and the direction it resolved
type LastRoll struct {
	Value     int       `json:"value"`
	Direction Direction `json:"direction"`
	Player    string    `json:"player"`
}

// WinEntry is a leaderboard row
type WinEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// TurnRecord represents a single resolved move in the game log
type TurnRecord struct {
	TurnNumber  int       `json:"turn_number"`
	RoundID     string    `json:"round_id"`
	Player      string    `json:"player"`
	Die         int       `json:"die"`
	Direction   Direction `json:"direction"`
	From        int       `json:"from"`
	To          int       `json:"to"`
	Path        []int     `json:"path"`
	LadderTaken bool      `json:"ladder_taken,omitempty"`
	PathSearch  bool      `json:"path_search,omitempty"`
	BonusTurns  int       `json:"bonus_turns"`
	Won         bool      `json:"won,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// GameState is a snapshot of a game table
type GameState struct {
	ConfigName         string       `json:"config_name"`
	RoundID            string       `json:"round_id"`
	TileCount          int          `json:"tile_count"`
	Ladders            map[int]int  `json:"ladders"`
	BonusTiles         []int        `json:"bonus_tiles"`
	Players            []PlayerView `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	CurrentPlayer      PlayerView   `json:"current_player"`
	Phase              Phase        `json:"phase"`
	LastRoll           *LastRoll    `json:"last_roll,omitempty"`
	Winner             string       `json:"winner,omitempty"`
	Message            string       `json:"message"`
	WinHistory         []WinEntry   `json:"win_history"`

	// TurnLog is cumulative across resets, CurrentRound only covers the game in progress.
	TurnLog           []TurnRecord `json:"turn_log"`
	TotalTurns        int          `json:"total_turns"`
	CurrentRound      []TurnRecord `json:"current_round"`
	CurrentRoundTurns int          `json:"current_round_turns"`
}
