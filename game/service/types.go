package service

import (
	"time"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
)

// Event types emitted by turn operations
const (
	EventRoll       = "roll"
	EventMove       = "move"
	EventLadder     = "ladder"
	EventPathSearch = "path_search"
	EventBonusTurn  = "bonus_turn"
	EventExtraTurn  = "extra_turn"
	EventTurn       = "turn"
	EventWin        = "win"
	EventReset      = "reset"
)

// CreateSessionRequest describes a new game table
type CreateSessionRequest struct {
	ConfigID string   `json:"config_id"`
	Players  []string `json:"players"`
	// Seed makes the game reproducible; zero picks a random seed
	Seed int64 `json:"seed,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// RollResult contains the outcome of a die roll
type RollResult struct {
	Player    string            `json:"player"`
	Die       int               `json:"die"`
	Direction engine.Direction  `json:"direction"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// MoveResult contains the result of resolving a rolled die
type MoveResult struct {
	Player      string            `json:"player"`
	Die         int               `json:"die"`
	Direction   engine.Direction  `json:"direction"`
	From        int               `json:"from"`
	To          int               `json:"to"`
	Path        []int             `json:"path"`
	LadderTaken bool              `json:"ladder_taken"`
	PathSearch  bool              `json:"path_search"`
	BonusTurns  int               `json:"bonus_turns"`
	Message     string            `json:"message"`
	GameState   *engine.GameState `json:"game_state"`
	Events      []GameEvent       `json:"events,omitempty"`
}

// EndTurnResult reports what happened once a move was shown
type EndTurnResult struct {
	Won        bool              `json:"won"`
	Winner     string            `json:"winner,omitempty"`
	ExtraTurn  bool              `json:"extra_turn"`
	NextPlayer string            `json:"next_player,omitempty"`
	Message    string            `json:"message"`
	GameState  *engine.GameState `json:"game_state"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// TurnResult contains roll, move and end of turn played in one call
type TurnResult struct {
	Roll      *RollResult       `json:"roll"`
	Move      *MoveResult       `json:"move"`
	End       *EndTurnResult    `json:"end"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // see the Event* constants
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player,omitempty"`
	Tile      int       `json:"tile,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Order   string `json:"order"`  // "asc" or "desc"
	Player  string `json:"player"` // only turns of this player
	RoundID string `json:"round_id"`
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// LeaderboardResponse lists the players with the most wins in a session
type LeaderboardResponse struct {
	SessionID string            `json:"session_id"`
	Entries   []engine.WinEntry `json:"entries"`
	Limit     int               `json:"limit"`
}

// PathResult is the best route between two tiles of a session's board
type PathResult struct {
	From      int   `json:"from"`
	To        int   `json:"to"`
	Path      []int `json:"path"`
	Moves     int   `json:"moves"`
	Reachable bool  `json:"reachable"`
	Ladders   []int `json:"ladders_used,omitempty"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	TileCount   int    `json:"tile_count"`
	LadderCount int    `json:"ladder_count"`
	MaxPlayers  int    `json:"max_players"`
}
